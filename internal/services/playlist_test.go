package services

import (
	"context"
	"errors"
	"testing"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

func TestPlaylistServiceMembershipHistory(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	svc := NewPlaylistService(tx, log, plRepo, historyRepo)

	ctx := context.Background()
	u := testutil.SeedUser(t, ctx, tx, "plsvc@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLplsvc000001")
	v := testutil.SeedVideo(t, ctx, tx, "plsvc-vid")

	if err := svc.AddVideo(ctx, u, p.ID, v.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	// Repeat add keeps membership and logs nothing further.
	if err := svc.AddVideo(ctx, u, p.ID, v.ID); err != nil {
		t.Fatalf("AddVideo (repeat): %v", err)
	}

	trail, err := historyRepo.GetByVideoAndPlaylist(ctx, tx, v.ID, p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 1 || trail[0].Action != types.HistoryActionAdd {
		t.Fatalf("expected a single add entry, got %+v", trail)
	}

	if err := svc.RemoveVideo(ctx, u, p.ID, v.ID); err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	// Removing a non-member is a no-op.
	if err := svc.RemoveVideo(ctx, u, p.ID, v.ID); err != nil {
		t.Fatalf("RemoveVideo (repeat): %v", err)
	}

	trail, err = historyRepo.GetByVideoAndPlaylist(ctx, tx, v.ID, p.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(trail) != 2 || trail[1].Action != types.HistoryActionRemove {
		t.Fatalf("expected add then remove, got %+v", trail)
	}

	videos, err := svc.ListVideos(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 0 {
		t.Fatalf("expected empty playlist, got %+v", videos)
	}
}

func TestPlaylistServiceOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	svc := NewPlaylistService(tx, log, plRepo, historyRepo)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, tx, "plscope@example.com")
	intruder := testutil.SeedUser(t, ctx, tx, "plscope2@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLplscope0001")
	v := testutil.SeedVideo(t, ctx, tx, "plscope-vid")

	if err := svc.AddVideo(ctx, intruder, p.ID, v.ID); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("AddVideo (foreign): expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.DeletePlaylist(ctx, intruder, p.ID); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("DeletePlaylist (foreign): expected ErrUnauthorized, got %v", err)
	}

	title := "renamed"
	if _, err := svc.UpdatePlaylist(ctx, intruder, p.ID, playlistrepo.Update{Title: &title}); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("UpdatePlaylist (foreign): expected ErrUnauthorized, got %v", err)
	}

	if err := svc.AddVideo(ctx, owner, p.ID+1000, v.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("AddVideo (missing playlist): expected ErrNotFound, got %v", err)
	}
}
