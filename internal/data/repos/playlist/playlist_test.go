package playlist

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

func TestPlaylistRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "playlistrepo@example.com")

	created, err := repo.Create(ctx, tx, &types.Playlist{
		YoutubePlaylistID: "PLroundtrip001",
		Title:             "Study Beats",
		Description:       "lofi for focus",
		UserID:            u.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create: expected generated id")
	}

	got, err := repo.Get(ctx, tx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Title != "Study Beats" || got.UserID != u.ID {
		t.Fatalf("Get: unexpected result: %+v", got)
	}

	byYoutube, err := repo.GetByYoutubeID(ctx, tx, "PLroundtrip001")
	if err != nil {
		t.Fatalf("GetByYoutubeID: %v", err)
	}
	if byYoutube == nil || byYoutube.ID != created.ID {
		t.Fatalf("GetByYoutubeID: unexpected result: %+v", byYoutube)
	}

	byTitle, err := repo.GetByTitleAndUser(ctx, tx, "Study Beats", u.ID)
	if err != nil {
		t.Fatalf("GetByTitleAndUser: %v", err)
	}
	if byTitle == nil || byTitle.ID != created.ID {
		t.Fatalf("GetByTitleAndUser: unexpected result: %+v", byTitle)
	}

	other := testutil.SeedUser(t, ctx, tx, "someoneelse@example.com")
	notTheirs, err := repo.GetByTitleAndUser(ctx, tx, "Study Beats", other.ID)
	if err != nil {
		t.Fatalf("GetByTitleAndUser (other user): %v", err)
	}
	if notTheirs != nil {
		t.Fatalf("GetByTitleAndUser (other user): expected nil, got %+v", notTheirs)
	}
}

func TestPlaylistRepoCreateValidation(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "validation@example.com")

	cases := []struct {
		name     string
		playlist types.Playlist
	}{
		{"empty external id", types.Playlist{Title: "ok", UserID: u.ID}},
		{"external id with spaces", types.Playlist{YoutubePlaylistID: "PL bad id", Title: "ok", UserID: u.ID}},
		{"external id too short", types.Playlist{YoutubePlaylistID: "PLshort", Title: "ok", UserID: u.ID}},
		{"external id too long", types.Playlist{YoutubePlaylistID: "PL" + strings.Repeat("x", 60), Title: "ok", UserID: u.ID}},
		{"title too long", types.Playlist{YoutubePlaylistID: "PLvalidation1", Title: strings.Repeat("t", 101), UserID: u.ID}},
		{"description too long", types.Playlist{YoutubePlaylistID: "PLvalidation1", Title: "ok", Description: strings.Repeat("d", 501), UserID: u.ID}},
	}
	for _, tc := range cases {
		playlist := tc.playlist
		_, err := repo.Create(ctx, tx, &playlist)
		if !errors.Is(err, apperrors.ErrInvalidArgument) {
			t.Fatalf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}

	// Title is optional; only its length is capped.
	untitled, err := repo.Create(ctx, tx, &types.Playlist{YoutubePlaylistID: "PLvalidation2", UserID: u.ID})
	if err != nil {
		t.Fatalf("Create (no title): %v", err)
	}
	if untitled.ID == 0 || untitled.Title != "" {
		t.Fatalf("Create (no title): unexpected row %+v", untitled)
	}
}

func TestPlaylistRepoUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "plupdate@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLupdate00001")

	title := "Renamed List"
	updated, err := repo.Update(ctx, tx, p.ID, Update{Title: &title})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Renamed List" {
		t.Fatalf("Update: title not applied: %+v", updated)
	}
	if updated.YoutubePlaylistID != p.YoutubePlaylistID {
		t.Fatalf("Update: untouched field changed: %+v", updated)
	}

	bad := strings.Repeat("t", 101)
	_, err = repo.Update(ctx, tx, p.ID, Update{Title: &bad})
	if !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("Update (long title): expected ErrInvalidArgument, got %v", err)
	}

	gone, err := repo.Update(ctx, tx, p.ID+1000, Update{Title: &title})
	if err != nil {
		t.Fatalf("Update (missing): %v", err)
	}
	if gone != nil {
		t.Fatalf("Update (missing): expected nil, got %+v", gone)
	}
}

func TestPlaylistRepoGetByUserID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")
	testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLowner000001")
	testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLowner000002")
	testutil.SeedPlaylist(t, ctx, tx, other.ID, "PLother000001")

	mine, err := repo.GetByUserID(ctx, tx, owner.ID, 0, 10)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("GetByUserID: expected 2 rows, got %d", len(mine))
	}

	paged, err := repo.GetByUserID(ctx, tx, owner.ID, 1, 10)
	if err != nil {
		t.Fatalf("GetByUserID (paged): %v", err)
	}
	if len(paged) != 1 || paged[0].YoutubePlaylistID != "PLowner000002" {
		t.Fatalf("GetByUserID (paged): unexpected page: %+v", paged)
	}
}

func TestPlaylistRepoMembership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "membership@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLmember00001")
	first := testutil.SeedVideo(t, ctx, tx, "member-vid-1")
	second := testutil.SeedVideo(t, ctx, tx, "member-vid-2")

	if err := repo.AddVideo(ctx, tx, p.ID, first.ID); err != nil {
		t.Fatalf("AddVideo: %v", err)
	}
	if err := repo.AddVideo(ctx, tx, p.ID, second.ID); err != nil {
		t.Fatalf("AddVideo (second): %v", err)
	}

	// Adding an existing member again changes nothing.
	if err := repo.AddVideo(ctx, tx, p.ID, first.ID); err != nil {
		t.Fatalf("AddVideo (repeat): %v", err)
	}

	videos, err := repo.ListVideos(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListVideos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("ListVideos: expected 2 videos, got %d", len(videos))
	}
	if videos[0].ID != first.ID || videos[1].ID != second.ID {
		t.Fatalf("ListVideos: unexpected order: %d,%d", videos[0].ID, videos[1].ID)
	}

	if err := repo.RemoveVideo(ctx, tx, p.ID, first.ID); err != nil {
		t.Fatalf("RemoveVideo: %v", err)
	}
	// Removing the same pair again is a no-op.
	if err := repo.RemoveVideo(ctx, tx, p.ID, first.ID); err != nil {
		t.Fatalf("RemoveVideo (repeat): %v", err)
	}

	videos, err = repo.ListVideos(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("ListVideos (after remove): %v", err)
	}
	if len(videos) != 1 || videos[0].ID != second.ID {
		t.Fatalf("ListVideos (after remove): unexpected result: %+v", videos)
	}
}

func TestPlaylistRepoAddVideoUnknownVideo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "badmember@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLbadmember01")

	err := repo.AddVideo(ctx, tx, p.ID, 999999)
	if !errors.Is(err, apperrors.ErrForeignKeyViolated) {
		t.Fatalf("AddVideo (unknown video): expected ErrForeignKeyViolated, got %v", err)
	}
}

func TestPlaylistRepoDeleteCascadesMemberships(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewPlaylistRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "pldelete@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLdelete00001")
	v := testutil.SeedVideo(t, ctx, tx, "pldelete-vid")
	testutil.SeedMembership(t, ctx, tx, p.ID, v.ID)

	snapshot, err := repo.Delete(ctx, tx, p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snapshot == nil || snapshot.YoutubePlaylistID != "PLdelete00001" {
		t.Fatalf("Delete: expected pre-delete snapshot, got %+v", snapshot)
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&types.PlaylistVideo{}).Where("playlist_id = ?", p.ID).Count(&count).Error; err != nil {
		t.Fatalf("count membership: %v", err)
	}
	if count != 0 {
		t.Fatalf("membership rows should be cascade-deleted with the playlist")
	}
	if err := tx.WithContext(ctx).Model(&types.Video{}).Where("id = ?", v.ID).Count(&count).Error; err != nil {
		t.Fatalf("count video: %v", err)
	}
	if count != 1 {
		t.Fatalf("video must survive playlist deletion")
	}
}
