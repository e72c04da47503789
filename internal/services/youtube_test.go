package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	videorepo "github.com/yungbote/tubesort-backend/internal/data/repos/video"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short stays put", "lofi beats", 100, "lofi beats"},
		{"ascii cut", strings.Repeat("a", 10), 4, "aaaa"},
		{"multi-byte at the cut", "abécd", 3, "ab"},
		{"cjk title", strings.Repeat("音", 50), 100, strings.Repeat("音", 33)},
		{"emoji", "mix \U0001f3b5\U0001f3b5", 6, "mix "},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
		if len(got) > tc.max {
			t.Fatalf("%s: %d bytes exceeds cap %d", tc.name, len(got), tc.max)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("%s: result is not valid UTF-8: %q", tc.name, got)
		}
	}
}

func TestSyncRejectsPlaylistSyncedByAnotherUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	plRepo := playlistrepo.NewPlaylistRepo(tx, log)
	vidRepo := videorepo.NewVideoRepo(tx, log)
	historyRepo := classificationrepo.NewHistoryRepo(tx, log)
	svc := NewYoutubeService(tx, log, nil, plRepo, vidRepo, historyRepo, "").(*youtubeService)

	ctx := context.Background()
	owner := testutil.SeedUser(t, ctx, tx, "syncowner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "syncother@example.com")
	seeded := testutil.SeedPlaylist(t, ctx, tx, owner.ID, "PLsyncowned01")

	summary := &PlaylistSummary{YoutubePlaylistID: "PLsyncowned01", Title: "Stolen"}
	if _, err := svc.upsertPlaylist(ctx, tx, other, summary); !errors.Is(err, apperrors.ErrDuplicateKey) {
		t.Fatalf("upsertPlaylist (other user): expected ErrDuplicateKey, got %v", err)
	}

	kept, err := plRepo.Get(ctx, tx, seeded.ID)
	if err != nil || kept == nil {
		t.Fatalf("Get: %v (%+v)", err, kept)
	}
	if kept.UserID != owner.ID || kept.Title == "Stolen" {
		t.Fatalf("owner's row should be untouched, got %+v", kept)
	}

	updated, err := svc.upsertPlaylist(ctx, tx, owner, &PlaylistSummary{YoutubePlaylistID: "PLsyncowned01", Title: "Refreshed"})
	if err != nil {
		t.Fatalf("upsertPlaylist (owner): %v", err)
	}
	if updated.ID != seeded.ID || updated.Title != "Refreshed" {
		t.Fatalf("upsertPlaylist (owner): expected refresh of %d, got %+v", seeded.ID, updated)
	}
}
