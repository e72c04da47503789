package video

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/tubesort-backend/internal/data/repos/testutil"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

func TestVideoRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, &types.Video{
		YoutubeVideoID: "dQw4w9WgXcQ",
		Title:          "Never Gonna Give You Up",
		ChannelID:      "UCrick",
		ChannelTitle:   "Rick Astley",
		Duration:       "PT3M33S",
		ViewCount:      100,
		LikeCount:      10,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("Create: expected generated id")
	}

	got, err := repo.GetByYoutubeID(ctx, tx, "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("GetByYoutubeID: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetByYoutubeID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByYoutubeID(ctx, tx, "nope")
	if err != nil {
		t.Fatalf("GetByYoutubeID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByYoutubeID (missing): expected nil, got %+v", missing)
	}
}

func TestVideoRepoDuplicateYoutubeID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedVideo(t, ctx, tx, "dup-video")

	_, err := repo.Create(ctx, tx, &types.Video{YoutubeVideoID: "dup-video", Title: "copy"})
	if !errors.Is(err, apperrors.ErrDuplicateKey) {
		t.Fatalf("Create (duplicate youtube id): expected ErrDuplicateKey, got %v", err)
	}
}

func TestVideoRepoSearchByTitle(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	for i, title := range []string{"Go Concurrency Patterns", "Advanced GO Tricks", "Cooking with Gas"} {
		v := testutil.SeedVideo(t, ctx, tx, "search-"+string(rune('a'+i)))
		if err := tx.WithContext(ctx).Model(v).Update("title", title).Error; err != nil {
			t.Fatalf("seed title: %v", err)
		}
	}

	// Case-insensitive substring match.
	results, err := repo.SearchByTitle(ctx, tx, "go", 0, 10)
	if err != nil {
		t.Fatalf("SearchByTitle: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("SearchByTitle: expected 2 matches, got %d", len(results))
	}

	paged, err := repo.SearchByTitle(ctx, tx, "go", 1, 10)
	if err != nil {
		t.Fatalf("SearchByTitle (paged): %v", err)
	}
	if len(paged) != 1 {
		t.Fatalf("SearchByTitle (paged): expected 1 match after skip, got %d", len(paged))
	}

	none, err := repo.SearchByTitle(ctx, tx, "zzz", 0, 10)
	if err != nil {
		t.Fatalf("SearchByTitle (none): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("SearchByTitle (none): expected no matches, got %d", len(none))
	}
}

func TestVideoRepoGetByChannelID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	for _, id := range []string{"chan-a-1", "chan-a-2"} {
		v := testutil.SeedVideo(t, ctx, tx, id)
		if err := tx.WithContext(ctx).Model(v).Update("channel_id", "UCchanA").Error; err != nil {
			t.Fatalf("seed channel: %v", err)
		}
	}
	testutil.SeedVideo(t, ctx, tx, "chan-b-1")

	results, err := repo.GetByChannelID(ctx, tx, "UCchanA", 0, 10)
	if err != nil {
		t.Fatalf("GetByChannelID: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("GetByChannelID: expected 2 rows, got %d", len(results))
	}
	for _, v := range results {
		if v.ChannelID != "UCchanA" {
			t.Fatalf("GetByChannelID: stray row %+v", v)
		}
	}
}

func TestVideoRepoUpdateStats(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	v := testutil.SeedVideo(t, ctx, tx, "stats-1")
	if err := tx.WithContext(ctx).Model(v).Updates(map[string]any{"view_count": 50, "like_count": 5}).Error; err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	// Only likes change; views keep their value.
	likes := int64(7)
	updated, err := repo.UpdateStats(ctx, tx, v.ID, nil, &likes)
	if err != nil {
		t.Fatalf("UpdateStats: %v", err)
	}
	if updated.LikeCount != 7 {
		t.Fatalf("UpdateStats: like count not applied: %+v", updated)
	}
	if updated.ViewCount != 50 {
		t.Fatalf("UpdateStats: view count should be untouched: %+v", updated)
	}

	views := int64(60)
	updated, err = repo.UpdateStats(ctx, tx, v.ID, &views, nil)
	if err != nil {
		t.Fatalf("UpdateStats (views): %v", err)
	}
	if updated.ViewCount != 60 || updated.LikeCount != 7 {
		t.Fatalf("UpdateStats (views): unexpected counts: %+v", updated)
	}

	gone, err := repo.UpdateStats(ctx, tx, v.ID+1000, &views, nil)
	if err != nil {
		t.Fatalf("UpdateStats (missing): %v", err)
	}
	if gone != nil {
		t.Fatalf("UpdateStats (missing): expected nil, got %+v", gone)
	}
}

func TestVideoRepoDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewVideoRepo(db, testutil.Logger(t))
	ctx := context.Background()

	u := testutil.SeedUser(t, ctx, tx, "videodelete@example.com")
	p := testutil.SeedPlaylist(t, ctx, tx, u.ID, "PLvideodel001")
	v := testutil.SeedVideo(t, ctx, tx, "delete-me")
	testutil.SeedMembership(t, ctx, tx, p.ID, v.ID)

	snapshot, err := repo.Delete(ctx, tx, v.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snapshot == nil || snapshot.YoutubeVideoID != "delete-me" {
		t.Fatalf("Delete: expected pre-delete snapshot, got %+v", snapshot)
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&types.PlaylistVideo{}).Where("video_id = ?", v.ID).Count(&count).Error; err != nil {
		t.Fatalf("count membership: %v", err)
	}
	if count != 0 {
		t.Fatalf("membership rows should be cascade-deleted with the video")
	}

	// The playlist itself is untouched.
	var stillThere int64
	if err := tx.WithContext(ctx).Model(&types.Playlist{}).Where("id = ?", p.ID).Count(&stillThere).Error; err != nil {
		t.Fatalf("count playlist: %v", err)
	}
	if stillThere != 1 {
		t.Fatalf("playlist must survive video deletion")
	}
}
