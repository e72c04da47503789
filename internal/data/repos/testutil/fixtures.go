package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		Email:    email,
		GoogleID: "google-" + email,
		Name:     "Seed User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, youtubeID string) *types.Video {
	tb.Helper()
	v := &types.Video{
		YoutubeVideoID: youtubeID,
		Title:          "video " + youtubeID,
		ChannelID:      "chan-1",
		ChannelTitle:   "channel",
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedPlaylist(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uint, youtubeID string) *types.Playlist {
	tb.Helper()
	p := &types.Playlist{
		YoutubePlaylistID: youtubeID,
		Title:             "playlist " + youtubeID,
		UserID:            userID,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed playlist: %v", err)
	}
	return p
}

func SeedMembership(tb testing.TB, ctx context.Context, tx *gorm.DB, playlistID, videoID uint) *types.PlaylistVideo {
	tb.Helper()
	pv := &types.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	if err := tx.WithContext(ctx).Create(pv).Error; err != nil {
		tb.Fatalf("seed membership: %v", err)
	}
	return pv
}

func SeedClassification(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID, playlistID, userID uint, status string) *types.Classification {
	tb.Helper()
	c := &types.Classification{
		VideoID:    videoID,
		PlaylistID: playlistID,
		UserID:     userID,
		Confidence: 0.5,
		Status:     status,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed classification: %v", err)
	}
	return c
}

func SeedRule(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, playlistID uint, ruleType, ruleValue string, priority int) *types.ClassificationRule {
	tb.Helper()
	r := &types.ClassificationRule{
		UserID:     userID,
		PlaylistID: playlistID,
		RuleType:   ruleType,
		RuleValue:  ruleValue,
		Priority:   priority,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rule: %v", err)
	}
	return r
}

func SeedHistory(tb testing.TB, ctx context.Context, tx *gorm.DB, videoID, playlistID, userID uint, action string) *types.ClassificationHistory {
	tb.Helper()
	h := &types.ClassificationHistory{
		VideoID:    videoID,
		PlaylistID: playlistID,
		UserID:     userID,
		Action:     action,
	}
	if err := tx.WithContext(ctx).Create(h).Error; err != nil {
		tb.Fatalf("seed history: %v", err)
	}
	return h
}
