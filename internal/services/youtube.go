package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	videorepo "github.com/yungbote/tubesort-backend/internal/data/repos/video"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

const (
	defaultSearchResults = 10
	maxPageSize          = 50
	playlistSyncWorkers  = 4
)

// VideoSearchResult is the trimmed search payload handed to the HTTP layer.
type VideoSearchResult struct {
	YoutubeVideoID string `json:"youtube_video_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ThumbnailURL   string `json:"thumbnail_url"`
	ChannelID      string `json:"channel_id"`
	ChannelTitle   string `json:"channel_title"`
}

// PlaylistSummary is one remote playlist row from the authed listing.
type PlaylistSummary struct {
	YoutubePlaylistID string `json:"youtube_playlist_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	ItemCount         int64  `json:"item_count"`
}

// SyncReport counts what a playlist sync touched.
type SyncReport struct {
	Playlists      int `json:"playlists"`
	Videos         int `json:"videos"`
	NewMemberships int `json:"new_memberships"`
}

type YoutubeService interface {
	SearchVideos(ctx context.Context, query string, maxResults int64) ([]*VideoSearchResult, error)
	ListPlaylists(ctx context.Context, user *types.User) ([]*PlaylistSummary, error)
	SyncPlaylists(ctx context.Context, user *types.User) (*SyncReport, error)
}

type youtubeService struct {
	db           *gorm.DB
	log          *logger.Logger
	authService  AuthService
	playlistRepo playlistrepo.PlaylistRepo
	videoRepo    videorepo.VideoRepo
	historyRepo  classificationrepo.HistoryRepo
	apiKey       string
}

func NewYoutubeService(
	db *gorm.DB,
	baseLog *logger.Logger,
	authService AuthService,
	playlistRepo playlistrepo.PlaylistRepo,
	videoRepo videorepo.VideoRepo,
	historyRepo classificationrepo.HistoryRepo,
	apiKey string,
) YoutubeService {
	serviceLog := baseLog.With("service", "YoutubeService")
	return &youtubeService{
		db:           db,
		log:          serviceLog,
		authService:  authService,
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		historyRepo:  historyRepo,
		apiKey:       apiKey,
	}
}

func (ys *youtubeService) keyClient(ctx context.Context) (*youtube.Service, error) {
	if ys.apiKey == "" {
		return nil, fmt.Errorf("YOUTUBE_API_KEY is required for keyed requests")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(ys.apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}
	return svc, nil
}

func (ys *youtubeService) userClient(ctx context.Context, user *types.User) (*youtube.Service, error) {
	if user.YoutubeAccessToken == "" {
		return nil, fmt.Errorf("%w: no youtube token on file", apperrors.ErrUnauthorized)
	}
	svc, err := youtube.NewService(ctx, option.WithTokenSource(ys.authService.TokenSource(ctx, user)))
	if err != nil {
		return nil, fmt.Errorf("youtube client: %w", err)
	}
	return svc, nil
}

func (ys *youtubeService) SearchVideos(ctx context.Context, query string, maxResults int64) ([]*VideoSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", apperrors.ErrInvalidArgument)
	}
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}

	svc, err := ys.keyClient(ctx)
	if err != nil {
		return nil, err
	}

	res, err := svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}

	out := make([]*VideoSearchResult, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		out = append(out, &VideoSearchResult{
			YoutubeVideoID: item.Id.VideoId,
			Title:          item.Snippet.Title,
			Description:    item.Snippet.Description,
			ThumbnailURL:   thumbnailURL(item.Snippet.Thumbnails),
			ChannelID:      item.Snippet.ChannelId,
			ChannelTitle:   item.Snippet.ChannelTitle,
		})
	}
	return out, nil
}

func (ys *youtubeService) ListPlaylists(ctx context.Context, user *types.User) ([]*PlaylistSummary, error) {
	svc, err := ys.userClient(ctx, user)
	if err != nil {
		return nil, err
	}
	return listPlaylistsWith(ctx, svc)
}

func listPlaylistsWith(ctx context.Context, svc *youtube.Service) ([]*PlaylistSummary, error) {
	var out []*PlaylistSummary
	call := svc.Playlists.List([]string{"snippet", "contentDetails"}).
		Mine(true).
		MaxResults(maxPageSize)
	err := call.Pages(ctx, func(page *youtube.PlaylistListResponse) error {
		for _, item := range page.Items {
			if item.Snippet == nil {
				continue
			}
			summary := &PlaylistSummary{
				YoutubePlaylistID: item.Id,
				Title:             item.Snippet.Title,
				Description:       item.Snippet.Description,
			}
			if item.ContentDetails != nil {
				summary.ItemCount = item.ContentDetails.ItemCount
			}
			out = append(out, summary)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("playlist listing: %w", err)
	}
	return out, nil
}

// SyncPlaylists mirrors the user's remote playlists into storage: playlist
// rows are upserted, every item's video is upserted with its duration, stats
// and tags, and each membership that did not exist before gets an add history
// entry. Playlists are fetched concurrently.
func (ys *youtubeService) SyncPlaylists(ctx context.Context, user *types.User) (*SyncReport, error) {
	svc, err := ys.userClient(ctx, user)
	if err != nil {
		return nil, err
	}

	remote, err := listPlaylistsWith(ctx, svc)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(playlistSyncWorkers)

	for _, summary := range remote {
		g.Go(func() error {
			videos, newMembers, err := ys.syncOne(gctx, svc, user, summary)
			if err != nil {
				return fmt.Errorf("sync playlist %s: %w", summary.YoutubePlaylistID, err)
			}
			mu.Lock()
			report.Playlists++
			report.Videos += videos
			report.NewMemberships += newMembers
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ys.log.Info("playlist sync finished",
		"user_id", user.ID,
		"playlists", report.Playlists,
		"videos", report.Videos,
		"new_memberships", report.NewMemberships,
	)
	return report, nil
}

func (ys *youtubeService) syncOne(ctx context.Context, svc *youtube.Service, user *types.User, summary *PlaylistSummary) (int, int, error) {
	ids, err := fetchItemVideoIDs(ctx, svc, summary.YoutubePlaylistID)
	if err != nil {
		return 0, 0, err
	}
	details, err := fetchVideoDetails(ctx, svc, ids)
	if err != nil {
		return 0, 0, err
	}

	videos := 0
	newMembers := 0

	err = ys.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := ys.upsertPlaylist(ctx, tx, user, summary)
		if err != nil {
			return err
		}

		for _, id := range ids {
			detail := details[id]
			if detail == nil {
				continue
			}
			video, err := ys.upsertVideo(ctx, tx, detail)
			if err != nil {
				return err
			}
			videos++

			added, err := ys.addMembership(ctx, tx, stored, video, user)
			if err != nil {
				return err
			}
			if added {
				newMembers++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return videos, newMembers, nil
}

func fetchItemVideoIDs(ctx context.Context, svc *youtube.Service, youtubePlaylistID string) ([]string, error) {
	var ids []string
	seen := map[string]bool{}
	call := svc.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(youtubePlaylistID).
		MaxResults(maxPageSize)
	err := call.Pages(ctx, func(page *youtube.PlaylistItemListResponse) error {
		for _, item := range page.Items {
			if item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
				continue
			}
			if seen[item.ContentDetails.VideoId] {
				continue
			}
			seen[item.ContentDetails.VideoId] = true
			ids = append(ids, item.ContentDetails.VideoId)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("playlist items: %w", err)
	}
	return ids, nil
}

func fetchVideoDetails(ctx context.Context, svc *youtube.Service, ids []string) (map[string]*youtube.Video, error) {
	details := make(map[string]*youtube.Video, len(ids))
	for start := 0; start < len(ids); start += maxPageSize {
		end := start + maxPageSize
		if end > len(ids) {
			end = len(ids)
		}
		res, err := svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(ids[start:end]...).
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("video details: %w", err)
		}
		for _, v := range res.Items {
			details[v.Id] = v
		}
	}
	return details, nil
}

func (ys *youtubeService) upsertPlaylist(ctx context.Context, tx *gorm.DB, user *types.User, summary *PlaylistSummary) (*types.Playlist, error) {
	existing, err := ys.playlistRepo.GetByYoutubeID(ctx, tx, summary.YoutubePlaylistID)
	if err != nil {
		return nil, err
	}
	title := truncate(summary.Title, 100)
	description := truncate(summary.Description, 500)
	if existing == nil {
		return ys.playlistRepo.Create(ctx, tx, &types.Playlist{
			YoutubePlaylistID: summary.YoutubePlaylistID,
			Title:             title,
			Description:       description,
			UserID:            user.ID,
		})
	}
	if existing.UserID != user.ID {
		return nil, fmt.Errorf("%w: playlist %s already synced by another user", apperrors.ErrDuplicateKey, summary.YoutubePlaylistID)
	}
	return ys.playlistRepo.Update(ctx, tx, existing.ID, playlistrepo.Update{
		Title:       &title,
		Description: &description,
	})
}

func (ys *youtubeService) upsertVideo(ctx context.Context, tx *gorm.DB, detail *youtube.Video) (*types.Video, error) {
	existing, err := ys.videoRepo.GetByYoutubeID(ctx, tx, detail.Id)
	if err != nil {
		return nil, err
	}

	video := &types.Video{YoutubeVideoID: detail.Id}
	if detail.Snippet != nil {
		video.Title = detail.Snippet.Title
		video.Description = detail.Snippet.Description
		video.ThumbnailURL = thumbnailURL(detail.Snippet.Thumbnails)
		video.ChannelID = detail.Snippet.ChannelId
		video.ChannelTitle = detail.Snippet.ChannelTitle
		if detail.Snippet.PublishedAt != "" {
			if published, perr := time.Parse(time.RFC3339, detail.Snippet.PublishedAt); perr == nil {
				video.PublishedAt = &published
			}
		}
		if tags := tagsJSON(detail.Snippet.Tags); tags != nil {
			video.Tags = tags
		}
	}
	if detail.ContentDetails != nil {
		video.Duration = detail.ContentDetails.Duration
	}
	if detail.Statistics != nil {
		video.ViewCount = int64(detail.Statistics.ViewCount)
		video.LikeCount = int64(detail.Statistics.LikeCount)
	}

	if existing == nil {
		return ys.videoRepo.Create(ctx, tx, video)
	}

	upd := videorepo.Update{
		Title:        &video.Title,
		Description:  &video.Description,
		ThumbnailURL: &video.ThumbnailURL,
		ChannelID:    &video.ChannelID,
		ChannelTitle: &video.ChannelTitle,
		Duration:     &video.Duration,
	}
	if video.Tags != nil {
		upd.Tags = &video.Tags
	}
	if _, err := ys.videoRepo.Update(ctx, tx, existing.ID, upd); err != nil {
		return nil, err
	}
	return ys.videoRepo.UpdateStats(ctx, tx, existing.ID, &video.ViewCount, &video.LikeCount)
}

func (ys *youtubeService) addMembership(ctx context.Context, tx *gorm.DB, playlist *types.Playlist, video *types.Video, user *types.User) (bool, error) {
	existing, err := ys.playlistRepo.ListVideos(ctx, tx, playlist.ID)
	if err != nil {
		return false, err
	}
	for _, member := range existing {
		if member.ID == video.ID {
			return false, nil
		}
	}

	if err := ys.playlistRepo.AddVideo(ctx, tx, playlist.ID, video.ID); err != nil {
		return false, err
	}
	if _, err := ys.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
		VideoID:    video.ID,
		PlaylistID: playlist.ID,
		UserID:     user.ID,
		Action:     types.HistoryActionAdd,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func thumbnailURL(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	switch {
	case t.High != nil:
		return t.High.Url
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	}
	return ""
}

// truncate caps s at max bytes without splitting a multi-byte rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func tagsJSON(tags []string) datatypes.JSON {
	if len(tags) == 0 {
		return nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
