package playlist

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	playlistdomain "github.com/yungbote/tubesort-backend/internal/domain/playlist"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type PlaylistRepo interface {
	Create(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Playlist, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Playlist, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Playlist, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Playlist, error)

	GetByYoutubeID(ctx context.Context, tx *gorm.DB, youtubeID string) (*types.Playlist, error)
	GetByTitleAndUser(ctx context.Context, tx *gorm.DB, title string, userID uint) (*types.Playlist, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.Playlist, error)

	AddVideo(ctx context.Context, tx *gorm.DB, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, tx *gorm.DB, playlistID, videoID uint) error
	ListVideos(ctx context.Context, tx *gorm.DB, playlistID uint) ([]*types.Video, error)
}

// Update carries the fields a partial playlist update may touch; nil means
// "leave unchanged". Present fields pass the same boundary checks as Create.
type Update struct {
	YoutubePlaylistID *string
	Title             *string
	Description       *string
}

func (u Update) validate() error {
	if u.YoutubePlaylistID != nil {
		if err := playlistdomain.ValidateYoutubePlaylistID(*u.YoutubePlaylistID); err != nil {
			return err
		}
	}
	if u.Title != nil {
		if err := playlistdomain.ValidateTitle(*u.Title); err != nil {
			return err
		}
	}
	if u.Description != nil {
		if err := playlistdomain.ValidateDescription(*u.Description); err != nil {
			return err
		}
	}
	return nil
}

func (u Update) fields() map[string]any {
	fields := map[string]any{}
	if u.YoutubePlaylistID != nil {
		fields["youtube_playlist_id"] = *u.YoutubePlaylistID
	}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	return fields
}

type playlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPlaylistRepo(db *gorm.DB, baseLog *logger.Logger) PlaylistRepo {
	repoLog := baseLog.With("repo", "PlaylistRepo")
	return &playlistRepo{db: db, log: repoLog}
}

func (pr *playlistRepo) Create(ctx context.Context, tx *gorm.DB, playlist *types.Playlist) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := playlist.Validate(); err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Create(playlist).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return playlist, nil
}

func (pr *playlistRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Playlist
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *playlistRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Playlist
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *playlistRepo) Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := upd.validate(); err != nil {
		return nil, err
	}
	fields := upd.fields()
	if len(fields) == 0 {
		return pr.Get(ctx, tx, id)
	}

	res := transaction.WithContext(ctx).
		Model(&types.Playlist{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperrors.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return pr.Get(ctx, tx, id)
}

func (pr *playlistRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	existing, err := pr.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.Playlist{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (pr *playlistRepo) GetByYoutubeID(ctx context.Context, tx *gorm.DB, youtubeID string) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Playlist
	err := transaction.WithContext(ctx).
		Where("youtube_playlist_id = ?", youtubeID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *playlistRepo) GetByTitleAndUser(ctx context.Context, tx *gorm.DB, title string, userID uint) (*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Playlist
	err := transaction.WithContext(ctx).
		Where("title = ? AND user_id = ?", title, userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *playlistRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.Playlist, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Playlist
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// AddVideo links a video into the playlist's member set. Re-adding an
// existing member is a no-op; a missing playlist or video still fails with a
// referential-integrity error.
func (pr *playlistRepo) AddVideo(ctx context.Context, tx *gorm.DB, playlistID, videoID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	pv := &types.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}
	err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(pv).Error
	return apperrors.Translate(err)
}

// RemoveVideo unlinks a video from the playlist's member set. Removing a
// non-member is a no-op.
func (pr *playlistRepo) RemoveVideo(ctx context.Context, tx *gorm.DB, playlistID, videoID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&types.PlaylistVideo{}).Error
}

func (pr *playlistRepo) ListVideos(ctx context.Context, tx *gorm.DB, playlistID uint) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Joins("JOIN playlist_videos pv ON pv.video_id = videos.id").
		Where("pv.playlist_id = ?", playlistID).
		Order("videos.id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
