package video

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type VideoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Video, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Video, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Video, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Video, error)

	GetByYoutubeID(ctx context.Context, tx *gorm.DB, youtubeID string) (*types.Video, error)
	SearchByTitle(ctx context.Context, tx *gorm.DB, title string, skip, limit int) ([]*types.Video, error)
	GetByChannelID(ctx context.Context, tx *gorm.DB, channelID string, skip, limit int) ([]*types.Video, error)
	UpdateStats(ctx context.Context, tx *gorm.DB, id uint, viewCount, likeCount *int64) (*types.Video, error)
}

// Update carries the fields a partial video update may touch; nil means
// "leave unchanged".
type Update struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	ChannelID    *string
	ChannelTitle *string
	PublishedAt  *time.Time
	Duration     *string
	ViewCount    *int64
	LikeCount    *int64
	Tags         *datatypes.JSON
}

func (u Update) fields() map[string]any {
	fields := map[string]any{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.ThumbnailURL != nil {
		fields["thumbnail_url"] = *u.ThumbnailURL
	}
	if u.ChannelID != nil {
		fields["channel_id"] = *u.ChannelID
	}
	if u.ChannelTitle != nil {
		fields["channel_title"] = *u.ChannelTitle
	}
	if u.PublishedAt != nil {
		fields["published_at"] = *u.PublishedAt
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	if u.ViewCount != nil {
		fields["view_count"] = *u.ViewCount
	}
	if u.LikeCount != nil {
		fields["like_count"] = *u.LikeCount
	}
	if u.Tags != nil {
		fields["tags"] = *u.Tags
	}
	return fields
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	repoLog := baseLog.With("repo", "VideoRepo")
	return &videoRepo{db: db, log: repoLog}
}

func (vr *videoRepo) Create(ctx context.Context, tx *gorm.DB, video *types.Video) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	if err := transaction.WithContext(ctx).Create(video).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return video, nil
}

func (vr *videoRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.Video
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *videoRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	fields := upd.fields()
	if len(fields) == 0 {
		return vr.Get(ctx, tx, id)
	}

	res := transaction.WithContext(ctx).
		Model(&types.Video{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperrors.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return vr.Get(ctx, tx, id)
}

func (vr *videoRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	existing, err := vr.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.Video{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (vr *videoRepo) GetByYoutubeID(ctx context.Context, tx *gorm.DB, youtubeID string) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var result types.Video
	err := transaction.WithContext(ctx).
		Where("youtube_video_id = ?", youtubeID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *videoRepo) SearchByTitle(ctx context.Context, tx *gorm.DB, title string, skip, limit int) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	// LOWER-on-both-sides keeps the substring match case-insensitive on
	// both Postgres and SQLite.
	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(title)+"%").
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) GetByChannelID(ctx context.Context, tx *gorm.DB, channelID string, skip, limit int) ([]*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}

	var results []*types.Video
	if err := transaction.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoRepo) UpdateStats(ctx context.Context, tx *gorm.DB, id uint, viewCount, likeCount *int64) (*types.Video, error) {
	return vr.Update(ctx, tx, id, Update{ViewCount: viewCount, LikeCount: likeCount})
}
