package classification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type HistoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, history *types.ClassificationHistory) (*types.ClassificationHistory, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationHistory, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.ClassificationHistory, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationHistory, error)

	GetByUser(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.ClassificationHistory, error)
	GetByVideoAndPlaylist(ctx context.Context, tx *gorm.DB, videoID, playlistID uint) ([]*types.ClassificationHistory, error)
}

type historyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHistoryRepo(db *gorm.DB, baseLog *logger.Logger) HistoryRepo {
	repoLog := baseLog.With("repo", "HistoryRepo")
	return &historyRepo{db: db, log: repoLog}
}

func (hr *historyRepo) Create(ctx context.Context, tx *gorm.DB, history *types.ClassificationHistory) (*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	if err := transaction.WithContext(ctx).Create(history).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return history, nil
}

func (hr *historyRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var result types.ClassificationHistory
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (hr *historyRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.ClassificationHistory
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (hr *historyRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	existing, err := hr.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.ClassificationHistory{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (hr *historyRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.ClassificationHistory
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

// GetByVideoAndPlaylist returns the pair's full audit trail, oldest first.
func (hr *historyRepo) GetByVideoAndPlaylist(ctx context.Context, tx *gorm.DB, videoID, playlistID uint) ([]*types.ClassificationHistory, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []*types.ClassificationHistory
	if err := transaction.WithContext(ctx).
		Where("video_id = ? AND playlist_id = ?", videoID, playlistID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
