package classification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type ClassificationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, classification *types.Classification) (*types.Classification, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Classification, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Classification, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Classification, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Classification, error)

	GetByVideoAndPlaylist(ctx context.Context, tx *gorm.DB, videoID, playlistID uint) (*types.Classification, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.Classification, error)
	GetByStatus(ctx context.Context, tx *gorm.DB, status string, skip, limit int) ([]*types.Classification, error)
}

// Update carries the fields a partial classification update may touch; nil
// means "leave unchanged".
type Update struct {
	Confidence *float64
	Status     *string
}

func (u Update) fields() map[string]any {
	fields := map[string]any{}
	if u.Confidence != nil {
		fields["confidence"] = *u.Confidence
	}
	if u.Status != nil {
		fields["status"] = *u.Status
	}
	return fields
}

type classificationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassificationRepo(db *gorm.DB, baseLog *logger.Logger) ClassificationRepo {
	repoLog := baseLog.With("repo", "ClassificationRepo")
	return &classificationRepo{db: db, log: repoLog}
}

func (cr *classificationRepo) Create(ctx context.Context, tx *gorm.DB, classification *types.Classification) (*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(classification).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return classification, nil
}

func (cr *classificationRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Classification
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *classificationRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Classification
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *classificationRepo) Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	fields := upd.fields()
	if len(fields) == 0 {
		return cr.Get(ctx, tx, id)
	}

	res := transaction.WithContext(ctx).
		Model(&types.Classification{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperrors.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return cr.Get(ctx, tx, id)
}

func (cr *classificationRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	existing, err := cr.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.Classification{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByVideoAndPlaylist returns the earliest classification for the pair.
// The schema permits duplicates, so "the" classification is the first by id.
func (cr *classificationRepo) GetByVideoAndPlaylist(ctx context.Context, tx *gorm.DB, videoID, playlistID uint) (*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Classification
	err := transaction.WithContext(ctx).
		Where("video_id = ? AND playlist_id = ?", videoID, playlistID).
		Order("id").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *classificationRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uint, skip, limit int) ([]*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Classification
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

func (cr *classificationRepo) GetByStatus(ctx context.Context, tx *gorm.DB, status string, skip, limit int) ([]*types.Classification, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Classification
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
