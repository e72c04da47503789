package classification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type RuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rule *types.ClassificationRule) (*types.ClassificationRule, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationRule, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.ClassificationRule, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, upd RuleUpdate) (*types.ClassificationRule, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationRule, error)

	GetByUserAndPlaylist(ctx context.Context, tx *gorm.DB, userID, playlistID uint) ([]*types.ClassificationRule, error)
	GetByPriority(ctx context.Context, tx *gorm.DB, userID, playlistID uint) ([]*types.ClassificationRule, error)
}

// RuleUpdate carries the fields a partial rule update may touch; nil means
// "leave unchanged".
type RuleUpdate struct {
	RuleType  *string
	RuleValue *string
	Priority  *int
}

func (u RuleUpdate) fields() map[string]any {
	fields := map[string]any{}
	if u.RuleType != nil {
		fields["rule_type"] = *u.RuleType
	}
	if u.RuleValue != nil {
		fields["rule_value"] = *u.RuleValue
	}
	if u.Priority != nil {
		fields["priority"] = *u.Priority
	}
	return fields
}

type ruleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRuleRepo(db *gorm.DB, baseLog *logger.Logger) RuleRepo {
	repoLog := baseLog.With("repo", "RuleRepo")
	return &ruleRepo{db: db, log: repoLog}
}

func (rr *ruleRepo) Create(ctx context.Context, tx *gorm.DB, rule *types.ClassificationRule) (*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return rule, nil
}

func (rr *ruleRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var result types.ClassificationRule
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *ruleRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.ClassificationRule
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *ruleRepo) Update(ctx context.Context, tx *gorm.DB, id uint, upd RuleUpdate) (*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	fields := upd.fields()
	if len(fields) == 0 {
		return rr.Get(ctx, tx, id)
	}

	res := transaction.WithContext(ctx).
		Model(&types.ClassificationRule{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperrors.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return rr.Get(ctx, tx, id)
}

func (rr *ruleRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	existing, err := rr.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.ClassificationRule{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (rr *ruleRepo) GetByUserAndPlaylist(ctx context.Context, tx *gorm.DB, userID, playlistID uint) ([]*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.ClassificationRule
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByPriority returns the pair's rules in evaluation order: ascending
// priority, insertion order breaking ties.
func (rr *ruleRepo) GetByPriority(ctx context.Context, tx *gorm.DB, userID, playlistID uint) ([]*types.ClassificationRule, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.ClassificationRule
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND playlist_id = ?", userID, playlistID).
		Order("priority ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
