package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

// ClassificationService orchestrates classifications, rules and the history
// log. Every mutation that changes what a video means to a playlist leaves a
// history entry in the same transaction.
type ClassificationService interface {
	Classify(ctx context.Context, user *types.User, videoID, playlistID uint, confidence float64) (*types.Classification, error)
	UpdateStatus(ctx context.Context, user *types.User, classificationID uint, status string, confidence *float64) (*types.Classification, error)
	Unclassify(ctx context.Context, user *types.User, classificationID uint) error
	GetClassification(ctx context.Context, id uint) (*types.Classification, error)
	ListByUser(ctx context.Context, userID uint, skip, limit int) ([]*types.Classification, error)
	ListByStatus(ctx context.Context, status string, skip, limit int) ([]*types.Classification, error)

	CreateRule(ctx context.Context, rule *types.ClassificationRule) (*types.ClassificationRule, error)
	UpdateRule(ctx context.Context, user *types.User, id uint, upd classificationrepo.RuleUpdate) (*types.ClassificationRule, error)
	DeleteRule(ctx context.Context, user *types.User, id uint) (*types.ClassificationRule, error)
	RulesInOrder(ctx context.Context, userID, playlistID uint) ([]*types.ClassificationRule, error)

	HistoryForUser(ctx context.Context, userID uint, skip, limit int) ([]*types.ClassificationHistory, error)
	HistoryForPair(ctx context.Context, videoID, playlistID uint) ([]*types.ClassificationHistory, error)
}

type classificationService struct {
	db                 *gorm.DB
	log                *logger.Logger
	classificationRepo classificationrepo.ClassificationRepo
	ruleRepo           classificationrepo.RuleRepo
	historyRepo        classificationrepo.HistoryRepo
	playlistRepo       playlistrepo.PlaylistRepo
}

func NewClassificationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	classificationRepo classificationrepo.ClassificationRepo,
	ruleRepo classificationrepo.RuleRepo,
	historyRepo classificationrepo.HistoryRepo,
	playlistRepo playlistrepo.PlaylistRepo,
) ClassificationService {
	serviceLog := baseLog.With("service", "ClassificationService")
	return &classificationService{
		db:                 db,
		log:                serviceLog,
		classificationRepo: classificationRepo,
		ruleRepo:           ruleRepo,
		historyRepo:        historyRepo,
		playlistRepo:       playlistRepo,
	}
}

// Classify records a pending classification for the pair, puts the video into
// the playlist, and logs an add action. Re-classifying an already-member pair
// still appends history; membership itself stays put.
func (cs *classificationService) Classify(ctx context.Context, user *types.User, videoID, playlistID uint, confidence float64) (*types.Classification, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence must be within [0, 1]", apperrors.ErrInvalidArgument)
	}

	var result *types.Classification
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		playlist, err := cs.playlistRepo.Get(ctx, tx, playlistID)
		if err != nil {
			return err
		}
		if playlist == nil {
			return fmt.Errorf("%w: playlist %d", apperrors.ErrNotFound, playlistID)
		}
		if playlist.UserID != user.ID {
			return fmt.Errorf("%w: playlist belongs to another user", apperrors.ErrUnauthorized)
		}

		created, err := cs.classificationRepo.Create(ctx, tx, &types.Classification{
			VideoID:    videoID,
			PlaylistID: playlistID,
			UserID:     user.ID,
			Confidence: confidence,
			Status:     types.ClassificationStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create classification: %w", err)
		}

		if err := cs.playlistRepo.AddVideo(ctx, tx, playlistID, videoID); err != nil {
			return fmt.Errorf("add membership: %w", err)
		}

		if _, err := cs.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
			VideoID:    videoID,
			PlaylistID: playlistID,
			UserID:     user.ID,
			Action:     types.HistoryActionAdd,
		}); err != nil {
			return fmt.Errorf("log add: %w", err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus moves a classification between pending/completed/failed and
// logs a modify action.
func (cs *classificationService) UpdateStatus(ctx context.Context, user *types.User, classificationID uint, status string, confidence *float64) (*types.Classification, error) {
	switch status {
	case types.ClassificationStatusPending, types.ClassificationStatusCompleted, types.ClassificationStatusFailed:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidArgument, status)
	}

	var result *types.Classification
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.classificationRepo.Get(ctx, tx, classificationID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: classification %d", apperrors.ErrNotFound, classificationID)
		}
		if existing.UserID != user.ID {
			return fmt.Errorf("%w: classification belongs to another user", apperrors.ErrUnauthorized)
		}

		updated, err := cs.classificationRepo.Update(ctx, tx, classificationID, classificationrepo.Update{
			Status:     &status,
			Confidence: confidence,
		})
		if err != nil {
			return fmt.Errorf("update classification: %w", err)
		}

		if _, err := cs.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
			VideoID:    existing.VideoID,
			PlaylistID: existing.PlaylistID,
			UserID:     user.ID,
			Action:     types.HistoryActionModify,
		}); err != nil {
			return fmt.Errorf("log modify: %w", err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Unclassify deletes the classification, drops the membership, and logs a
// remove action.
func (cs *classificationService) Unclassify(ctx context.Context, user *types.User, classificationID uint) error {
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := cs.classificationRepo.Get(ctx, tx, classificationID)
		if err != nil {
			return err
		}
		if existing == nil {
			return fmt.Errorf("%w: classification %d", apperrors.ErrNotFound, classificationID)
		}
		if existing.UserID != user.ID {
			return fmt.Errorf("%w: classification belongs to another user", apperrors.ErrUnauthorized)
		}

		if _, err := cs.classificationRepo.Delete(ctx, tx, classificationID); err != nil {
			return fmt.Errorf("delete classification: %w", err)
		}
		if err := cs.playlistRepo.RemoveVideo(ctx, tx, existing.PlaylistID, existing.VideoID); err != nil {
			return fmt.Errorf("remove membership: %w", err)
		}
		if _, err := cs.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
			VideoID:    existing.VideoID,
			PlaylistID: existing.PlaylistID,
			UserID:     user.ID,
			Action:     types.HistoryActionRemove,
		}); err != nil {
			return fmt.Errorf("log remove: %w", err)
		}
		return nil
	})
}

func (cs *classificationService) GetClassification(ctx context.Context, id uint) (*types.Classification, error) {
	return cs.classificationRepo.Get(ctx, nil, id)
}

func (cs *classificationService) ListByUser(ctx context.Context, userID uint, skip, limit int) ([]*types.Classification, error) {
	return cs.classificationRepo.GetByUser(ctx, nil, userID, skip, limit)
}

func (cs *classificationService) ListByStatus(ctx context.Context, status string, skip, limit int) ([]*types.Classification, error) {
	return cs.classificationRepo.GetByStatus(ctx, nil, status, skip, limit)
}

func (cs *classificationService) CreateRule(ctx context.Context, rule *types.ClassificationRule) (*types.ClassificationRule, error) {
	switch rule.RuleType {
	case types.RuleTypeKeyword, types.RuleTypeTag, types.RuleTypeChannel:
	default:
		return nil, fmt.Errorf("%w: unknown rule type %q", apperrors.ErrInvalidArgument, rule.RuleType)
	}
	if rule.RuleValue == "" {
		return nil, fmt.Errorf("%w: rule_value is required", apperrors.ErrInvalidArgument)
	}
	return cs.ruleRepo.Create(ctx, nil, rule)
}

func (cs *classificationService) UpdateRule(ctx context.Context, user *types.User, id uint, upd classificationrepo.RuleUpdate) (*types.ClassificationRule, error) {
	if upd.RuleType != nil {
		switch *upd.RuleType {
		case types.RuleTypeKeyword, types.RuleTypeTag, types.RuleTypeChannel:
		default:
			return nil, fmt.Errorf("%w: unknown rule type %q", apperrors.ErrInvalidArgument, *upd.RuleType)
		}
	}
	var result *types.ClassificationRule
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.ownedRule(ctx, tx, user, id); err != nil {
			return err
		}
		updated, err := cs.ruleRepo.Update(ctx, tx, id, upd)
		if err != nil {
			return fmt.Errorf("update rule: %w", err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (cs *classificationService) DeleteRule(ctx context.Context, user *types.User, id uint) (*types.ClassificationRule, error) {
	var result *types.ClassificationRule
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.ownedRule(ctx, tx, user, id); err != nil {
			return err
		}
		deleted, err := cs.ruleRepo.Delete(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("delete rule: %w", err)
		}
		result = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (cs *classificationService) ownedRule(ctx context.Context, tx *gorm.DB, user *types.User, id uint) error {
	rule, err := cs.ruleRepo.Get(ctx, tx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return fmt.Errorf("%w: rule %d", apperrors.ErrNotFound, id)
	}
	if rule.UserID != user.ID {
		return fmt.Errorf("%w: rule belongs to another user", apperrors.ErrUnauthorized)
	}
	return nil
}

// RulesInOrder returns the evaluation order: ascending priority, then row id.
func (cs *classificationService) RulesInOrder(ctx context.Context, userID, playlistID uint) ([]*types.ClassificationRule, error) {
	return cs.ruleRepo.GetByPriority(ctx, nil, userID, playlistID)
}

func (cs *classificationService) HistoryForUser(ctx context.Context, userID uint, skip, limit int) ([]*types.ClassificationHistory, error) {
	return cs.historyRepo.GetByUser(ctx, nil, userID, skip, limit)
}

func (cs *classificationService) HistoryForPair(ctx context.Context, videoID, playlistID uint) ([]*types.ClassificationHistory, error) {
	return cs.historyRepo.GetByVideoAndPlaylist(ctx, nil, videoID, playlistID)
}
