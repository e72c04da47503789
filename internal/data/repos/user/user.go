package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error)
	Get(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error)
	GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.User, error)
	Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.User, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error)

	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error)
	GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.User, error)
	UpdateTokens(ctx context.Context, tx *gorm.DB, id uint, accessToken, refreshToken string, expiresAt *time.Time) (*types.User, error)
}

// Update carries the fields a partial user update may touch; nil means
// "leave unchanged".
type Update struct {
	Email               *string
	GoogleID            *string
	Name                *string
	PictureURL          *string
	YoutubeAccessToken  *string
	YoutubeRefreshToken *string
	TokenExpiresAt      *time.Time
}

func (u Update) fields() map[string]any {
	fields := map[string]any{}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.GoogleID != nil {
		fields["google_id"] = *u.GoogleID
	}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.PictureURL != nil {
		fields["picture_url"] = *u.PictureURL
	}
	if u.YoutubeAccessToken != nil {
		fields["youtube_access_token"] = *u.YoutubeAccessToken
	}
	if u.YoutubeRefreshToken != nil {
		fields["youtube_refresh_token"] = *u.YoutubeRefreshToken
	}
	if u.TokenExpiresAt != nil {
		fields["token_expires_at"] = *u.TokenExpiresAt
	}
	return fields
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	if err := transaction.WithContext(ctx).Create(user).Error; err != nil {
		return nil, apperrors.Translate(err)
	}
	return user, nil
}

func (ur *userRepo) Get(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	err := transaction.WithContext(ctx).First(&result, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetMulti(ctx context.Context, tx *gorm.DB, skip, limit int) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("id").
		Offset(skip).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, id uint, upd Update) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	fields := upd.fields()
	if len(fields) == 0 {
		return ur.Get(ctx, tx, id)
	}

	res := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, apperrors.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return ur.Get(ctx, tx, id)
}

func (ur *userRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	existing, err := ur.Get(ctx, tx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(&types.User{}, id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	return ur.getOne(ctx, tx, "email = ?", email)
}

func (ur *userRepo) GetByGoogleID(ctx context.Context, tx *gorm.DB, googleID string) (*types.User, error) {
	return ur.getOne(ctx, tx, "google_id = ?", googleID)
}

func (ur *userRepo) GetByAccessToken(ctx context.Context, tx *gorm.DB, accessToken string) (*types.User, error) {
	return ur.getOne(ctx, tx, "youtube_access_token = ?", accessToken)
}

func (ur *userRepo) UpdateTokens(ctx context.Context, tx *gorm.DB, id uint, accessToken, refreshToken string, expiresAt *time.Time) (*types.User, error) {
	upd := Update{
		YoutubeAccessToken:  &accessToken,
		YoutubeRefreshToken: &refreshToken,
	}
	if expiresAt != nil {
		upd.TokenExpiresAt = expiresAt
	}
	return ur.Update(ctx, tx, id, upd)
}

func (ur *userRepo) getOne(ctx context.Context, tx *gorm.DB, query string, arg any) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	err := transaction.WithContext(ctx).Where(query, arg).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}
