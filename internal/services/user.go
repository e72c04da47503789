package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	userrepo "github.com/yungbote/tubesort-backend/internal/data/repos/user"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (*types.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*types.User, error)
	UpdateProfile(ctx context.Context, id uint, name, pictureURL *string) (*types.User, error)
	DeleteUser(ctx context.Context, id uint) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetUser(ctx context.Context, id uint) (*types.User, error) {
	return us.userRepo.Get(ctx, nil, id)
}

func (us *userService) ListUsers(ctx context.Context, skip, limit int) ([]*types.User, error) {
	return us.userRepo.GetMulti(ctx, nil, skip, limit)
}

func (us *userService) UpdateProfile(ctx context.Context, id uint, name, pictureURL *string) (*types.User, error) {
	if name == nil && pictureURL == nil {
		return nil, fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidArgument)
	}
	return us.userRepo.Update(ctx, nil, id, userrepo.Update{
		Name:       name,
		PictureURL: pictureURL,
	})
}

// DeleteUser removes the account; playlists, classifications, rules and
// history go with it through the FK cascades. Videos stay.
func (us *userService) DeleteUser(ctx context.Context, id uint) (*types.User, error) {
	deleted, err := us.userRepo.Delete(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if deleted != nil {
		us.log.Info("user deleted", "user_id", id)
	}
	return deleted, nil
}
