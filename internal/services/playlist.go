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

type PlaylistService interface {
	CreatePlaylist(ctx context.Context, user *types.User, playlist *types.Playlist) (*types.Playlist, error)
	GetPlaylist(ctx context.Context, id uint) (*types.Playlist, error)
	ListForUser(ctx context.Context, userID uint, skip, limit int) ([]*types.Playlist, error)
	UpdatePlaylist(ctx context.Context, user *types.User, id uint, upd playlistrepo.Update) (*types.Playlist, error)
	DeletePlaylist(ctx context.Context, user *types.User, id uint) (*types.Playlist, error)

	AddVideo(ctx context.Context, user *types.User, playlistID, videoID uint) error
	RemoveVideo(ctx context.Context, user *types.User, playlistID, videoID uint) error
	ListVideos(ctx context.Context, playlistID uint) ([]*types.Video, error)
}

type playlistService struct {
	db           *gorm.DB
	log          *logger.Logger
	playlistRepo playlistrepo.PlaylistRepo
	historyRepo  classificationrepo.HistoryRepo
}

func NewPlaylistService(
	db *gorm.DB,
	baseLog *logger.Logger,
	playlistRepo playlistrepo.PlaylistRepo,
	historyRepo classificationrepo.HistoryRepo,
) PlaylistService {
	serviceLog := baseLog.With("service", "PlaylistService")
	return &playlistService{
		db:           db,
		log:          serviceLog,
		playlistRepo: playlistRepo,
		historyRepo:  historyRepo,
	}
}

func (ps *playlistService) CreatePlaylist(ctx context.Context, user *types.User, playlist *types.Playlist) (*types.Playlist, error) {
	playlist.UserID = user.ID
	return ps.playlistRepo.Create(ctx, nil, playlist)
}

func (ps *playlistService) GetPlaylist(ctx context.Context, id uint) (*types.Playlist, error) {
	return ps.playlistRepo.Get(ctx, nil, id)
}

func (ps *playlistService) ListForUser(ctx context.Context, userID uint, skip, limit int) ([]*types.Playlist, error) {
	return ps.playlistRepo.GetByUserID(ctx, nil, userID, skip, limit)
}

func (ps *playlistService) UpdatePlaylist(ctx context.Context, user *types.User, id uint, upd playlistrepo.Update) (*types.Playlist, error) {
	if _, err := ps.owned(ctx, nil, user, id); err != nil {
		return nil, err
	}
	return ps.playlistRepo.Update(ctx, nil, id, upd)
}

func (ps *playlistService) DeletePlaylist(ctx context.Context, user *types.User, id uint) (*types.Playlist, error) {
	if _, err := ps.owned(ctx, nil, user, id); err != nil {
		return nil, err
	}
	return ps.playlistRepo.Delete(ctx, nil, id)
}

// AddVideo puts the video into the playlist and logs an add action. A repeat
// add keeps the membership as-is and logs nothing.
func (ps *playlistService) AddVideo(ctx context.Context, user *types.User, playlistID, videoID uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.owned(ctx, tx, user, playlistID); err != nil {
			return err
		}

		members, err := ps.playlistRepo.ListVideos(ctx, tx, playlistID)
		if err != nil {
			return err
		}
		for _, member := range members {
			if member.ID == videoID {
				return nil
			}
		}

		if err := ps.playlistRepo.AddVideo(ctx, tx, playlistID, videoID); err != nil {
			return err
		}
		if _, err := ps.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
			VideoID:    videoID,
			PlaylistID: playlistID,
			UserID:     user.ID,
			Action:     types.HistoryActionAdd,
		}); err != nil {
			return fmt.Errorf("log add: %w", err)
		}
		return nil
	})
}

// RemoveVideo drops the membership and logs a remove action. Removing a
// non-member is a no-op and logs nothing.
func (ps *playlistService) RemoveVideo(ctx context.Context, user *types.User, playlistID, videoID uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.owned(ctx, tx, user, playlistID); err != nil {
			return err
		}

		members, err := ps.playlistRepo.ListVideos(ctx, tx, playlistID)
		if err != nil {
			return err
		}
		isMember := false
		for _, member := range members {
			if member.ID == videoID {
				isMember = true
				break
			}
		}
		if !isMember {
			return nil
		}

		if err := ps.playlistRepo.RemoveVideo(ctx, tx, playlistID, videoID); err != nil {
			return err
		}
		if _, err := ps.historyRepo.Create(ctx, tx, &types.ClassificationHistory{
			VideoID:    videoID,
			PlaylistID: playlistID,
			UserID:     user.ID,
			Action:     types.HistoryActionRemove,
		}); err != nil {
			return fmt.Errorf("log remove: %w", err)
		}
		return nil
	})
}

func (ps *playlistService) ListVideos(ctx context.Context, playlistID uint) ([]*types.Video, error) {
	return ps.playlistRepo.ListVideos(ctx, nil, playlistID)
}

func (ps *playlistService) owned(ctx context.Context, tx *gorm.DB, user *types.User, playlistID uint) (*types.Playlist, error) {
	playlist, err := ps.playlistRepo.Get(ctx, tx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, fmt.Errorf("%w: playlist %d", apperrors.ErrNotFound, playlistID)
	}
	if playlist.UserID != user.ID {
		return nil, fmt.Errorf("%w: playlist belongs to another user", apperrors.ErrUnauthorized)
	}
	return playlist, nil
}
