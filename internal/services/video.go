package services

import (
	"context"

	"gorm.io/gorm"

	videorepo "github.com/yungbote/tubesort-backend/internal/data/repos/video"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type VideoService interface {
	GetVideo(ctx context.Context, id uint) (*types.Video, error)
	GetByYoutubeID(ctx context.Context, youtubeID string) (*types.Video, error)
	SearchStored(ctx context.Context, title string, skip, limit int) ([]*types.Video, error)
	ListByChannel(ctx context.Context, channelID string, skip, limit int) ([]*types.Video, error)
	UpdateStats(ctx context.Context, id uint, viewCount, likeCount *int64) (*types.Video, error)
}

type videoService struct {
	db        *gorm.DB
	log       *logger.Logger
	videoRepo videorepo.VideoRepo
}

func NewVideoService(db *gorm.DB, baseLog *logger.Logger, videoRepo videorepo.VideoRepo) VideoService {
	serviceLog := baseLog.With("service", "VideoService")
	return &videoService{db: db, log: serviceLog, videoRepo: videoRepo}
}

func (vs *videoService) GetVideo(ctx context.Context, id uint) (*types.Video, error) {
	return vs.videoRepo.Get(ctx, nil, id)
}

func (vs *videoService) GetByYoutubeID(ctx context.Context, youtubeID string) (*types.Video, error) {
	return vs.videoRepo.GetByYoutubeID(ctx, nil, youtubeID)
}

// SearchStored looks through videos already pulled into storage. Remote
// search goes through the YouTube service instead.
func (vs *videoService) SearchStored(ctx context.Context, title string, skip, limit int) ([]*types.Video, error) {
	return vs.videoRepo.SearchByTitle(ctx, nil, title, skip, limit)
}

func (vs *videoService) ListByChannel(ctx context.Context, channelID string, skip, limit int) ([]*types.Video, error) {
	return vs.videoRepo.GetByChannelID(ctx, nil, channelID, skip, limit)
}

func (vs *videoService) UpdateStats(ctx context.Context, id uint, viewCount, likeCount *int64) (*types.Video, error) {
	return vs.videoRepo.UpdateStats(ctx, nil, id, viewCount, likeCount)
}
