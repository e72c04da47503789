package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type VideoHandler struct {
	log          *logger.Logger
	videoService services.VideoService
}

func NewVideoHandler(baseLog *logger.Logger, videoService services.VideoService) *VideoHandler {
	handlerLog := baseLog.With("handler", "VideoHandler")
	return &VideoHandler{log: handlerLog, videoService: videoService}
}

func (vh *VideoHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	video, err := vh.videoService.GetVideo(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if video == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, video)
}

// Search looks through stored videos by title substring.
func (vh *VideoHandler) Search(c *gin.Context) {
	title := c.Query("q")
	if title == "" {
		RespondError(c, http.StatusBadRequest, "invalid_param", nil)
		return
	}
	skip, limit := pagination(c)
	videos, err := vh.videoService.SearchStored(c.Request.Context(), title, skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, videos)
}

func (vh *VideoHandler) ListByChannel(c *gin.Context) {
	channelID := c.Param("channelId")
	skip, limit := pagination(c)
	videos, err := vh.videoService.ListByChannel(c.Request.Context(), channelID, skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, videos)
}

type updateStatsRequest struct {
	ViewCount *int64 `json:"view_count"`
	LikeCount *int64 `json:"like_count"`
}

func (vh *VideoHandler) UpdateStats(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req updateStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	video, err := vh.videoService.UpdateStats(c.Request.Context(), id, req.ViewCount, req.LikeCount)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if video == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, video)
}
