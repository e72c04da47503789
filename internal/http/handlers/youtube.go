package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type YoutubeHandler struct {
	log            *logger.Logger
	youtubeService services.YoutubeService
}

func NewYoutubeHandler(baseLog *logger.Logger, youtubeService services.YoutubeService) *YoutubeHandler {
	handlerLog := baseLog.With("handler", "YoutubeHandler")
	return &YoutubeHandler{log: handlerLog, youtubeService: youtubeService}
}

// Search proxies a keyed video search against the YouTube Data API.
func (yh *YoutubeHandler) Search(c *gin.Context) {
	query := c.Query("query")
	maxResults, _ := strconv.ParseInt(c.DefaultQuery("max_results", "10"), 10, 64)

	results, err := yh.youtubeService.SearchVideos(c.Request.Context(), query, maxResults)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, results)
}

// Playlists lists the caller's remote playlists using their stored token.
func (yh *YoutubeHandler) Playlists(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	playlists, err := yh.youtubeService.ListPlaylists(c.Request.Context(), user)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, playlists)
}

// Sync mirrors the caller's remote playlists into storage.
func (yh *YoutubeHandler) Sync(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	report, err := yh.youtubeService.SyncPlaylists(c.Request.Context(), user)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, report)
}
