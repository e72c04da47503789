package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type PlaylistHandler struct {
	log             *logger.Logger
	playlistService services.PlaylistService
}

func NewPlaylistHandler(baseLog *logger.Logger, playlistService services.PlaylistService) *PlaylistHandler {
	handlerLog := baseLog.With("handler", "PlaylistHandler")
	return &PlaylistHandler{log: handlerLog, playlistService: playlistService}
}

type createPlaylistRequest struct {
	YoutubePlaylistID string `json:"youtube_playlist_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
}

func (ph *PlaylistHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ph.playlistService.CreatePlaylist(c.Request.Context(), user, &types.Playlist{
		YoutubePlaylistID: req.YoutubePlaylistID,
		Title:             req.Title,
		Description:       req.Description,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, created)
}

func (ph *PlaylistHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	playlist, err := ph.playlistService.GetPlaylist(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if playlist == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, playlist)
}

// ListMine returns the caller's playlists.
func (ph *PlaylistHandler) ListMine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	skip, limit := pagination(c)
	playlists, err := ph.playlistService.ListForUser(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, playlists)
}

type updatePlaylistRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (ph *PlaylistHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := ph.playlistService.UpdatePlaylist(c.Request.Context(), user, id, playlistrepo.Update{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, updated)
}

func (ph *PlaylistHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	id, okID := uintParam(c, "id")
	if !okID {
		return
	}
	if _, err := ph.playlistService.DeletePlaylist(c.Request.Context(), user, id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (ph *PlaylistHandler) AddVideo(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	playlistID, okP := uintParam(c, "id")
	if !okP {
		return
	}
	videoID, okV := uintParam(c, "videoId")
	if !okV {
		return
	}
	if err := ph.playlistService.AddVideo(c.Request.Context(), user, playlistID, videoID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (ph *PlaylistHandler) RemoveVideo(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	playlistID, okP := uintParam(c, "id")
	if !okP {
		return
	}
	videoID, okV := uintParam(c, "videoId")
	if !okV {
		return
	}
	if err := ph.playlistService.RemoveVideo(c.Request.Context(), user, playlistID, videoID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

func (ph *PlaylistHandler) ListVideos(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	videos, err := ph.playlistService.ListVideos(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, videos)
}
