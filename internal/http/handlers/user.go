package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(baseLog *logger.Logger, userService services.UserService) *UserHandler {
	handlerLog := baseLog.With("handler", "UserHandler")
	return &UserHandler{log: handlerLog, userService: userService}
}

func (uh *UserHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	user, err := uh.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if user == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, toUserPayload(user))
}

func (uh *UserHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	users, err := uh.userService.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	out := make([]userPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	RespondOK(c, out)
}

type updateProfileRequest struct {
	Name       *string `json:"name"`
	PictureURL *string `json:"picture_url"`
}

// UpdateMe edits the caller's own profile.
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := uh.userService.UpdateProfile(c.Request.Context(), user.ID, req.Name, req.PictureURL)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	if updated == nil {
		RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	RespondOK(c, toUserPayload(updated))
}

// DeleteMe removes the caller's account and everything cascading from it.
func (uh *UserHandler) DeleteMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if _, err := uh.userService.DeleteUser(c.Request.Context(), user.ID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondNoContent(c)
}

// uintParam parses a positive integer path parameter, responding 400 itself
// when the value is malformed.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_param", err)
		return 0, false
	}
	return uint(v), true
}

func parseUintQuery(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	return uint(v), err
}

func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
