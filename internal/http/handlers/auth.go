package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/tubesort-backend/internal/domain"
	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

type AuthHandler struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthHandler(baseLog *logger.Logger, authService services.AuthService) *AuthHandler {
	handlerLog := baseLog.With("handler", "AuthHandler")
	return &AuthHandler{log: handlerLog, authService: authService}
}

// userPayload is the public shape of a user; tokens never leave through it.
type userPayload struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	PictureURL string `json:"picture_url"`
	GoogleID   string `json:"google_id"`
}

func toUserPayload(u *types.User) userPayload {
	return userPayload{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		PictureURL: u.PictureURL,
		GoogleID:   u.GoogleID,
	}
}

// GoogleStart redirects the browser into Google's consent screen.
func (ah *AuthHandler) GoogleStart(c *gin.Context) {
	url, state := ah.authService.GoogleAuthURL()
	ah.log.Debug("starting google sign-in", "state", state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback finishes the code exchange and returns tokens plus the
// upserted user.
func (ah *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	result, err := ah.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"user":          toUserPayload(result.User),
	})
}

// Me resolves the bearer token to the stored user.
func (ah *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	RespondOK(c, toUserPayload(user))
}
