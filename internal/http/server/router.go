package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/tubesort-backend/internal/http/handlers"
	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log                   *logger.Logger
	CORSOrigins           []string
	ServiceName           string
	AuthMiddleware        *middleware.AuthMiddleware
	AuthHandler           *handlers.AuthHandler
	UserHandler           *handlers.UserHandler
	PlaylistHandler       *handlers.PlaylistHandler
	VideoHandler          *handlers.VideoHandler
	ClassificationHandler *handlers.ClassificationHandler
	YoutubeHandler        *handlers.YoutubeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLog(cfg.Log))
	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/auth/google", cfg.AuthHandler.GoogleStart)
		api.GET("/auth/google/callback", cfg.AuthHandler.GoogleCallback)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.GET("/auth/me", cfg.AuthHandler.Me)

	// Users
	protected.GET("/users", cfg.UserHandler.List)
	protected.GET("/users/:id", cfg.UserHandler.Get)
	protected.PATCH("/users/me", cfg.UserHandler.UpdateMe)
	protected.DELETE("/users/me", cfg.UserHandler.DeleteMe)

	// Playlists
	protected.POST("/playlists", cfg.PlaylistHandler.Create)
	protected.GET("/playlists", cfg.PlaylistHandler.ListMine)
	protected.GET("/playlists/:id", cfg.PlaylistHandler.Get)
	protected.PATCH("/playlists/:id", cfg.PlaylistHandler.Update)
	protected.DELETE("/playlists/:id", cfg.PlaylistHandler.Delete)
	protected.GET("/playlists/:id/videos", cfg.PlaylistHandler.ListVideos)
	protected.PUT("/playlists/:id/videos/:videoId", cfg.PlaylistHandler.AddVideo)
	protected.DELETE("/playlists/:id/videos/:videoId", cfg.PlaylistHandler.RemoveVideo)
	protected.GET("/playlists/:id/rules", cfg.ClassificationHandler.ListRules)

	// Videos
	protected.GET("/videos/search", cfg.VideoHandler.Search)
	protected.GET("/videos/:id", cfg.VideoHandler.Get)
	protected.GET("/channels/:channelId/videos", cfg.VideoHandler.ListByChannel)
	protected.PATCH("/videos/:id/stats", cfg.VideoHandler.UpdateStats)

	// Classifications
	protected.POST("/classifications", cfg.ClassificationHandler.Classify)
	protected.GET("/classifications", cfg.ClassificationHandler.ListMine)
	protected.GET("/classifications/:id", cfg.ClassificationHandler.Get)
	protected.PATCH("/classifications/:id", cfg.ClassificationHandler.UpdateStatus)
	protected.DELETE("/classifications/:id", cfg.ClassificationHandler.Delete)

	// Rules
	protected.POST("/rules", cfg.ClassificationHandler.CreateRule)
	protected.PATCH("/rules/:id", cfg.ClassificationHandler.UpdateRule)
	protected.DELETE("/rules/:id", cfg.ClassificationHandler.DeleteRule)

	// History
	protected.GET("/history", cfg.ClassificationHandler.History)

	// YouTube proxy
	protected.GET("/youtube/search", cfg.YoutubeHandler.Search)
	protected.GET("/youtube/playlists", cfg.YoutubeHandler.Playlists)
	protected.POST("/youtube/sync", cfg.YoutubeHandler.Sync)

	return router
}
