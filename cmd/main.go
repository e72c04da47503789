package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yungbote/tubesort-backend/internal/app"
	"github.com/yungbote/tubesort-backend/internal/data/db"
	classificationrepo "github.com/yungbote/tubesort-backend/internal/data/repos/classification"
	playlistrepo "github.com/yungbote/tubesort-backend/internal/data/repos/playlist"
	userrepo "github.com/yungbote/tubesort-backend/internal/data/repos/user"
	videorepo "github.com/yungbote/tubesort-backend/internal/data/repos/video"
	"github.com/yungbote/tubesort-backend/internal/http/handlers"
	"github.com/yungbote/tubesort-backend/internal/http/middleware"
	"github.com/yungbote/tubesort-backend/internal/http/server"
	"github.com/yungbote/tubesort-backend/internal/observability"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
	"github.com/yungbote/tubesort-backend/internal/services"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logger
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				log.Warn("tracing shutdown failed", "error", err)
			}
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := userrepo.NewUserRepo(thePG, log)
	videoRepo := videorepo.NewVideoRepo(thePG, log)
	playlistRepo := playlistrepo.NewPlaylistRepo(thePG, log)
	classificationRepo := classificationrepo.NewClassificationRepo(thePG, log)
	ruleRepo := classificationrepo.NewRuleRepo(thePG, log)
	historyRepo := classificationrepo.NewHistoryRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	verifier, err := services.NewOIDCVerifier(&http.Client{Timeout: 10 * time.Second}, cfg.GoogleClientID)
	if err != nil {
		log.Fatal("Could not init OIDCVerifier", "error", err)
	}
	authService, err := services.NewAuthService(thePG, log, userRepo, verifier, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	if err != nil {
		log.Fatal("Could not init AuthService", "error", err)
	}
	userService := services.NewUserService(thePG, log, userRepo)
	videoService := services.NewVideoService(thePG, log, videoRepo)
	playlistService := services.NewPlaylistService(thePG, log, playlistRepo, historyRepo)
	classificationService := services.NewClassificationService(thePG, log, classificationRepo, ruleRepo, historyRepo, playlistRepo)
	youtubeService := services.NewYoutubeService(thePG, log, authService, playlistRepo, videoRepo, historyRepo, cfg.YoutubeAPIKey)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(log, authService)
	userHandler := handlers.NewUserHandler(log, userService)
	playlistHandler := handlers.NewPlaylistHandler(log, playlistService)
	videoHandler := handlers.NewVideoHandler(log, videoService)
	classificationHandler := handlers.NewClassificationHandler(log, classificationService)
	youtubeHandler := handlers.NewYoutubeHandler(log, youtubeService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		Log:                   log,
		CORSOrigins:           cfg.CORSOrigins,
		ServiceName:           cfg.ServiceName,
		AuthMiddleware:        authMiddleware,
		AuthHandler:           authHandler,
		UserHandler:           userHandler,
		PlaylistHandler:       playlistHandler,
		VideoHandler:          videoHandler,
		ClassificationHandler: classificationHandler,
		YoutubeHandler:        youtubeHandler,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
