package app

import (
	"fmt"

	"github.com/yungbote/tubesort-backend/internal/platform/envutil"
)

// Config is everything the process reads from the environment besides the
// POSTGRES_* variables consumed by the db package.
type Config struct {
	Port    string
	LogMode string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	YoutubeAPIKey string

	CORSOrigins []string

	ServiceName string
	Environment string
	Version     string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               envutil.String("PORT", "8000"),
		LogMode:            envutil.String("LOG_MODE", "development"),
		GoogleClientID:     envutil.String("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envutil.String("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  envutil.String("GOOGLE_REDIRECT_URI", "http://localhost:8000/api/auth/google/callback"),
		YoutubeAPIKey:      envutil.String("YOUTUBE_API_KEY", ""),
		CORSOrigins: envutil.List("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
		ServiceName: envutil.String("SERVICE_NAME", "tubesort-backend"),
		Environment: envutil.String("ENVIRONMENT", "development"),
		Version:     envutil.String("SERVICE_VERSION", "dev"),
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}
	return cfg, nil
}
