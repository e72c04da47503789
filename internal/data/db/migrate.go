package db

import (
	types "github.com/yungbote/tubesort-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll registers every persisted relation. Order matters: parents
// before children so the cascade foreign keys can be created.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&types.User{},

		// Platform metadata
		&types.Video{},
		&types.Playlist{},
		&types.PlaylistVideo{},

		// Classification bookkeeping
		&types.Classification{},
		&types.ClassificationRule{},
		&types.ClassificationHistory{},
	)
}
