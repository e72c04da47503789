package classification

import (
	"time"

	"github.com/yungbote/tubesort-backend/internal/domain/playlist"
	"github.com/yungbote/tubesort-backend/internal/domain/user"
	"github.com/yungbote/tubesort-backend/internal/domain/video"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Classification records the outcome of deciding whether a video belongs in a
// playlist. (video, playlist) uniqueness is intentionally not enforced at the
// storage level; see DESIGN.md.
type Classification struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	VideoID    uint               `gorm:"not null;index;column:video_id" json:"video_id"`
	Video      *video.Video       `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`
	PlaylistID uint               `gorm:"not null;index;column:playlist_id" json:"playlist_id"`
	Playlist   *playlist.Playlist `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlaylistID;references:ID" json:"playlist,omitempty"`
	UserID     uint               `gorm:"not null;index;column:user_id" json:"user_id"`
	User       *user.User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Confidence float64 `gorm:"column:confidence" json:"confidence"`
	Status     string  `gorm:"not null;index;column:status" json:"status"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Classification) TableName() string { return "classifications" }
