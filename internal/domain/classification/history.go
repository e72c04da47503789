package classification

import (
	"time"

	"github.com/yungbote/tubesort-backend/internal/domain/playlist"
	"github.com/yungbote/tubesort-backend/internal/domain/user"
	"github.com/yungbote/tubesort-backend/internal/domain/video"
)

const (
	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionModify = "modify"
)

// History is the audit log of membership and classification changes. Rows
// only leave via explicit delete or cascade, never by background expiry.
type History struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	VideoID    uint               `gorm:"not null;index;column:video_id" json:"video_id"`
	Video      *video.Video       `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`
	PlaylistID uint               `gorm:"not null;index;column:playlist_id" json:"playlist_id"`
	Playlist   *playlist.Playlist `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlaylistID;references:ID" json:"playlist,omitempty"`
	UserID     uint               `gorm:"not null;index;column:user_id" json:"user_id"`
	User       *user.User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Action string `gorm:"not null;column:action" json:"action"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (History) TableName() string { return "classification_histories" }
