package playlist

import (
	"time"

	"github.com/yungbote/tubesort-backend/internal/domain/user"
	"github.com/yungbote/tubesort-backend/internal/domain/video"
)

type Playlist struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	YoutubePlaylistID string     `gorm:"uniqueIndex;not null;size:50;column:youtube_playlist_id" json:"youtube_playlist_id"`
	Title             string     `gorm:"size:100;column:title" json:"title"`
	Description       string     `gorm:"size:500;column:description" json:"description"`
	UserID            uint       `gorm:"not null;index;column:user_id" json:"user_id"`
	User              *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Playlist) TableName() string { return "playlists" }

// PlaylistVideo is the unordered membership relation between playlists and
// videos. Rows go away with either side; no per-position ordering is kept.
type PlaylistVideo struct {
	PlaylistID uint         `gorm:"primaryKey;column:playlist_id" json:"playlist_id"`
	Playlist   *Playlist    `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlaylistID;references:ID" json:"playlist,omitempty"`
	VideoID    uint         `gorm:"primaryKey;column:video_id" json:"video_id"`
	Video      *video.Video `gorm:"constraint:OnDelete:CASCADE;foreignKey:VideoID;references:ID" json:"video,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PlaylistVideo) TableName() string { return "playlist_videos" }
