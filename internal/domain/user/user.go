package user

import (
	"time"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Email      string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	GoogleID   string `gorm:"uniqueIndex;column:google_id" json:"google_id"`
	Name       string `gorm:"column:name" json:"name"`
	PictureURL string `gorm:"column:picture_url" json:"picture_url"`

	YoutubeAccessToken  string `gorm:"column:youtube_access_token" json:"-"`
	YoutubeRefreshToken string `gorm:"column:youtube_refresh_token" json:"-"`

	// TokenExpiresAt is carried in the schema but never populated by the
	// login flow; the expiry of the Google token is not tracked yet.
	TokenExpiresAt *time.Time `gorm:"column:token_expires_at" json:"token_expires_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "users" }
