package video

import (
	"time"

	"gorm.io/datatypes"
)

// Video is platform metadata pulled from the YouTube Data API. Videos are
// shared rows: they belong to no user and are never cascade-deleted.
type Video struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	YoutubeVideoID string `gorm:"uniqueIndex;not null;column:youtube_video_id" json:"youtube_video_id"`
	Title          string `gorm:"index;column:title" json:"title"`
	Description    string `gorm:"type:text;column:description" json:"description"`
	ThumbnailURL   string `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	ChannelID      string `gorm:"index;column:channel_id" json:"channel_id"`
	ChannelTitle   string `gorm:"column:channel_title" json:"channel_title"`

	PublishedAt *time.Time     `gorm:"column:published_at" json:"published_at,omitempty"`
	Duration    string         `gorm:"column:duration" json:"duration"`
	ViewCount   int64          `gorm:"column:view_count" json:"view_count"`
	LikeCount   int64          `gorm:"column:like_count" json:"like_count"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Video) TableName() string { return "videos" }
