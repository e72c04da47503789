package classification

import (
	"time"

	"github.com/yungbote/tubesort-backend/internal/domain/playlist"
	"github.com/yungbote/tubesort-backend/internal/domain/user"
)

const (
	RuleTypeKeyword = "keyword"
	RuleTypeTag     = "tag"
	RuleTypeChannel = "channel"
)

// Rule is a stored (type, value, priority) triple scoped to a (user, playlist)
// pair. Lower priority evaluates first; evaluation itself lives outside this
// service, only storage and ordered retrieval are provided.
type Rule struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	UserID     uint               `gorm:"not null;index;column:user_id" json:"user_id"`
	User       *user.User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PlaylistID uint               `gorm:"not null;index;column:playlist_id" json:"playlist_id"`
	Playlist   *playlist.Playlist `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlaylistID;references:ID" json:"playlist,omitempty"`

	RuleType  string `gorm:"not null;column:rule_type" json:"rule_type"`
	RuleValue string `gorm:"not null;column:rule_value" json:"rule_value"`
	Priority  int    `gorm:"not null;column:priority" json:"priority"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Rule) TableName() string { return "classification_rules" }
