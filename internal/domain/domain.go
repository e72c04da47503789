package domain

import (
	"github.com/yungbote/tubesort-backend/internal/domain/classification"
	"github.com/yungbote/tubesort-backend/internal/domain/playlist"
	"github.com/yungbote/tubesort-backend/internal/domain/user"
	"github.com/yungbote/tubesort-backend/internal/domain/video"
)

const (
	ClassificationStatusPending   = classification.StatusPending
	ClassificationStatusCompleted = classification.StatusCompleted
	ClassificationStatusFailed    = classification.StatusFailed

	RuleTypeKeyword = classification.RuleTypeKeyword
	RuleTypeTag     = classification.RuleTypeTag
	RuleTypeChannel = classification.RuleTypeChannel

	HistoryActionAdd    = classification.ActionAdd
	HistoryActionRemove = classification.ActionRemove
	HistoryActionModify = classification.ActionModify
)

type (
	User = user.User

	Video = video.Video

	Playlist      = playlist.Playlist
	PlaylistVideo = playlist.PlaylistVideo

	Classification        = classification.Classification
	ClassificationRule    = classification.Rule
	ClassificationHistory = classification.History
)
