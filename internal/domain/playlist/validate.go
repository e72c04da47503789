package playlist

import (
	"fmt"
	"regexp"

	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
)

const (
	MaxYoutubePlaylistIDLen = 50
	MaxTitleLen             = 100
	MaxDescriptionLen       = 500
)

// youtubePlaylistIDPattern is the external id shape YouTube hands out.
var youtubePlaylistIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{10,50}$`)

// Validate runs the boundary checks on user-supplied playlist fields. It is
// called before any storage write so bad input never reaches the engine.
func (p *Playlist) Validate() error {
	if err := ValidateYoutubePlaylistID(p.YoutubePlaylistID); err != nil {
		return err
	}
	if err := ValidateTitle(p.Title); err != nil {
		return err
	}
	return ValidateDescription(p.Description)
}

func ValidateYoutubePlaylistID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: youtube_playlist_id is required", apperrors.ErrInvalidArgument)
	}
	if len(id) > MaxYoutubePlaylistIDLen {
		return fmt.Errorf("%w: youtube_playlist_id exceeds %d characters", apperrors.ErrInvalidArgument, MaxYoutubePlaylistIDLen)
	}
	if !youtubePlaylistIDPattern.MatchString(id) {
		return fmt.Errorf("%w: youtube_playlist_id %q does not match [A-Za-z0-9_-]{10,50}", apperrors.ErrInvalidArgument, id)
	}
	return nil
}

func ValidateTitle(title string) error {
	if len(title) > MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", apperrors.ErrInvalidArgument, MaxTitleLen)
	}
	return nil
}

func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrInvalidArgument, MaxDescriptionLen)
	}
	return nil
}
