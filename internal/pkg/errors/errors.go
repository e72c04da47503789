package errors

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for input rejected before storage.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDuplicateKey is returned when a write collides with a unique column.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrForeignKeyViolated is returned when a write references a missing parent row.
	ErrForeignKeyViolated = errors.New("foreign key violated")
)

// Translate maps storage-engine constraint errors onto the package sentinels.
// Requires gorm.Config{TranslateError: true} on the session. Anything else
// passes through untouched so callers never lose the underlying cause.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrForeignKeyViolated, err)
	default:
		return err
	}
}
