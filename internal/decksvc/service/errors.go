package service

import (
	"errors"
	"fmt"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrReadOnly           = errors.New("guest accounts are read only")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrStale              = errors.New("changed by another request, reload and retry")
)

// storeErr maps store sentinels onto service errors.
func storeErr(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrConflict
	case errors.Is(err, store.ErrStale):
		return ErrStale
	case errors.Is(err, store.ErrLimit):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}
