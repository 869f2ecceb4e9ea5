package store

import (
	"errors"
	"fmt"
)

// Store sentinels. Implementations wrap driver errors with these so callers
// can branch on errors.Is without importing a driver.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrDeckNotFound also covers decks owned by someone else.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)
	ErrCardNotFound = fmt.Errorf("%w: card", ErrNotFound)
)
