// Package store defines the persistence interfaces for decks, cards and the
// review log, plus the shared transaction helper. Implementations live under
// internal/platform.
package store
