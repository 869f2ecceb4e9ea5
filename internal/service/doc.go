// Package service contains the deck-level use cases: statistics, reset and
// quiz generation. It orchestrates the store interfaces and the pure domain
// packages; the per-card review workflow lives in the card_review subpackage
// and token handling in auth.
//
// Services return sentinel errors for expected conditions (errors.Is) and wrap
// unexpected ones in DeckServiceError; the API layer maps both to HTTP status
// codes.
package service
