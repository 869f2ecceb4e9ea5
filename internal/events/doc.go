// Package events decouples the review workflow from its observers.
//
// Services emit an Event after a state change commits (a rating, a deck reset,
// a postponement or a generated quiz). Handlers registered on the emitter turn
// those into metrics and audit log lines without the services knowing about
// either.
package events
