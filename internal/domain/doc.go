// Package domain contains the core entities of the flashcard system: decks,
// cards with their spaced repetition memory state, learner ratings and the
// review log. Subpackages hold the pure scheduling, queue selection and quiz
// logic that operates on these types.
package domain
