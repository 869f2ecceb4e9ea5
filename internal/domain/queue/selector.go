// Package queue selects the cards a learner should study today.
//
// Selection is pure: it works on a snapshot of card states, the deck's daily
// counters and a reference time, and never fails.
package queue

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// DefaultLearningCap bounds the learning partition independently of the deck's daily limits.
const DefaultLearningCap = 50

// Entry is the part of a card that queue selection looks at.
type Entry struct {
	ID    uuid.UUID
	State domain.MemoryState
}

// EntriesFromCards projects cards onto queue entries, keeping their order.
func EntriesFromCards(cards []domain.Card) []Entry {
	entries := make([]Entry, len(cards))
	for i := range cards {
		entries[i] = Entry{ID: cards[i].ID, State: cards[i].State}
	}
	return entries
}

// Options tunes queue selection.
type Options struct {
	// LearningCap limits the learning partition. Zero or negative uses DefaultLearningCap.
	LearningCap int
}

func (o Options) learningCap() int {
	if o.LearningCap <= 0 {
		return DefaultLearningCap
	}
	return o.LearningCap
}

// Queue is today's study set, split into three disjoint partitions.
type Queue struct {
	New      []uuid.UUID `json:"new"`
	Learning []uuid.UUID `json:"learning"`
	Due      []uuid.UUID `json:"due"`
}

// Session returns the presentation order: new cards, then learning, then due.
func (q Queue) Session() []uuid.UUID {
	session := make([]uuid.UUID, 0, q.Len())
	session = append(session, q.New...)
	session = append(session, q.Learning...)
	session = append(session, q.Due...)
	return session
}

// Len is the total number of cards across all partitions.
func (q Queue) Len() int {
	return len(q.New) + len(q.Learning) + len(q.Due)
}

// Select partitions cards into new, learning and due sets as of now.
//
// Suspended cards and cards not yet due are skipped. Each partition is ordered
// by due time, ties keeping input order, and truncated to its cap:
//   - due: max(0, DailyReviewLimit - ReviewsDoneToday)
//   - new: max(0, DailyNewLimit)
//   - learning: opts.LearningCap
//
// Partitions are never padded from one another.
func Select(cards []Entry, now time.Time, counters domain.DeckCounters, opts Options) Queue {
	var newCards, learning, due []Entry

	for _, c := range cards {
		switch classify(c.State, now) {
		case classNew:
			newCards = append(newCards, c)
		case classLearning:
			learning = append(learning, c)
		case classDue:
			due = append(due, c)
		}
	}

	return Queue{
		New:      take(newCards, counters.RemainingNew()),
		Learning: take(learning, opts.learningCap()),
		Due:      take(due, counters.RemainingReviews()),
	}
}

type class int

const (
	classNone class = iota
	classSuspended
	classNew
	classLearning
	classDue
)

// classify places a state in at most one partition. Cards that are not yet due
// and not suspended fall into classNone.
func classify(s domain.MemoryState, now time.Time) class {
	switch {
	case !s.Active():
		return classSuspended
	case !s.IsDue(now):
		return classNone
	case s.Repetitions > 0:
		return classDue
	case s.Reviewed():
		return classLearning
	default:
		return classNew
	}
}

func take(entries []Entry, limit int) []uuid.UUID {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.State.DueAt.Compare(b.State.DueAt)
	})

	n := min(len(entries), max(0, limit))
	ids := make([]uuid.UUID, n)
	for i := 0; i < n; i++ {
		ids[i] = entries[i].ID
	}
	return ids
}
