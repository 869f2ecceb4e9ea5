package queue

import "time"

// DeckStats summarises a deck's cards as of a point in time.
type DeckStats struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	Learning  int `json:"learning"`
	Due       int `json:"due"`
	Suspended int `json:"suspended"`
}

// Summarize counts cards per partition without applying any daily limit.
// New and learning cards are counted whether or not they are due yet; Due only
// counts graduated cards whose due time has arrived.
func Summarize(cards []Entry, now time.Time) DeckStats {
	var stats DeckStats
	for _, c := range cards {
		stats.Total++
		switch {
		case !c.State.Active():
			stats.Suspended++
		case c.State.IsNew():
			stats.New++
		case c.State.IsLearning():
			stats.Learning++
		case c.State.IsDue(now):
			stats.Due++
		}
	}
	return stats
}
