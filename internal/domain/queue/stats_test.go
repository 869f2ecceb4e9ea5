package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		newEntry(now.Add(-time.Hour)),
		newEntry(now.Add(time.Hour)),
		learningEntry(now.Add(-time.Hour)),
		dueEntry(now.Add(-time.Hour), 2),
		dueEntry(now.AddDate(0, 0, 3), 2),
		suspend(dueEntry(now.Add(-time.Hour), 5)),
		suspend(newEntry(now)),
	}

	stats := Summarize(entries, now)

	assert.Equal(t, DeckStats{
		Total:     7,
		New:       2,
		Learning:  1,
		Due:       1,
		Suspended: 2,
	}, stats)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DeckStats{}, Summarize(nil, now))
}
