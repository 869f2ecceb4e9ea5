// Package quiz builds multiple-choice and free-text quizzes from a deck's
// illustrated cards. Generation is pure apart from the injected random source.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// Quiz limits
const (
	DefaultCount = 10
	MinCards     = 4
	Distractors  = MinCards - 1
)

var (
	// ErrNotEnoughCards is returned when fewer than MinCards cards are eligible.
	ErrNotEnoughCards = errors.New("need at least 4 active cards with images to generate a quiz")

	// ErrInvalidMode is returned for an unknown quiz mode.
	ErrInvalidMode = errors.New("invalid quiz mode")
)

// Mode selects how a question is presented.
type Mode string

const (
	// ModeWriteAnswer shows one image; the learner types the answer.
	ModeWriteAnswer Mode = "write-answer"
	// ModeImageToText shows four illustrated options labelled with answers.
	ModeImageToText Mode = "image-to-text"
	// ModeTextToImage shows one image and four answer texts to choose from.
	ModeTextToImage Mode = "text-to-image"
)

// ParseMode converts a query value into a Mode. An empty string yields the zero
// Mode, meaning a random mix.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "", ModeWriteAnswer, ModeImageToText, ModeTextToImage:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Options controls quiz generation.
type Options struct {
	// Count is the maximum number of questions. Zero or negative uses DefaultCount.
	Count int
	// Mode fixes the mode of every question. The zero value draws a mode per
	// question: 20% write-answer, 40% image-to-text, 40% text-to-image.
	Mode Mode
}

// Answer is the card a question is about.
type Answer struct {
	ID       uuid.UUID `json:"id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	ImageURL string    `json:"image_url"`
}

// Option is one choice of a multiple-choice question.
type Option struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	ImageURL string    `json:"image_url,omitempty"`
}

// Question is a single quiz item. Write-answer questions carry no options.
type Question struct {
	ID      string   `json:"id"`
	Mode    Mode     `json:"mode"`
	Correct Answer   `json:"correct_card"`
	Options []Option `json:"options,omitempty"`
}

// Eligible filters cards down to those usable in a quiz: active and illustrated.
func Eligible(cards []domain.Card) []domain.Card {
	eligible := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		if c.State.Active() && c.HasMedia() {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

// Generate builds up to opts.Count questions, each about a different card.
// Ineligible cards are ignored; if fewer than MinCards remain, ErrNotEnoughCards
// is returned.
func Generate(cards []domain.Card, opts Options, rng *rand.Rand) ([]Question, error) {
	if _, err := ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}

	pool := Eligible(cards)
	if len(pool) < MinCards {
		return nil, ErrNotEnoughCards
	}

	count := opts.Count
	if count <= 0 {
		count = DefaultCount
	}
	count = min(count, len(pool))

	order := rng.Perm(len(pool))
	questions := make([]Question, 0, count)
	for i := 0; i < count; i++ {
		correct := pool[order[i]]
		mode := opts.Mode
		if mode == "" {
			mode = drawMode(rng)
		}

		q := Question{
			ID:      fmt.Sprintf("q-%d", i),
			Mode:    mode,
			Correct: answerFor(correct),
		}
		if mode != ModeWriteAnswer {
			q.Options = options(pool, order[i], mode, rng)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

func drawMode(rng *rand.Rand) Mode {
	switch r := rng.Float64(); {
	case r < 0.2:
		return ModeWriteAnswer
	case r < 0.6:
		return ModeImageToText
	default:
		return ModeTextToImage
	}
}

func answerFor(c domain.Card) Answer {
	return Answer{
		ID:       c.ID,
		Front:    c.Front,
		Back:     c.Back,
		ImageURL: c.PrimaryMedia(),
	}
}

// options returns the correct card plus Distractors other cards in random order.
func options(pool []domain.Card, correct int, mode Mode, rng *rand.Rand) []Option {
	picked := make([]int, 0, MinCards)
	picked = append(picked, correct)
	for _, idx := range rng.Perm(len(pool)) {
		if len(picked) == MinCards {
			break
		}
		if idx != correct {
			picked = append(picked, idx)
		}
	}
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	opts := make([]Option, len(picked))
	for i, idx := range picked {
		c := pool[idx]
		opts[i] = Option{ID: c.ID, Text: c.Back}
		if mode == ModeImageToText {
			opts[i].ImageURL = c.PrimaryMedia()
		}
	}
	return opts
}
