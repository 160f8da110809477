// internal/hints/thresholds.go
//
// Threshold-driven hint disclosure.
//
// A mode declares an ascending list of guess counts; each one unlocks one
// more disclosure tier. Level starts at 1 with no guesses and grows by one
// per crossed threshold:
//
//	level = 1 + count(t in thresholds : guesses >= t)
//
// The engine knows nothing about what a level shows; the per-mode mappers in
// disclosure.go give levels their meaning.

package hints

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsorted is returned for threshold lists that are not strictly ascending.
var ErrUnsorted = errors.New("hints: thresholds must be strictly ascending")

// Thresholds is a strictly ascending list of guess counts.
type Thresholds []int

// NewThresholds validates ts.
func NewThresholds(ts ...int) (Thresholds, error) {
	t := Thresholds(ts)
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustThresholds is NewThresholds for package-level tables.
func MustThresholds(ts ...int) Thresholds {
	t, err := NewThresholds(ts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Thresholds) validate() error {
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return fmt.Errorf("%w: %v", ErrUnsorted, []int(t))
		}
	}
	return nil
}

// mustCheck panics on contract violations: negative guess counts or
// unsorted thresholds built without NewThresholds.
func (t Thresholds) mustCheck(guesses int) {
	if guesses < 0 {
		panic(fmt.Sprintf("hints: negative guess count %d", guesses))
	}
	if err := t.validate(); err != nil {
		panic(err)
	}
}

// Level returns the disclosure level for a guess count (always >= 1).
func (t Thresholds) Level(guesses int) int {
	t.mustCheck(guesses)
	// first index with t[i] > guesses == number of thresholds crossed
	return 1 + sort.Search(len(t), func(i int) bool { return t[i] > guesses })
}

// NextIndex returns the index of the first threshold strictly greater than
// guesses, or -1 once every threshold has been crossed.
func (t Thresholds) NextIndex(guesses int) int {
	t.mustCheck(guesses)
	i := sort.Search(len(t), func(i int) bool { return t[i] > guesses })
	if i == len(t) {
		return -1
	}
	return i
}

// Next returns the next threshold value, if any.
func (t Thresholds) Next(guesses int) (int, bool) {
	i := t.NextIndex(guesses)
	if i < 0 {
		return 0, false
	}
	return t[i], true
}

// GuessesUntilNext returns how many more guesses unlock the next tier, or 0
// when nothing is left to unlock.
func (t Thresholds) GuessesUntilNext(guesses int) int {
	next, ok := t.Next(guesses)
	if !ok {
		return 0
	}
	return max(0, next-guesses)
}

// Progress is the mode-agnostic part of every disclosure.
type Progress struct {
	Level            int `json:"level"`
	NextThreshold    int `json:"nextThreshold,omitempty"`
	GuessesUntilNext int `json:"guessesUntilNext"`
}

// Progress bundles Level, Next and GuessesUntilNext.
func (t Thresholds) Progress(guesses int) Progress {
	next, _ := t.Next(guesses)
	return Progress{
		Level:            t.Level(guesses),
		NextThreshold:    next,
		GuessesUntilNext: t.GuessesUntilNext(guesses),
	}
}

// ClueLevel is Level for callers holding a plain slice.
func ClueLevel(guesses int, thresholds []int) int {
	return Thresholds(thresholds).Level(guesses)
}
