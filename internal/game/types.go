// internal/game/types.go
//
// Core type definitions for a Pokedle game session.
// Defines:
//   - Feedback: per-attribute result of comparing a guess with the answer.
//   - Comparison: the classic-mode feedback row for one guess.
//   - Guess: one accepted guess and its feedback.
//   - Game: state for a single in-progress or won session.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/roster"
)

// Feedback is the evaluation of one attribute of a guess.
// Possible values:
//   - "match":   equal to the answer's value.
//   - "partial": overlaps the answer (shared type, shared colour).
//   - "miss":    no overlap.
//   - "higher":  the answer's value is greater than the guess's.
//   - "lower":   the answer's value is smaller than the guess's.
type Feedback string

const (
	FeedbackMatch   Feedback = "match"
	FeedbackPartial Feedback = "partial"
	FeedbackMiss    Feedback = "miss"
	FeedbackHigher  Feedback = "higher"
	FeedbackLower   Feedback = "lower"
)

// Comparison is the classic feedback row.
type Comparison struct {
	Generation     Feedback `json:"generation"`
	Types          Feedback `json:"types"`
	EvolutionStage Feedback `json:"evolutionStage"`
	Habitat        Feedback `json:"habitat"`
	Height         Feedback `json:"height"`
	Weight         Feedback `json:"weight"`
	Colour         Feedback `json:"colour"`
}

// Guess is one accepted guess. Feedback is only filled in classic mode; the
// other modes reveal attributes through their own thresholds.
type Guess struct {
	Pokemon  *roster.Pokemon `json:"pokemon"`
	Feedback *Comparison     `json:"feedback,omitempty"`
	Correct  bool            `json:"correct"`
}

// Errors returned by ApplyGuess. None of them change the session.
var (
	ErrUnknownGuess   = errors.New("unknown pokemon")
	ErrAlreadyGuessed = errors.New("already guessed")
	ErrFinished       = errors.New("game finished")
)

// Game holds the state of a single session for one mode and day.
type Game struct {
	ID      string          // Unique game identifier (UUID).
	Mode    daily.Mode      // Which puzzle is being played.
	Day     daily.DayKey    // The day the answer was selected for.
	Answer  *roster.Pokemon // Never sent to the client before the win.
	Card    *daily.Card     // Card mode only.
	Guesses []Guess         // Most recent first.
	Won     bool            // True once a guess matched the answer.
	Start   time.Time       // Session creation time.
	End     time.Time       // Time of the winning guess.
}
