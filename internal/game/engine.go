// internal/game/engine.go
//
// Core game engine for a single Pokedle session.
// Responsibilities:
//   - Create sessions bound to a mode, a day key and that day's answer.
//   - Resolve guesses against the roster and reject repeats.
//   - Score classic guesses with the attribute comparison.
//   - Track the state transition playing → won.
//
// Notes:
//   - There is no guess cap; a session only ends on the correct guess.
//   - Only classic sessions score guesses. The other modes gate the same
//     attributes behind hint thresholds, so their guesses carry no feedback.
package game

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/roster"
)

// New constructs a session for the given answer, started at now.
func New(mode daily.Mode, day daily.DayKey, answer *roster.Pokemon, now time.Time) *Game {
	return &Game{
		ID:      uuid.NewString(),
		Mode:    mode,
		Day:     day,
		Answer:  answer,
		Guesses: []Guess{},
		Start:   now,
	}
}

// ApplyGuess resolves name against r, scores it and records it.
//
// Validation rules:
//   - Game must not be won (ErrFinished).
//   - Name must be a roster entry (ErrUnknownGuess).
//   - The same Pokémon may be guessed only once (ErrAlreadyGuessed).
//
// On any error the session is left untouched.
func (g *Game) ApplyGuess(r *roster.Roster, name string, now time.Time) (Guess, error) {
	if g.Won {
		return Guess{}, ErrFinished
	}
	p, ok := r.ByName(name)
	if !ok {
		return Guess{}, ErrUnknownGuess
	}
	if lo.ContainsBy(g.Guesses, func(x Guess) bool { return x.Pokemon.ID == p.ID }) {
		return Guess{}, ErrAlreadyGuessed
	}

	guess := Guess{Pokemon: p, Correct: p.ID == g.Answer.ID}
	if g.Mode == daily.ModeClassic {
		c := Compare(p, g.Answer)
		guess.Feedback = &c
	}
	g.Guesses = append([]Guess{guess}, g.Guesses...)
	if g.Guesses[0].Pokemon.ID == g.Answer.ID {
		g.Won = true
		g.End = now
	}
	return guess, nil
}

// State reports "won" or "playing".
func (g *Game) State() string {
	if g.Won {
		return "won"
	}
	return "playing"
}

// GuessCount is the number of accepted guesses.
func (g *Game) GuessCount() int { return len(g.Guesses) }

// Elapsed is the time from start to the winning guess, or to now while playing.
func (g *Game) Elapsed(now time.Time) time.Duration {
	if g.Won {
		return g.End.Sub(g.Start)
	}
	return now.Sub(g.Start)
}

// Compare scores guess against answer attribute by attribute.
func Compare(guess, answer *roster.Pokemon) Comparison {
	return Comparison{
		Generation:     compareOrdered(int(guess.Generation), int(answer.Generation)),
		Types:          compareSets(guess.Types, answer.Types),
		EvolutionStage: compareOrdered(guess.EvolutionStage, answer.EvolutionStage),
		Habitat:        compareEqual(guess.Habitat, answer.Habitat),
		Height:         compareOrdered(guess.Height, answer.Height),
		Weight:         compareOrdered(guess.Weight, answer.Weight),
		Colour:         compareColour(guess, answer),
	}
}

// compareOrdered points the player toward the answer: "higher" means the
// answer's value is above the guess.
func compareOrdered[T int | float64](guess, answer T) Feedback {
	switch {
	case guess == answer:
		return FeedbackMatch
	case guess < answer:
		return FeedbackHigher
	default:
		return FeedbackLower
	}
}

func compareEqual(guess, answer string) Feedback {
	if strings.EqualFold(guess, answer) {
		return FeedbackMatch
	}
	return FeedbackMiss
}

// compareSets ignores order and case: equal sets match, any shared element
// is partial.
func compareSets(guess, answer []string) Feedback {
	g, a := lower(guess), lower(answer)
	switch {
	case lo.Every(g, a) && lo.Every(a, g):
		return FeedbackMatch
	case lo.Some(g, a):
		return FeedbackPartial
	default:
		return FeedbackMiss
	}
}

// compareColour matches on the main colour; either main colour appearing
// among the other's colours is partial.
func compareColour(guess, answer *roster.Pokemon) Feedback {
	gm, am := strings.ToLower(guess.MainColour), strings.ToLower(answer.MainColour)
	if gm == am {
		return FeedbackMatch
	}
	if lo.Contains(lower(answer.Colours()), gm) || lo.Contains(lower(guess.Colours()), am) {
		return FeedbackPartial
	}
	return FeedbackMiss
}

func lower(xs []string) []string {
	return lo.Map(xs, func(s string, _ int) string { return strings.ToLower(s) })
}
