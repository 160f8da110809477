// internal/daily/selector.go
//
// Deterministic answer-of-the-day selection.
//
// Responsibilities:
//   - Simple modes: seed = dayKey + mode salt, index = floor(rng() * len(roster)).
//   - Card mode: choose the day's card type, then search the roster for a
//     Pokémon that has artwork of that type (bounded at MaxCardAttempts).
//   - Override table first: an entry for (day, mode) wins outright and no
//     generator is consulted, so reinstating an override never shifts any
//     other seeded sequence.
//
// Expected conditions are reported through Answer.Status rather than errors:
//   - pending:     roster not loaded yet.
//   - unavailable: card search found no artwork (or no manifest at all).
//
// Overrides naming an id that is not in the roster are logged and ignored.

package daily

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokedle/internal/override"
	"github.com/robalobadob/pokedle/internal/prng"
	"github.com/robalobadob/pokedle/internal/roster"
)

// MaxCardAttempts bounds the card-mode search.
const MaxCardAttempts = 200

// Status classifies a selection result.
type Status string

const (
	StatusReady       Status = "ready"
	StatusPending     Status = "pending"
	StatusUnavailable Status = "unavailable"
)

// Card describes the artwork chosen for a card-mode answer.
type Card struct {
	Cropped  string          `json:"cropped"`
	Resized  string          `json:"resized"`
	CardFile string          `json:"cardFile"`
	Folder   string          `json:"folder"`
	CardType roster.CardType `json:"cardType"`
}

// Answer is the outcome of a daily selection.
type Answer struct {
	Status     Status
	Pokemon    *roster.Pokemon
	Card       *Card // card mode only
	Overridden bool
	Attempts   int // card search draws used; 0 for overrides and simple modes
}

// Ready reports whether the answer can be played.
func (a Answer) Ready() bool { return a.Status == StatusReady && a.Pokemon != nil }

// Selector holds the immutable inputs every selection reads. All methods are
// pure functions of those inputs and their arguments; a Selector is safe for
// concurrent use once built.
type Selector struct {
	Roster               *roster.Roster
	Overrides            *override.Table
	Manifest             roster.CardManifest
	SaturdayFullArtRatio float64
	AssetBaseURL         string
}

// Select returns the answer for mode on day. Card mode runs with a zero
// reload nonce.
func (s *Selector) Select(mode Mode, day DayKey) Answer {
	if mode == ModeCard {
		return s.SelectCard(day, 0)
	}
	if s.Roster.Len() == 0 {
		return Answer{Status: StatusPending}
	}
	if v, ok := s.Overrides.Lookup(day.String(), string(mode)); ok {
		if p, ok := s.overridePokemon(mode, day, v); ok {
			return Answer{Status: StatusReady, Pokemon: p, Overridden: true}
		}
	}
	rng := prng.New(Seed(day, mode))
	return Answer{Status: StatusReady, Pokemon: s.Roster.At(rng.Intn(s.Roster.Len()))}
}

// CardType returns the day's card type. The Saturday draw comes from the
// plain day-key generator, independent of the answer search stream.
func (s *Selector) CardType(day DayKey) roster.CardType {
	if day < 0 {
		panic(fmt.Sprintf("daily: negative day key %d", day))
	}
	rng := prng.New(uint32(day))
	return CardTypeForDay(day.Weekday(), rng.Float64, s.SaturdayFullArtRatio)
}

// SelectCard runs the card-mode selection. reload is a retry nonce added to
// the search seed; production callers pass 0.
func (s *Selector) SelectCard(day DayKey, reload int) Answer {
	if s.Roster.Len() == 0 {
		return Answer{Status: StatusPending}
	}
	if v, ok := s.Overrides.Lookup(day.String(), string(ModeCard)); ok {
		if a, ok := s.cardOverride(day, v); ok {
			return a
		}
	}

	ct := s.CardType(day)
	rng := prng.New(seedFrom(int(day), CardSalt, reload))
	n := s.Roster.Len()
	for attempt := 1; attempt <= MaxCardAttempts; attempt++ {
		candidate := s.Roster.At(rng.Intn(n))
		files := s.Manifest.Files(ct, candidate.ID)
		if len(files) == 0 {
			continue
		}
		file := files[rng.Intn(len(files))]
		return Answer{
			Status:   StatusReady,
			Pokemon:  candidate,
			Card:     s.card(ct, file),
			Attempts: attempt,
		}
	}

	log.Warn().
		Stringer("dayKey", day).
		Str("cardType", string(ct)).
		Int("attempts", MaxCardAttempts).
		Msg("no card artwork found for the day")
	return Answer{Status: StatusUnavailable, Attempts: MaxCardAttempts}
}

// overridePokemon resolves an override id, logging ids missing from the roster.
func (s *Selector) overridePokemon(mode Mode, day DayKey, v override.Value) (*roster.Pokemon, bool) {
	p, ok := s.Roster.ByID(v.PokemonID)
	if !ok {
		log.Warn().
			Str("mode", string(mode)).
			Stringer("dayKey", day).
			Int("pokemonId", v.PokemonID).
			Msg("override names a pokemon missing from the roster; using seeded selection")
	}
	return p, ok
}

// cardOverride builds a card answer from an override entry. Without an
// explicit card type the manifest is scanned for the (id, file) pair.
func (s *Selector) cardOverride(day DayKey, v override.Value) (Answer, bool) {
	p, ok := s.overridePokemon(ModeCard, day, v)
	if !ok {
		return Answer{}, false
	}
	ct, file := v.CardType, v.CardFile
	switch {
	case ct == "":
		ct, file, ok = s.Manifest.Find(p.ID, file)
	case file == "":
		files := s.Manifest.Files(ct, p.ID)
		ok = len(files) > 0
		if ok {
			file = files[0]
		}
	}
	if !ok {
		log.Warn().
			Stringer("dayKey", day).
			Int("pokemonId", p.ID).
			Str("cardType", string(v.CardType)).
			Str("cardFile", v.CardFile).
			Msg("card override has no matching artwork; using seeded selection")
		return Answer{}, false
	}
	return Answer{Status: StatusReady, Pokemon: p, Card: s.card(ct, file), Overridden: true}, true
}

func (s *Selector) card(ct roster.CardType, file string) *Card {
	base := strings.TrimRight(s.AssetBaseURL, "/")
	folder := string(ct)
	return &Card{
		Cropped:  fmt.Sprintf("%s/cards/%s/cropped/%s", base, folder, file),
		Resized:  fmt.Sprintf("%s/cards/%s/resized/%s", base, folder, file),
		CardFile: file,
		Folder:   folder,
		CardType: ct,
	}
}
