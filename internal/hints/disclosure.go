// internal/hints/disclosure.go
//
// Per-mode disclosure mappers: guess count → concrete reveal parameters.
//
// Every mapper is a pure function of (answer, guesses) plus whatever fixed
// inputs the mode needs. A nil answer means the day's data is not ready and
// yields the zero value (Level 0: show nothing).

package hints

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/prng"
	"github.com/robalobadob/pokedle/internal/roster"
)

// Per-mode threshold tables.
var (
	PokedexThresholds    = MustThresholds(4, 8, 12)
	SilhouetteThresholds = MustThresholds(5, 10)
	ZoomThresholds       = MustThresholds(5, 10)
	ColoursThresholds    = MustThresholds(3, 6, 9)
	LocationsThresholds  = MustThresholds(4, 8, 12)
	GameInfoThresholds   = MustThresholds(2, 4, 6, 8, 10, 12)
	CardThresholds       = MustThresholds(CardTypesAt, CardFullImageAt)
)

// Card mode reveals types, then the uncropped card, at these guess counts.
const (
	CardTypesAt     = 3
	CardFullImageAt = 6
)

// Blur radius in pixels indexed by guess count; the last value repeats.
var (
	fullBleedBlur = []int{24, 20, 16, 12, 9, 6, 3, 0}
	standardBlur  = []int{16, 12, 9, 6, 4, 2, 0}
)

// Zoom starts at maxZoom and steps out by zoomStep per guess, never below 1.
const (
	maxZoom  = 4.0
	zoomStep = 0.5
)

// ---------------------------------------------------------------------------
// Card

type CardDisclosure struct {
	Progress
	BlurPx       int      `json:"blurPx"`
	ShowFullCard bool     `json:"showFullCard"`
	Types        []string `json:"types,omitempty"`
}

// Card maps guesses to blur radius and the two card-mode reveals.
func Card(answer *roster.Pokemon, ct roster.CardType, guesses int) CardDisclosure {
	if answer == nil {
		return CardDisclosure{}
	}
	steps := standardBlur
	if ct.FullBleed() {
		steps = fullBleedBlur
	}
	d := CardDisclosure{
		Progress:     CardThresholds.Progress(guesses),
		BlurPx:       steps[min(guesses, len(steps)-1)],
		ShowFullCard: guesses >= CardFullImageAt,
	}
	if guesses >= CardTypesAt {
		d.Types = answer.Types
	}
	return d
}

// ---------------------------------------------------------------------------
// Pokédex

type PokedexDisclosure struct {
	Progress
	Entries []string `json:"entries"`
	Types   []string `json:"types,omitempty"`
}

// Pokedex shows one flavor-text entry per level (up to three), then types.
func Pokedex(answer *roster.Pokemon, guesses int) PokedexDisclosure {
	if answer == nil {
		return PokedexDisclosure{}
	}
	p := PokedexThresholds.Progress(guesses)
	d := PokedexDisclosure{
		Progress: p,
		Entries:  lo.Subset(answer.FlavorTextEntries, 0, uint(min(p.Level, 3))),
	}
	if p.Level >= 4 {
		d.Types = answer.Types
	}
	return d
}

// ---------------------------------------------------------------------------
// Silhouette and zoom

type SilhouetteDisclosure struct {
	Progress
	Generation int      `json:"generation,omitempty"`
	Types      []string `json:"types,omitempty"`
}

// Silhouette reveals the generation at level 2 and types at level 3.
func Silhouette(answer *roster.Pokemon, guesses int) SilhouetteDisclosure {
	if answer == nil {
		return SilhouetteDisclosure{}
	}
	return silhouetteLike(answer, SilhouetteThresholds.Progress(guesses))
}

func silhouetteLike(answer *roster.Pokemon, p Progress) SilhouetteDisclosure {
	d := SilhouetteDisclosure{Progress: p}
	if p.Level >= 2 {
		d.Generation = int(answer.Generation)
	}
	if p.Level >= 3 {
		d.Types = answer.Types
	}
	return d
}

type ZoomDisclosure struct {
	SilhouetteDisclosure
	ZoomFactor float64 `json:"zoomFactor"`
}

// Zoom crops tighter for fewer guesses and shares silhouette's text reveals.
func Zoom(answer *roster.Pokemon, guesses int) ZoomDisclosure {
	if answer == nil {
		return ZoomDisclosure{}
	}
	return ZoomDisclosure{
		SilhouetteDisclosure: silhouetteLike(answer, ZoomThresholds.Progress(guesses)),
		ZoomFactor:           max(1.0, maxZoom-zoomStep*float64(guesses)),
	}
}

// ---------------------------------------------------------------------------
// Colours

type ColoursDisclosure struct {
	Progress
	Colours    []string `json:"colours"`
	ShowSwatch bool     `json:"showSwatch"`
	Types      []string `json:"types,omitempty"`
	Generation int      `json:"generation,omitempty"`
}

// Colours always shows the colour list; levels add the top-30 swatch,
// types, then generation.
func Colours(answer *roster.Pokemon, guesses int) ColoursDisclosure {
	if answer == nil {
		return ColoursDisclosure{}
	}
	p := ColoursThresholds.Progress(guesses)
	d := ColoursDisclosure{Progress: p, Colours: answer.Colours(), ShowSwatch: p.Level >= 2}
	if p.Level >= 3 {
		d.Types = answer.Types
	}
	if p.Level >= 4 {
		d.Generation = int(answer.Generation)
	}
	return d
}

// ---------------------------------------------------------------------------
// Locations

// generationGames lists the games of each debut generation that has a fixed
// game set. Later generations treat every location as their own.
var generationGames = map[roster.Generation][]string{
	1: {"red", "blue", "yellow"},
	2: {"gold", "silver", "crystal"},
	3: {"ruby", "sapphire", "emerald", "firered", "leafgreen"},
}

type LocationsDisclosure struct {
	Progress
	Own              []roster.Encounter `json:"own"`
	Other            []roster.Encounter `json:"other,omitempty"`
	OtherHidden      int                `json:"otherHidden"`
	FromPreEvolution bool               `json:"fromPreEvolution"`
	Types            []string           `json:"types,omitempty"`
	EvolutionStage   int                `json:"evolutionStage,omitempty"`
}

// Locations shows encounters from the answer's debut generation first;
// level 2 adds the other generations, level 3 types, level 4 evolution stage.
// An answer with no wild encounters borrows its nearest pre-evolution's.
func Locations(r *roster.Roster, answer *roster.Pokemon, guesses int) LocationsDisclosure {
	if answer == nil {
		return LocationsDisclosure{}
	}
	p := LocationsThresholds.Progress(guesses)
	source, borrowed := encounterSource(r, answer)
	own, other := SplitEncounters(source.LocationAreaEncounters, answer.Generation)

	d := LocationsDisclosure{Progress: p, Own: own, FromPreEvolution: borrowed}
	if p.Level >= 2 {
		d.Other = other
	} else {
		d.OtherHidden = len(other)
	}
	if p.Level >= 3 {
		d.Types = answer.Types
	}
	if p.Level >= 4 {
		d.EvolutionStage = answer.EvolutionStage
	}
	return d
}

// encounterSource walks back the evolution chain until it finds an entry
// with encounters. It returns the answer itself when none has any.
func encounterSource(r *roster.Roster, answer *roster.Pokemon) (*roster.Pokemon, bool) {
	seen := map[int]bool{answer.ID: true}
	cur := answer
	for len(cur.LocationAreaEncounters) == 0 {
		pre, ok := r.PreEvolution(cur)
		if !ok || seen[pre.ID] {
			return answer, false
		}
		seen[pre.ID] = true
		cur = pre
	}
	return cur, cur != answer
}

// SplitEncounters partitions each encounter's game list into the debut
// generation's games and the rest, keeping encounters with at least one game
// on each side.
func SplitEncounters(encs []roster.Encounter, gen roster.Generation) (own, other []roster.Encounter) {
	games, ok := generationGames[gen]
	if !ok {
		return encs, nil
	}
	for _, e := range encs {
		mine, rest := lo.FilterReject(e.Games, func(g string, _ int) bool { return lo.Contains(games, g) })
		if len(mine) > 0 {
			c := e
			c.Games = mine
			own = append(own, c)
		}
		if len(rest) > 0 {
			c := e
			c.Games = rest
			other = append(other, c)
		}
	}
	return own, other
}

// ---------------------------------------------------------------------------
// Game info

// Game info clue categories.
const (
	ClueStats     = "stats"
	ClueAbility   = "ability"
	ClueMoves     = "moves"
	ClueCategory  = "category"
	ClueLocations = "locations"
	ClueHeldItems = "held_items"
	ClueShape     = "shape"
)

var clueCategories = []string{ClueStats, ClueAbility, ClueMoves, ClueCategory, ClueLocations, ClueHeldItems, ClueShape}

type Clue struct {
	Category string   `json:"category"`
	Details  []string `json:"details"`
}

type GameInfoDisclosure struct {
	Progress
	Clues     []Clue `json:"clues"`
	Remaining int    `json:"remaining"`
}

// GameInfo reveals one clue per level in the day's seeded category order.
func GameInfo(answer *roster.Pokemon, day daily.DayKey, guesses int) GameInfoDisclosure {
	if answer == nil {
		return GameInfoDisclosure{}
	}
	p := GameInfoThresholds.Progress(guesses)
	order := ClueOrder(answer, daily.Seed(day, daily.ModeGameInfo))
	shown := min(p.Level, len(order))
	return GameInfoDisclosure{
		Progress:  p,
		Clues:     lo.Map(order[:shown], func(c string, _ int) Clue { return clueFor(answer, c) }),
		Remaining: len(order) - shown,
	}
}

// ClueOrder shuffles the clue categories with the mode's generator. The
// first draw is skipped because it is the one that picks the answer; the
// remaining stream drives a Fisher–Yates shuffle from the last index.
// held_items is dropped when the answer holds nothing, and shape is never
// the first clue.
func ClueOrder(answer *roster.Pokemon, seed uint32) []string {
	cats := lo.Filter(clueCategories, func(c string, _ int) bool {
		return c != ClueHeldItems || len(answer.HeldItems) > 0
	})
	rng := prng.New(seed)
	rng.Float64()
	for i := len(cats) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cats[i], cats[j] = cats[j], cats[i]
	}
	if cats[0] == ClueShape {
		cats[0], cats[1] = cats[1], cats[0]
	}
	return cats
}

func clueFor(p *roster.Pokemon, category string) Clue {
	c := Clue{Category: category}
	switch category {
	case ClueStats:
		for _, name := range roster.StatNames {
			if v, ok := p.Stats[name]; ok {
				c.Details = append(c.Details, fmt.Sprintf("%s %d", name, v))
			}
		}
	case ClueAbility:
		c.Details = p.Abilities
	case ClueMoves:
		c.Details = lo.Subset(p.Moves, 0, 4)
	case ClueCategory:
		c.Details = []string{p.Genus}
	case ClueLocations:
		areas := lo.Uniq(lo.Map(p.LocationAreaEncounters, func(e roster.Encounter, _ int) string { return e.LocationArea }))
		if len(areas) == 0 {
			areas = []string{"no wild encounters"}
		}
		c.Details = lo.Subset(areas, 0, 3)
	case ClueHeldItems:
		c.Details = p.HeldItems
	case ClueShape:
		c.Details = []string{p.Shape}
	}
	return c
}

// ---------------------------------------------------------------------------
// Dispatch

// Disclose returns the disclosure for mode after guesses. Classic mode has
// no thresholds and returns nil; ct is only read in card mode, r only in
// locations mode.
func Disclose(mode daily.Mode, r *roster.Roster, answer *roster.Pokemon, ct roster.CardType, day daily.DayKey, guesses int) any {
	switch mode {
	case daily.ModeCard:
		return Card(answer, ct, guesses)
	case daily.ModePokedex:
		return Pokedex(answer, guesses)
	case daily.ModeSilhouette:
		return Silhouette(answer, guesses)
	case daily.ModeZoom:
		return Zoom(answer, guesses)
	case daily.ModeColours:
		return Colours(answer, guesses)
	case daily.ModeLocations:
		return Locations(r, answer, guesses)
	case daily.ModeGameInfo:
		return GameInfo(answer, day, guesses)
	default:
		return nil
	}
}
