package daily

import (
	"time"

	"github.com/robalobadob/pokedle/internal/roster"
)

// DefaultSaturdayFullArtRatio is the share of Saturdays that show full-art
// cards rather than shiny ones. Deployments have used both 0.5 and 0.9; it
// is configurable until the intended split is settled.
const DefaultSaturdayFullArtRatio = 0.5

// CardTypeForDay applies the weekly card schedule: Sunday special, Saturday
// full_art or shiny, every other day normal. draw is called exactly once on
// Saturday and never otherwise, so callers must take this draw before any
// other draw from the same generator that has to stay stable.
func CardTypeForDay(weekday time.Weekday, draw func() float64, fullArtRatio float64) roster.CardType {
	switch weekday {
	case time.Sunday:
		return roster.CardSpecial
	case time.Saturday:
		if draw() < fullArtRatio {
			return roster.CardFullArt
		}
		return roster.CardShiny
	default:
		return roster.CardNormal
	}
}
