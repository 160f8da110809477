package daily

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// Mode identifies a game mode. The string form is the mode key used in
// override files, URLs and stored results.
type Mode string

const (
	ModeClassic    Mode = "classic"
	ModeCard       Mode = "card"
	ModePokedex    Mode = "pokedex"
	ModeSilhouette Mode = "silhouette"
	ModeZoom       Mode = "zoom"
	ModeColours    Mode = "colours"
	ModeLocations  Mode = "locations"
	ModeGameInfo   Mode = "gameinfo"
)

// Modes lists every mode in menu order.
var Modes = []Mode{
	ModeClassic, ModeCard, ModePokedex, ModeSilhouette,
	ModeZoom, ModeColours, ModeLocations, ModeGameInfo,
}

// CardSalt is added to the day key to seed the card-mode answer search.
const CardSalt = 9999

// salts decorrelates modes that share a day. Values are 7000 plus the mode
// key's first character code; colours adds its second character to avoid
// colliding with classic. They are part of the puzzle history: changing one
// changes every past and future answer of that mode.
var salts = map[Mode]int{
	ModeClassic:    7000 + 'c',
	ModePokedex:    7000 + 'p',
	ModeSilhouette: 7000 + 's',
	ModeZoom:       7000 + 'z',
	ModeColours:    7000 + 'c' + 'o',
	ModeLocations:  7000 + 'l',
	ModeGameInfo:   7000 + 'g',
	ModeCard:       CardSalt,
}

// Salt returns the seed offset for m.
func Salt(m Mode) (int, bool) {
	s, ok := salts[m]
	return s, ok
}

// ParseMode validates a mode key.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !lo.Contains(Modes, m) {
		return "", fmt.Errorf("daily: unknown mode %q", s)
	}
	return m, nil
}

// ModeKeys returns the string keys of Modes.
func ModeKeys() []string {
	return lo.Map(Modes, func(m Mode, _ int) string { return string(m) })
}

// Seed combines a day key with the mode salt. Negative day keys and unknown
// modes are caller bugs and panic.
func Seed(day DayKey, m Mode) uint32 {
	salt, ok := Salt(m)
	if !ok {
		panic(fmt.Sprintf("daily: no salt for mode %q", m))
	}
	return seedFrom(int(day), salt)
}

func seedFrom(parts ...int) uint32 {
	sum := lo.Sum(parts)
	if sum < 0 || int64(sum) > math.MaxUint32 {
		panic(fmt.Sprintf("daily: seed %d outside uint32", sum))
	}
	return uint32(sum)
}
