// assets/embed.go
//
// Default game data compiled into the binary. Each loader reads the file at
// path when one is configured and falls back to the embedded copy otherwise,
// so the server runs with no data directory at all.

package assets

import (
	"embed"
	"io"
	"os"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/override"
	"github.com/robalobadob/pokedle/internal/roster"
)

//go:embed roster.json cards.json overrides.yaml
var FS embed.FS

func open(path, embedded string) (io.ReadCloser, error) {
	if path != "" {
		return os.Open(path)
	}
	return FS.Open(embedded)
}

// Roster loads the Pokémon roster.
func Roster(path string) (*roster.Roster, error) {
	f, err := open(path, "roster.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return roster.Load(f)
}

// Manifest loads the card-art manifest.
func Manifest(path string) (roster.CardManifest, error) {
	f, err := open(path, "cards.json")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return roster.LoadManifest(f)
}

// Overrides loads the override table, accepting only known mode keys.
func Overrides(path string) (*override.Table, error) {
	f, err := open(path, "overrides.yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return override.Load(f, daily.ModeKeys())
}
