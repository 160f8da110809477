// internal/roster/manifest.go
//
// Card artwork manifest: card type → Pokémon id → candidate card filenames.
// The manifest is optional; a nil CardManifest answers "no files" for every
// lookup, which the card selector reports as unavailable.

package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/samber/lo"
)

// CardType is the artwork category shown in card mode.
type CardType string

const (
	CardNormal  CardType = "normal"
	CardFullArt CardType = "full_art"
	CardShiny   CardType = "shiny"
	CardSpecial CardType = "special"
)

// CardTypes lists every card type in manifest scan order.
var CardTypes = []CardType{CardNormal, CardFullArt, CardShiny, CardSpecial}

// ParseCardType validates a card type key.
func ParseCardType(s string) (CardType, error) {
	ct := CardType(s)
	if !lo.Contains(CardTypes, ct) {
		return "", fmt.Errorf("unknown card type %q", s)
	}
	return ct, nil
}

// FullBleed reports whether the artwork covers the whole card face
// (full_art and special), which uses the heavier blur schedule.
func (c CardType) FullBleed() bool {
	return c == CardFullArt || c == CardSpecial
}

// CardManifest maps card type → id → filenames.
type CardManifest map[CardType]map[int][]string

// LoadManifest decodes `{cardType: {"<id>": [file, ...]}}`.
func LoadManifest(rd io.Reader) (CardManifest, error) {
	var raw map[string]map[string][]string
	if err := json.NewDecoder(rd).Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	m := make(CardManifest, len(raw))
	for typeKey, byID := range raw {
		ct, err := ParseCardType(typeKey)
		if err != nil {
			return nil, fmt.Errorf("manifest: %w", err)
		}
		inner := make(map[int][]string, len(byID))
		for idKey, files := range byID {
			id, err := strconv.Atoi(idKey)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("manifest: %s: invalid id %q", typeKey, idKey)
			}
			inner[id] = files
		}
		m[ct] = inner
	}
	return m, nil
}

// LoadManifestFile reads a manifest JSON file.
func LoadManifestFile(path string) (CardManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadManifest(f)
}

// Files returns the candidate filenames for id under ct.
func (m CardManifest) Files(ct CardType, id int) []string {
	return m[ct][id]
}

// Find scans card types in CardTypes order for id. When file is non-empty
// only a category listing that exact file matches; otherwise the first
// category with any file matches and its first file is returned.
func (m CardManifest) Find(id int, file string) (CardType, string, bool) {
	for _, ct := range CardTypes {
		files := m.Files(ct, id)
		if len(files) == 0 {
			continue
		}
		if file == "" {
			return ct, files[0], true
		}
		if lo.Contains(files, file) {
			return ct, file, true
		}
	}
	return "", "", false
}

// Count reports how many ids have at least one file under ct.
func (m CardManifest) Count(ct CardType) int {
	return len(lo.PickBy(m[ct], func(_ int, files []string) bool { return len(files) > 0 }))
}
