package hints

import (
	"reflect"
	"testing"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/roster"
)

func bulbasaur() *roster.Pokemon {
	return &roster.Pokemon{
		ID:                1,
		Name:              "Bulbasaur",
		Types:             []string{"Grass", "Poison"},
		Generation:        1,
		EvolutionStage:    1,
		MainColour:        "green",
		SecondaryColours:  []string{"red"},
		Stats:             map[string]int{"hp": 45, "attack": 49, "speed": 45},
		Abilities:         []string{"overgrow", "chlorophyll"},
		Moves:             []string{"tackle", "growl", "vine-whip", "leech-seed", "razor-leaf"},
		Genus:             "Seed Pokémon",
		FlavorTextEntries: []string{"one", "two", "three", "four"},
		HeldItems:         []string{"miracle-seed"},
		Shape:             "quadruped",
		LocationAreaEncounters: []roster.Encounter{
			{LocationArea: "pallet-town", Games: []string{"red", "blue", "firered"}},
			{LocationArea: "cerulean-city", Games: []string{"yellow"}},
			{LocationArea: "route-2", Games: []string{"x", "y"}},
		},
	}
}

func TestNilAnswerDisclosesNothing(t *testing.T) {
	if d := Card(nil, roster.CardFullArt, 9); !reflect.DeepEqual(d, CardDisclosure{}) {
		t.Errorf("Card(nil) = %+v", d)
	}
	if d := Pokedex(nil, 20); d.Level != 0 || d.Entries != nil {
		t.Errorf("Pokedex(nil) = %+v", d)
	}
	if d := Zoom(nil, 20); d.ZoomFactor != 0 || d.Level != 0 {
		t.Errorf("Zoom(nil) = %+v", d)
	}
	if d := Locations(nil, nil, 20); d.Level != 0 || d.Own != nil {
		t.Errorf("Locations(nil) = %+v", d)
	}
	if d := GameInfo(nil, 20251225, 20); d.Level != 0 || d.Clues != nil {
		t.Errorf("GameInfo(nil) = %+v", d)
	}
}

func TestCardBlur(t *testing.T) {
	p := bulbasaur()
	tests := []struct {
		ct       roster.CardType
		guesses  int
		wantBlur int
	}{
		{roster.CardNormal, 0, 16},
		{roster.CardNormal, 3, 6},
		{roster.CardNormal, 6, 0},
		{roster.CardNormal, 30, 0},
		{roster.CardShiny, 1, 12},
		{roster.CardFullArt, 0, 24},
		{roster.CardFullArt, 6, 3},
		{roster.CardSpecial, 7, 0},
		{roster.CardSpecial, 50, 0},
	}
	for _, tt := range tests {
		if got := Card(p, tt.ct, tt.guesses).BlurPx; got != tt.wantBlur {
			t.Errorf("Card(%s, %d).BlurPx = %d, want %d", tt.ct, tt.guesses, got, tt.wantBlur)
		}
	}

	d := Card(p, roster.CardNormal, 2)
	if d.Types != nil || d.ShowFullCard {
		t.Fatalf("2 guesses revealed too much: %+v", d)
	}
	d = Card(p, roster.CardNormal, 3)
	if len(d.Types) != 2 || d.ShowFullCard || d.Level != 2 {
		t.Fatalf("3 guesses = %+v", d)
	}
	if d = Card(p, roster.CardNormal, 6); !d.ShowFullCard || d.Level != 3 {
		t.Fatalf("6 guesses = %+v", d)
	}
}

func TestPokedexEntries(t *testing.T) {
	p := bulbasaur()
	want := map[int]int{0: 1, 3: 1, 4: 2, 8: 3, 12: 3}
	for g, n := range want {
		if got := len(Pokedex(p, g).Entries); got != n {
			t.Errorf("Pokedex(%d) entries = %d, want %d", g, got, n)
		}
	}
	if Pokedex(p, 11).Types != nil || Pokedex(p, 12).Types == nil {
		t.Fatal("types should appear at level 4")
	}

	p.FlavorTextEntries = p.FlavorTextEntries[:1]
	if got := len(Pokedex(p, 12).Entries); got != 1 {
		t.Fatalf("short entry list gave %d entries", got)
	}
}

func TestZoomFactor(t *testing.T) {
	p := bulbasaur()
	want := map[int]float64{0: 4, 1: 3.5, 4: 2, 6: 1, 9: 1}
	for g, z := range want {
		if got := Zoom(p, g).ZoomFactor; got != z {
			t.Errorf("Zoom(%d) = %v, want %v", g, got, z)
		}
	}
	d := Zoom(p, 5)
	if d.Generation != 1 || d.Types != nil {
		t.Fatalf("Zoom(5) = %+v, want generation only", d)
	}
	if d := Silhouette(p, 10); d.Types == nil || d.Generation != 1 {
		t.Fatalf("Silhouette(10) = %+v", d)
	}
}

func TestColours(t *testing.T) {
	p := bulbasaur()
	d := Colours(p, 0)
	if !reflect.DeepEqual(d.Colours, []string{"green", "red"}) || d.ShowSwatch {
		t.Fatalf("Colours(0) = %+v", d)
	}
	if d = Colours(p, 6); !d.ShowSwatch || d.Types == nil || d.Generation != 0 {
		t.Fatalf("Colours(6) = %+v", d)
	}
	if d = Colours(p, 9); d.Generation != 1 {
		t.Fatalf("Colours(9) = %+v", d)
	}
}

func TestSplitEncounters(t *testing.T) {
	own, other := SplitEncounters(bulbasaur().LocationAreaEncounters, 1)
	if len(own) != 2 || !reflect.DeepEqual(own[0].Games, []string{"red", "blue"}) || own[1].LocationArea != "cerulean-city" {
		t.Fatalf("own = %+v", own)
	}
	if len(other) != 2 || !reflect.DeepEqual(other[0].Games, []string{"firered"}) || other[1].LocationArea != "route-2" {
		t.Fatalf("other = %+v", other)
	}

	// No fixed game set: everything counts as the debut generation's.
	own, other = SplitEncounters(bulbasaur().LocationAreaEncounters, 6)
	if len(own) != 3 || other != nil {
		t.Fatalf("gen 6 split = %v / %v", own, other)
	}
}

func TestLocationsLevels(t *testing.T) {
	p := bulbasaur()
	d := Locations(nil, p, 0)
	if d.Other != nil || d.OtherHidden != 2 || d.FromPreEvolution {
		t.Fatalf("Locations(0) = %+v", d)
	}
	d = Locations(nil, p, 4)
	if len(d.Other) != 2 || d.OtherHidden != 0 || d.Types != nil {
		t.Fatalf("Locations(4) = %+v", d)
	}
	if d = Locations(nil, p, 12); d.EvolutionStage != 1 || d.Types == nil {
		t.Fatalf("Locations(12) = %+v", d)
	}
}

func TestLocationsPreEvolutionFallback(t *testing.T) {
	base := *bulbasaur()
	ivy := roster.Pokemon{ID: 2, Name: "Ivysaur", Types: []string{"Grass", "Poison"}, Generation: 1, EvolutionStage: 2, EvolvesFrom: 1}
	venu := roster.Pokemon{ID: 3, Name: "Venusaur", Types: []string{"Grass", "Poison"}, Generation: 1, EvolutionStage: 3, EvolvesFrom: 2}
	r, err := roster.New([]roster.Pokemon{base, ivy, venu})
	if err != nil {
		t.Fatal(err)
	}
	answer, _ := r.ByID(3)
	d := Locations(r, answer, 0)
	if !d.FromPreEvolution || len(d.Own) != 2 || d.Own[0].LocationArea != "pallet-town" {
		t.Fatalf("Locations(venusaur) = %+v", d)
	}

	lonely := &roster.Pokemon{ID: 151, Name: "Mew", Types: []string{"Psychic"}, Generation: 1}
	if d := Locations(r, lonely, 0); d.FromPreEvolution || d.Own != nil {
		t.Fatalf("Locations(mew) = %+v", d)
	}
}

func TestClueOrderGolden(t *testing.T) {
	p := bulbasaur()
	// daily.Seed(20251225, gameinfo)
	got := ClueOrder(p, 20251225+7103)
	want := []string{ClueMoves, ClueShape, ClueStats, ClueLocations, ClueAbility, ClueHeldItems, ClueCategory}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ClueOrder = %v, want %v", got, want)
	}

	p.HeldItems = nil
	got = ClueOrder(p, 20251225+7103)
	want = []string{ClueStats, ClueShape, ClueCategory, ClueAbility, ClueLocations, ClueMoves}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ClueOrder without held items = %v, want %v", got, want)
	}
}

func TestClueOrderShapeNeverFirst(t *testing.T) {
	// Seed 4 shuffles shape into the first slot before the swap.
	got := ClueOrder(bulbasaur(), 4)
	if got[0] != ClueCategory || got[1] != ClueShape {
		t.Fatalf("ClueOrder(4) = %v", got)
	}
	for seed := uint32(0); seed < 500; seed++ {
		if o := ClueOrder(bulbasaur(), seed); o[0] == ClueShape || len(o) != len(clueCategories) {
			t.Fatalf("seed %d: %v", seed, o)
		}
	}
}

func TestGameInfoReveal(t *testing.T) {
	p := bulbasaur()
	d := GameInfo(p, 20251225, 0)
	if len(d.Clues) != 1 || d.Clues[0].Category != ClueMoves || d.Remaining != 6 {
		t.Fatalf("GameInfo(0) = %+v", d)
	}
	if !reflect.DeepEqual(d.Clues[0].Details, []string{"tackle", "growl", "vine-whip", "leech-seed"}) {
		t.Fatalf("moves clue = %v", d.Clues[0].Details)
	}
	d = GameInfo(p, 20251225, 2)
	if len(d.Clues) != 2 || d.Clues[1].Details[0] != "quadruped" {
		t.Fatalf("GameInfo(2) = %+v", d)
	}
	d = GameInfo(p, 20251225, 12)
	if len(d.Clues) != 7 || d.Remaining != 0 || d.GuessesUntilNext != 0 {
		t.Fatalf("GameInfo(12) = %+v", d)
	}
	stats := d.Clues[2]
	if stats.Category != ClueStats || !reflect.DeepEqual(stats.Details, []string{"hp 45", "attack 49", "speed 45"}) {
		t.Fatalf("stats clue = %+v", stats)
	}
}

func TestDisclose(t *testing.T) {
	p := bulbasaur()
	tests := []struct {
		mode daily.Mode
		want any
	}{
		{daily.ModeClassic, nil},
		{daily.ModeCard, Card(p, roster.CardShiny, 4)},
		{daily.ModePokedex, Pokedex(p, 4)},
		{daily.ModeSilhouette, Silhouette(p, 4)},
		{daily.ModeZoom, Zoom(p, 4)},
		{daily.ModeColours, Colours(p, 4)},
		{daily.ModeLocations, Locations(nil, p, 4)},
		{daily.ModeGameInfo, GameInfo(p, 20251225, 4)},
	}
	for _, tt := range tests {
		got := Disclose(tt.mode, nil, p, roster.CardShiny, 20251225, 4)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Disclose(%s) = %+v, want %+v", tt.mode, got, tt.want)
		}
	}
}
