package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/robalobadob/pokedle/assets"
	"github.com/robalobadob/pokedle/internal/config"
	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/database"
	"github.com/robalobadob/pokedle/internal/hints"
	"github.com/robalobadob/pokedle/internal/store"
)

// christmasNoon resolves to day 20251225, where classic is pinned to Pineco.
var christmasNoon = time.Date(2025, 12, 25, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		ResetHourUTC:         23,
		SaturdayFullArtRatio: 0.5,
		AssetBaseURL:         "/assets",
		JWTSecret:            "test-secret",
		JWTExpiresDays:       14,
		CookieName:           "pokedle_token",
		ClientOrigin:         "http://localhost:5173",
	}
}

func newTestServer(t *testing.T, now *time.Time) *Server {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.MemoryDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	r, err := assets.Roster("")
	if err != nil {
		t.Fatal(err)
	}
	m, err := assets.Manifest("")
	if err != nil {
		t.Fatal(err)
	}
	ov, err := assets.Overrides("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	return New(Options{
		Config: cfg,
		Selector: &daily.Selector{
			Roster:               r,
			Overrides:            ov,
			Manifest:             m,
			SaturdayFullArtRatio: cfg.SaturdayFullArtRatio,
			AssetBaseURL:         cfg.AssetBaseURL,
		},
		Sessions: store.NewMemoryStore(),
		DB:       db,
		Now:      func() time.Time { return *now },
	})
}

// client replays cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, s *Server) *client {
	return &client{t: t, h: s.Handler(), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v (body %q)", v, err, w.Body.String())
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}

func TestHealthAndDaily(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))

	w := c.do(http.MethodGet, "/health", nil)
	expectStatus(t, w, http.StatusOK)
	if !decode[HealthResponse](t, w).OK {
		t.Fatal("health not ok")
	}

	w = c.do(http.MethodGet, "/daily", nil)
	expectStatus(t, w, http.StatusOK)
	d := decode[DailyResponse](t, w)
	if d.DayKey != "20251225" || d.ResetHourUTC != 23 || len(d.Modes) != 8 {
		t.Fatalf("daily = %+v", d)
	}
	if want := time.Date(2025, 12, 25, 23, 0, 0, 0, time.UTC); !d.NextReset.Equal(want) {
		t.Fatalf("nextReset = %v, want %v", d.NextReset, want)
	}
	if d.CardType != "normal" { // Thursday
		t.Fatalf("cardType = %q", d.CardType)
	}

	// Past the reset hour the next day is live.
	now = time.Date(2025, 12, 25, 23, 30, 0, 0, time.UTC)
	w = c.do(http.MethodGet, "/daily", nil)
	if d := decode[DailyResponse](t, w); d.DayKey != "20251226" {
		t.Fatalf("after reset dayKey = %q", d.DayKey)
	}
}

func TestPokemonList(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))
	w := c.do(http.MethodGet, "/pokemon", nil)
	expectStatus(t, w, http.StatusOK)
	names := decode[PokemonListResponse](t, w).Names
	if len(names) != 24 {
		t.Fatalf("got %d names", len(names))
	}
}

func TestUnknownModeAndRoute(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))

	w := c.do(http.MethodPost, "/play/hangman/new", nil)
	expectStatus(t, w, http.StatusNotFound)
	if e := decode[ErrorResponse](t, w); e.Error != "unknown_mode" {
		t.Fatalf("error = %q", e.Error)
	}

	w = c.do(http.MethodGet, "/nope", nil)
	expectStatus(t, w, http.StatusNotFound)
}

func TestClassicPlayFlow(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))

	w := c.do(http.MethodPost, "/play/classic/new", nil)
	expectStatus(t, w, http.StatusOK)
	st := decode[PlayState](t, w)
	if st.GameID == "" || st.State != "playing" || st.Played || st.Answer != nil || st.DayKey != "20251225" {
		t.Fatalf("new = %+v", st)
	}
	if c.cookies[anonCookieName] == nil {
		t.Fatal("guest cookie not set")
	}

	// Same player, same day: the session is reused.
	w = c.do(http.MethodPost, "/play/classic/new", nil)
	if again := decode[PlayState](t, w); again.GameID != st.GameID {
		t.Fatalf("session not reused: %s vs %s", again.GameID, st.GameID)
	}

	w = c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Mewtwo"})
	expectStatus(t, w, http.StatusUnprocessableEntity)

	w = c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "bulbasaur"})
	expectStatus(t, w, http.StatusOK)
	g := decode[GuessResponse](t, w)
	if g.Correct || g.GuessCount != 1 || g.Answer != nil || g.Guess.Pokemon.Name != "Bulbasaur" {
		t.Fatalf("guess 1 = %+v", g)
	}
	if g.Guess.Feedback == nil || g.Guesses[0].Feedback == nil {
		t.Fatal("classic guess carries no feedback")
	}

	w = c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Bulbasaur"})
	expectStatus(t, w, http.StatusConflict)

	now = now.Add(90 * time.Second)
	w = c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Pineco"})
	expectStatus(t, w, http.StatusOK)
	g = decode[GuessResponse](t, w)
	if !g.Correct || g.State != "won" || !g.Played || g.Answer == nil || g.Answer.Name != "Pineco" {
		t.Fatalf("winning guess = %+v", g)
	}
	if len(g.Guesses) != 2 || g.Guesses[0].Pokemon.Name != "Pineco" {
		t.Fatalf("guesses not most-recent-first: %+v", g.Guesses)
	}

	w = c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Ralts"})
	expectStatus(t, w, http.StatusConflict)

	w = c.do(http.MethodPost, "/play/classic/new", nil)
	if st := decode[PlayState](t, w); !st.Played || st.State != "won" {
		t.Fatalf("new after win = %+v", st)
	}

	w = c.do(http.MethodGet, "/play/classic/leaderboard", nil)
	expectStatus(t, w, http.StatusOK)
	lb := decode[LeaderboardResponse](t, w)
	if len(lb.Top) != 1 || lb.Top[0].Guesses != 2 || lb.Top[0].ElapsedMs != 90000 || lb.Top[0].Username != "guest" {
		t.Fatalf("leaderboard = %+v", lb)
	}

	w = c.do(http.MethodGet, "/play/classic/leaderboard?day=20251224", nil)
	if lb := decode[LeaderboardResponse](t, w); len(lb.Top) != 0 || lb.DayKey != "20251224" {
		t.Fatalf("other day leaderboard = %+v", lb)
	}
	w = c.do(http.MethodGet, "/play/classic/leaderboard?day=yesterday", nil)
	expectStatus(t, w, http.StatusBadRequest)
}

func TestGuessRequiresOwnSession(t *testing.T) {
	now := christmasNoon
	s := newTestServer(t, &now)
	alice, bob := newClient(t, s), newClient(t, s)

	st := decode[PlayState](t, alice.do(http.MethodPost, "/play/classic/new", nil))

	w := bob.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Pineco"})
	expectStatus(t, w, http.StatusConflict)

	w = alice.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: "missing", Name: "Pineco"})
	expectStatus(t, w, http.StatusNotFound)

	w = alice.do(http.MethodPost, "/play/classic/guess", nil)
	expectStatus(t, w, http.StatusBadRequest)

	// Yesterday's session cannot be finished after the reset.
	now = time.Date(2025, 12, 25, 23, 5, 0, 0, time.UTC)
	w = alice.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Pineco"})
	expectStatus(t, w, http.StatusConflict)
}

func TestCardModeRevealsArtworkProgressively(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))

	st := decode[PlayState](t, c.do(http.MethodPost, "/play/card/new", nil))
	if st.Card == nil || st.Card.CardType != "special" || !strings.HasSuffix(st.Card.Cropped, "/cards/special/cropped/025-xmas.png") {
		t.Fatalf("card = %+v", st.Card)
	}
	if st.Card.Resized != "" {
		t.Fatal("full card revealed before any guess")
	}

	wrong := []string{"Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Charmeleon", "Charizard"}
	var g GuessResponse
	for _, name := range wrong {
		w := c.do(http.MethodPost, "/play/card/guess", GuessRequest{GameID: st.GameID, Name: name})
		expectStatus(t, w, http.StatusOK)
		g = decode[GuessResponse](t, w)
	}
	if g.Card.Resized == "" || g.Answer != nil {
		t.Fatalf("after 6 guesses card = %+v answer = %v", g.Card, g.Answer)
	}
	var disc struct {
		BlurPx       int      `json:"blurPx"`
		ShowFullCard bool     `json:"showFullCard"`
		Types        []string `json:"types"`
	}
	raw, _ := json.Marshal(g.Disclosure)
	if err := json.Unmarshal(raw, &disc); err != nil {
		t.Fatal(err)
	}
	if disc.BlurPx != 3 || !disc.ShowFullCard || len(disc.Types) == 0 {
		t.Fatalf("disclosure = %s", raw)
	}
}

func TestSignupClaimsGuestResults(t *testing.T) {
	now := christmasNoon
	c := newClient(t, newTestServer(t, &now))

	st := decode[PlayState](t, c.do(http.MethodPost, "/play/classic/new", nil))
	w := c.do(http.MethodPost, "/play/classic/guess", GuessRequest{GameID: st.GameID, Name: "Pineco"})
	expectStatus(t, w, http.StatusOK)

	w = c.do(http.MethodGet, "/stats/me", nil)
	expectStatus(t, w, http.StatusUnauthorized)

	w = c.do(http.MethodPost, "/auth/signup", Credentials{Username: "as", Password: "pikachu123"})
	expectStatus(t, w, http.StatusBadRequest) // too short

	w = c.do(http.MethodPost, "/auth/signup", Credentials{Username: "ash_k", Password: "pikachu123"})
	expectStatus(t, w, http.StatusCreated)
	if c.cookies["pokedle_token"] == nil {
		t.Fatal("auth cookie not set")
	}

	w = c.do(http.MethodGet, "/stats/me", nil)
	expectStatus(t, w, http.StatusOK)
	stats := decode[StatsResponse](t, w)
	if stats.Username != "ash_k" || len(stats.Modes) != 1 || stats.Modes[0].Mode != daily.ModeClassic || stats.Modes[0].Wins != 1 {
		t.Fatalf("stats = %+v", stats)
	}

	w = c.do(http.MethodGet, "/play/classic/leaderboard", nil)
	if lb := decode[LeaderboardResponse](t, w); len(lb.Top) != 1 || lb.Top[0].Username != "ash_k" {
		t.Fatalf("leaderboard = %+v", lb)
	}

	w = c.do(http.MethodPost, "/auth/signup", Credentials{Username: "ASH_K", Password: "pikachu123"})
	expectStatus(t, w, http.StatusConflict)

	c.do(http.MethodPost, "/auth/logout", nil)
	w = c.do(http.MethodGet, "/auth/me", nil)
	expectStatus(t, w, http.StatusUnauthorized)

	w = c.do(http.MethodPost, "/auth/login", Credentials{Username: "ash_k", Password: "wrong-password"})
	expectStatus(t, w, http.StatusUnauthorized)
	w = c.do(http.MethodPost, "/auth/login", Credentials{Username: "ash_k", Password: "pikachu123"})
	expectStatus(t, w, http.StatusOK)
	w = c.do(http.MethodGet, "/auth/me", nil)
	expectStatus(t, w, http.StatusOK)
}

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	for _, path := range []string{`"/play/{mode}/guess"`, `"/daily"`, `"/stats/me"`} {
		if !strings.Contains(body, path) {
			t.Fatalf("body missing %s", path)
		}
	}
}

// wrongNames returns up to n roster names other than the day's answer for mode.
func wrongNames(t *testing.T, s *Server, mode daily.Mode, n int) []string {
	t.Helper()
	answer := s.sel.Select(mode, s.today())
	if !answer.Ready() {
		t.Fatalf("%s: no answer for %s", mode, s.today())
	}
	var out []string
	for _, p := range s.sel.Roster.All() {
		if p.ID != answer.Pokemon.ID && len(out) < n {
			out = append(out, p.Name)
		}
	}
	if len(out) < n {
		t.Fatalf("%s: only %d wrong names", mode, len(out))
	}
	return out
}

// revealed reports whether key is present and not false, empty or zero.
func revealed(disc map[string]any, key string) bool {
	switch v := disc[key].(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

func TestDisclosureGatesPerMode(t *testing.T) {
	type gate struct {
		key string
		at  int
	}
	tests := []struct {
		mode  daily.Mode
		gates []gate
	}{
		{daily.ModeCard, []gate{{"types", hints.CardTypesAt}, {"showFullCard", hints.CardFullImageAt}}},
		{daily.ModePokedex, []gate{{"types", 12}}},
		{daily.ModeSilhouette, []gate{{"generation", 5}, {"types", 10}}},
		{daily.ModeZoom, []gate{{"generation", 5}, {"types", 10}}},
		{daily.ModeColours, []gate{{"showSwatch", 3}, {"types", 6}, {"generation", 9}}},
		{daily.ModeLocations, []gate{{"types", 8}, {"evolutionStage", 12}}},
		{daily.ModeGameInfo, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			now := christmasNoon
			s := newTestServer(t, &now)
			c := newClient(t, s)
			base := "/play/" + string(tt.mode)

			w := c.do(http.MethodPost, base+"/new", nil)
			expectStatus(t, w, http.StatusOK)
			st := decode[map[string]any](t, w)
			gameID, _ := st["gameId"].(string)
			discs := []map[string]any{st["disclosure"].(map[string]any)}

			for i, name := range wrongNames(t, s, tt.mode, 12) {
				w := c.do(http.MethodPost, base+"/guess", GuessRequest{GameID: gameID, Name: name})
				expectStatus(t, w, http.StatusOK)
				resp := decode[map[string]any](t, w)

				if _, ok := resp["guess"].(map[string]any)["feedback"]; ok {
					t.Fatalf("guess %d: feedback sent outside classic: %v", i+1, resp["guess"])
				}
				for _, g := range resp["guesses"].([]any) {
					if _, ok := g.(map[string]any)["feedback"]; ok {
						t.Fatalf("guess %d: history carries feedback: %v", i+1, g)
					}
				}
				if _, ok := resp["answer"]; ok {
					t.Fatalf("guess %d: answer sent before the win", i+1)
				}
				discs = append(discs, resp["disclosure"].(map[string]any))
			}

			for _, g := range tt.gates {
				if revealed(discs[g.at-1], g.key) {
					t.Errorf("%s revealed after %d guesses: %v", g.key, g.at-1, discs[g.at-1])
				}
				if !revealed(discs[g.at], g.key) {
					t.Errorf("%s hidden after %d guesses: %v", g.key, g.at, discs[g.at])
				}
			}

			if tt.mode == daily.ModeGameInfo {
				for n, d := range discs {
					level := int(d["level"].(float64))
					if clues := d["clues"].([]any); len(clues) != level {
						t.Errorf("after %d guesses: %d clues at level %d", n, len(clues), level)
					}
				}
			}
		})
	}
}

func TestConcurrentNewAndGuess(t *testing.T) {
	now := christmasNoon
	s := newTestServer(t, &now)
	c := newClient(t, s)

	st := decode[PlayState](t, c.do(http.MethodPost, "/play/pokedex/new", nil))
	names := wrongNames(t, s, daily.ModePokedex, 10)
	cookies := make([]*http.Cookie, 0, len(c.cookies))
	for _, ck := range c.cookies {
		cookies = append(cookies, ck)
	}
	h := s.Handler()
	send := func(path string, body any) int {
		b, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for _, name := range names {
		name := name
		wg.Add(2)
		go func() {
			defer wg.Done()
			if code := send("/play/pokedex/guess", GuessRequest{GameID: st.GameID, Name: name}); code == http.StatusOK {
				mu.Lock()
				accepted++
				mu.Unlock()
			} else {
				t.Errorf("guess %s: status %d", name, code)
			}
		}()
		go func() {
			defer wg.Done()
			if code := send("/play/pokedex/new", nil); code != http.StatusOK {
				t.Errorf("new: status %d", code)
			}
		}()
	}
	wg.Wait()

	final := decode[PlayState](t, c.do(http.MethodPost, "/play/pokedex/new", nil))
	if final.GameID != st.GameID || final.GuessCount != accepted || accepted != len(names) {
		t.Fatalf("final = %d guesses on %s, accepted %d of %d", final.GuessCount, final.GameID, accepted, len(names))
	}
}
