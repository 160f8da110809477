// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzles, one set per mode under /play/{mode}:
//   - POST /play/{mode}/new         → start today's session (creates or reuses)
//   - POST /play/{mode}/guess       → submit a guess for today's session
//   - GET  /play/{mode}/leaderboard → top 20 results for today (or ?day=YYYYMMDD)
//
// Each player can finish a mode once per day (enforced by DB + session index).
// Sessions are held in memory for active play and persisted to DB on win.
// The answer is only sent once the session is won.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/game"
	"github.com/robalobadob/pokedle/internal/hints"
	"github.com/robalobadob/pokedle/internal/roster"
)

const leaderboardSize = 20

// mountPlay registers all /play routes.
func (s *Server) mountPlay(r chi.Router) {
	r.Route("/play/{mode}", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/guess", s.handleGuess)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// modeParam parses the {mode} URL segment, answering 404 for unknown modes.
func modeParam(w http.ResponseWriter, r *http.Request) (daily.Mode, bool) {
	m, err := daily.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_mode")
		return "", false
	}
	return m, true
}

// CardImage points at the day's card art. Resized (the uncropped card) is
// only filled once the mode reveals it.
type CardImage struct {
	CardType string `json:"cardType"`
	Cropped  string `json:"cropped"`
	Resized  string `json:"resized,omitempty"`
}

// PlayState is the client's view of a session.
type PlayState struct {
	GameID     string          `json:"gameId,omitempty"`
	Mode       string          `json:"mode"`
	DayKey     string          `json:"dayKey"`
	Played     bool            `json:"played"`
	State      string          `json:"state"` // playing | won
	GuessCount int             `json:"guessCount"`
	Guesses    []game.Guess    `json:"guesses"` // most recent first
	Disclosure any             `json:"disclosure,omitempty"`
	Card       *CardImage      `json:"card,omitempty"`
	Answer     *roster.Pokemon `json:"answer,omitempty"`
}

// viewOf snapshots g. Callers hold guessMu once g is visible to other requests.
func (s *Server) viewOf(g *game.Game) PlayState {
	ps := PlayState{
		GameID:     g.ID,
		Mode:       string(g.Mode),
		DayKey:     g.Day.String(),
		State:      g.State(),
		GuessCount: g.GuessCount(),
		Guesses:    slices.Clone(g.Guesses),
	}
	var ct roster.CardType
	if g.Card != nil {
		ct = g.Card.CardType
		ps.Card = &CardImage{CardType: string(ct), Cropped: g.Card.Cropped}
		if g.Won || g.GuessCount() >= hints.CardFullImageAt {
			ps.Card.Resized = g.Card.Resized
		}
	}
	ps.Disclosure = hints.Disclose(g.Mode, s.sel.Roster, g.Answer, ct, g.Day, g.GuessCount())
	if g.Won {
		ps.Answer = g.Answer
	}
	return ps
}

// -----------------------------------------------------------------------------
// /play/{mode}/new

// handleNew creates or reuses today's session for the caller.
//   - If the player already has a DB result for today → Played=true with the answer.
//   - If a session is in memory → return it.
//   - Otherwise select the day's answer and start a new session.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	pid := s.playerID(w, r)
	day := s.today()
	ctx := r.Context()

	played, err := s.results.AlreadyPlayed(ctx, pid, mode, day.String())
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode)).Msg("already played lookup")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}

	if g, err := s.sessions.Active(ctx, pid, mode, day); err == nil {
		s.guessMu.Lock()
		ps := s.viewOf(g)
		s.guessMu.Unlock()
		ps.Played = played
		writeJSON(w, http.StatusOK, ps)
		return
	}

	answer := s.sel.Select(mode, day)
	if !answer.Ready() {
		code := "not_ready"
		if answer.Status == daily.StatusUnavailable {
			code = "no_card"
		}
		writeError(w, http.StatusServiceUnavailable, code)
		return
	}

	if played {
		// Finished earlier but the session is gone (restart); show the result.
		writeJSON(w, http.StatusOK, PlayState{
			Mode:    string(mode),
			DayKey:  day.String(),
			Played:  true,
			State:   "won",
			Guesses: []game.Guess{},
			Answer:  answer.Pokemon,
		})
		return
	}

	g := game.New(mode, day, answer.Pokemon, s.now())
	g.Card = answer.Card
	ps := s.viewOf(g)
	if err := s.sessions.Save(ctx, pid, g); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().
		Str("gameId", g.ID).
		Str("mode", string(mode)).
		Stringer("dayKey", day).
		Bool("overridden", answer.Overridden).
		Msg("session started")
	writeJSON(w, http.StatusOK, ps)
}

// -----------------------------------------------------------------------------
// /play/{mode}/guess

// GuessRequest is the request payload for /play/{mode}/guess.
type GuessRequest struct {
	GameID string `json:"gameId"`
	Name   string `json:"name"`
}

// GuessResponse is the response payload for /play/{mode}/guess.
type GuessResponse struct {
	Guess   game.Guess `json:"guess"`
	Correct bool       `json:"correct"`
	PlayState
}

// handleGuess validates and applies a guess to the caller's session.
//   - The game must be the caller's session for this mode and today.
//   - Unknown names answer 422 and leave the session unchanged.
//   - The winning guess persists the result.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	pid := s.playerID(w, r)
	ctx := r.Context()

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "bad_request")
		return
	}

	g, err := s.sessions.Get(ctx, req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	active, err := s.sessions.Active(ctx, pid, mode, s.today())
	if err != nil || active.ID != g.ID {
		writeError(w, http.StatusConflict, "no_session")
		return
	}

	s.guessMu.Lock()
	now := s.now()
	guess, err := g.ApplyGuess(s.sel.Roster, req.Name, now)
	view := s.viewOf(g)
	elapsed := g.Elapsed(now)
	s.guessMu.Unlock()

	switch {
	case errors.Is(err, game.ErrUnknownGuess):
		writeError(w, http.StatusUnprocessableEntity, "unknown_pokemon")
		return
	case errors.Is(err, game.ErrAlreadyGuessed):
		writeError(w, http.StatusConflict, "already_guessed")
		return
	case errors.Is(err, game.ErrFinished):
		writeError(w, http.StatusConflict, "finished")
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "invalid_guess")
		return
	}

	if guess.Correct {
		res := daily.Result{
			PlayerID:  pid,
			Mode:      mode,
			DayKey:    g.Day.String(),
			PokemonID: g.Answer.ID,
			Guesses:   view.GuessCount,
			ElapsedMs: int(elapsed.Milliseconds()),
		}
		if err := s.results.InsertResult(ctx, res); err != nil {
			log.Warn().Err(err).Str("gameId", g.ID).Msg("insert result")
		}
		view.Played = true
	}
	writeJSON(w, http.StatusOK, GuessResponse{Guess: guess, Correct: guess.Correct, PlayState: view})
}

// -----------------------------------------------------------------------------
// /play/{mode}/leaderboard

// LeaderboardResponse is returned by /play/{mode}/leaderboard.
type LeaderboardResponse struct {
	Mode   string        `json:"mode"`
	DayKey string        `json:"dayKey"`
	Top    []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given day (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, ok := modeParam(w, r)
	if !ok {
		return
	}
	day := s.today()
	if q := r.URL.Query().Get("day"); q != "" {
		d, err := daily.ParseDayKey(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_day")
			return
		}
		day = d
	}
	rows, err := s.results.Leaderboard(r.Context(), mode, day.String(), leaderboardSize)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, LeaderboardResponse{Mode: string(mode), DayKey: day.String(), Top: rows})
}
