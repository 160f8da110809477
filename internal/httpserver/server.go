// internal/httpserver/server.go
//
// HTTP server wiring for the Pokedle backend.
// Responsibilities:
//   - Router + middleware (request IDs, request log, panic recovery, timeouts, CORS).
//   - Public endpoints: "/", "/health", "/openapi.json", "/docs".
//   - Daily metadata: GET /daily, GET /pokemon.
//   - Play endpoints (optional auth): mounted under /play/{mode}.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid token is present;
//     guests are identified by an anonymous cookie instead.
//   - The clock is injectable so day rollover can be exercised in tests.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/swaggest/swgui/v5emb"

	"github.com/robalobadob/pokedle/internal/config"
	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/store"
)

// Options carries the server's dependencies.
type Options struct {
	Config   *config.Config
	Selector *daily.Selector
	Sessions store.Store
	DB       *sql.DB
	Now      func() time.Time // defaults to time.Now
}

// Server bundles router, session store, result store and DB handle.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	sel      *daily.Selector
	sessions store.Store
	results  *daily.Store
	db       *sql.DB
	now      func() time.Time
	guessMu  sync.Mutex // guards every read and write of shared *game.Game sessions
}

// New constructs a Server, installs middleware, and registers routes.
func New(o Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      o.Config,
		sel:      o.Selector,
		sessions: o.Sessions,
		results:  daily.NewStore(o.DB),
		db:       o.DB,
		now:      o.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(cors(s.cfg.ClientOrigin))        // credentials-friendly CORS

	// --- docs (HTML, outside the JSON group) ---
	s.r.Get("/openapi.json", handleOpenAPI())
	s.r.Mount("/docs", v5emb.New("Pokedle API", "/openapi.json", "/docs"))

	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"service":   "pokedle-go",
				"modes":     daily.ModeKeys(),
				"endpoints": []string{"/health", "/daily", "/pokemon", "POST /play/{mode}/new", "POST /play/{mode}/guess", "/auth/*", "/docs"},
			})
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, HealthResponse{OK: true})
		})

		r.Get("/daily", s.handleDaily)
		r.Get("/pokemon", s.handlePokemon)

		// Play endpoints: OPTIONAL AUTH (guests can play; results persisted on win)
		s.mountPlay(r.With(s.withOptionalAuth()))

		// Auth + profile/stats
		s.mountAuthRoutes(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler { return s.r }

// today resolves the current day key with the configured reset hour.
func (s *Server) today() daily.DayKey {
	return daily.MustResolve(s.now(), s.cfg.ResetHourUTC)
}

// nextReset returns the next instant at which the day key rolls over.
func (s *Server) nextReset() time.Time {
	now := s.now().UTC()
	reset := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.ResetHourUTC, 0, 0, 0, time.UTC)
	if !now.Before(reset) {
		reset = reset.Add(24 * time.Hour)
	}
	return reset
}

// ------------------------------- metadata ----------------------------------

// DailyResponse is returned by GET /daily.
type DailyResponse struct {
	DayKey       string    `json:"dayKey"`
	ResetHourUTC int       `json:"resetHourUtc"`
	NextReset    time.Time `json:"nextReset"`
	Modes        []string  `json:"modes"`
	CardType     string    `json:"cardType"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	day := s.today()
	writeJSON(w, http.StatusOK, DailyResponse{
		DayKey:       day.String(),
		ResetHourUTC: s.cfg.ResetHourUTC,
		NextReset:    s.nextReset(),
		Modes:        daily.ModeKeys(),
		CardType:     string(s.sel.CardType(day)),
	})
}

// PokemonListResponse is returned by GET /pokemon.
type PokemonListResponse struct {
	Names []string `json:"names"`
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	names := s.sel.Roster.Names()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, PokemonListResponse{Names: names})
}

// ------------------------------- helpers -----------------------------------

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, ErrorResponse{Error: code})
}
