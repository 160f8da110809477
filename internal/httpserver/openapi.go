package httpserver

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	OK bool `json:"ok"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Pokedle API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Daily Pokémon guessing puzzles. Guests are tracked by cookie; accounts keep stats.")

	// GET /health
	getHealth, _ := r.NewOperationContext(http.MethodGet, "/health")
	getHealth.SetSummary("Health check")
	getHealth.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealth)

	// GET /daily
	getDaily, _ := r.NewOperationContext(http.MethodGet, "/daily")
	getDaily.SetSummary("Current day")
	getDaily.SetDescription("Returns the active day key, the next reset instant, the modes and today's card type.")
	getDaily.AddRespStructure(DailyResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getDaily)

	// GET /pokemon
	getPokemon, _ := r.NewOperationContext(http.MethodGet, "/pokemon")
	getPokemon.SetSummary("Guessable names")
	getPokemon.SetDescription("Returns every name accepted by the guess endpoints, for autocomplete.")
	getPokemon.AddRespStructure(PokemonListResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getPokemon)

	// POST /play/{mode}/new
	postNew, _ := r.NewOperationContext(http.MethodPost, "/play/{mode}/new")
	postNew.SetSummary("Start or resume")
	postNew.SetDescription("Starts today's session for the mode, or returns the caller's existing one. " +
		"Disclosure is a mode-specific hint object (card, pokedex, silhouette, zoom, colours, locations, gameinfo).")
	postNew.AddReqStructure(new(struct {
		Mode string `path:"mode" enum:"classic,card,pokedex,silhouette,zoom,colours,locations,gameinfo"`
	}))
	postNew.AddRespStructure(PlayState{}, openapi.WithHTTPStatus(http.StatusOK))
	postNew.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postNew.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postNew)

	// POST /play/{mode}/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/play/{mode}/guess")
	postGuess.SetSummary("Submit guess")
	postGuess.SetDescription("Applies a guess to the caller's session. The answer is included once the session is won.")
	postGuess.AddReqStructure(new(struct {
		Mode string `path:"mode"`
		GuessRequest
	}))
	postGuess.AddRespStructure(GuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(postGuess)

	// GET /play/{mode}/leaderboard
	getLeaderboard, _ := r.NewOperationContext(http.MethodGet, "/play/{mode}/leaderboard")
	getLeaderboard.SetSummary("Leaderboard")
	getLeaderboard.SetDescription("Top results for the day: fewest guesses, then fastest.")
	getLeaderboard.AddReqStructure(new(struct {
		Mode string `path:"mode"`
		Day  string `query:"day" pattern:"^[0-9]{8}$" description:"YYYYMMDD, defaults to today"`
	}))
	getLeaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getLeaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getLeaderboard)

	// POST /auth/signup
	postSignup, _ := r.NewOperationContext(http.MethodPost, "/auth/signup")
	postSignup.SetSummary("Sign up")
	postSignup.SetDescription("Creates an account, sets the auth cookie and claims the guest's results.")
	postSignup.AddReqStructure(Credentials{})
	postSignup.AddRespStructure(authUser{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSignup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postSignup.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postSignup)

	// POST /auth/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/auth/login")
	postLogin.SetSummary("Log in")
	postLogin.AddReqStructure(Credentials{})
	postLogin.AddRespStructure(authUser{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /auth/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/auth/logout")
	postLogout.SetSummary("Log out")
	postLogout.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /auth/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/auth/me")
	getMe.SetSummary("Current user")
	getMe.AddRespStructure(authUser{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /stats/me
	getStats, _ := r.NewOperationContext(http.MethodGet, "/stats/me")
	getStats.SetSummary("Player stats")
	getStats.SetDescription("Per-mode wins and guess averages for the logged-in player.")
	getStats.AddRespStructure(StatsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getStats.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getStats)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
