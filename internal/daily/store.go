package daily

import (
	"context"
	"database/sql"
)

// Result is one completed daily puzzle.
type Result struct {
	PlayerID  string `json:"playerId"`
	Mode      Mode   `json:"mode"`
	DayKey    string `json:"dayKey"`
	PokemonID int    `json:"pokemonId"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Store persists completed results. Guesses themselves stay in memory.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether the player has a result for (mode, day).
func (s *Store) AlreadyPlayed(ctx context.Context, playerID string, mode Mode, day string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE player_id=? AND mode=? AND day_key=?`,
		playerID, string(mode), day,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a result; a second result for the same
// (player, mode, day) is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO daily_results (player_id, mode, day_key, pokemon_id, guesses, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.PlayerID, string(r.Mode), r.DayKey, r.PokemonID, r.Guesses, r.ElapsedMs,
	)
	return err
}

// ClaimResults moves a guest's results to an account after signup or login.
// Results the account already has for the same (mode, day) win; the guest's
// duplicates are dropped.
func (s *Store) ClaimResults(ctx context.Context, fromPlayer, toPlayer string) (int64, error) {
	if fromPlayer == "" || toPlayer == "" || fromPlayer == toPlayer {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE OR IGNORE daily_results SET player_id=? WHERE player_id=?`, toPlayer, fromPlayer)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_results WHERE player_id=?`, fromPlayer); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

// LBRow is one leaderboard line.
type LBRow struct {
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	Guesses   int    `json:"guesses"`
	ElapsedMs int    `json:"elapsedMs"`
}

// Leaderboard returns the best results for (mode, day): fewest guesses,
// then fastest, then earliest.
func (s *Store) Leaderboard(ctx context.Context, mode Mode, day string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.player_id, COALESCE(u.username, 'guest'), r.guesses, r.elapsed_ms
		FROM daily_results r
		LEFT JOIN users u ON u.id = r.player_id
		WHERE r.mode=? AND r.day_key=?
		ORDER BY r.guesses ASC, r.elapsed_ms ASC, r.created_at ASC
		LIMIT ?`, string(mode), day, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.PlayerID, &r.Username, &r.Guesses, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ModeStats aggregates one player's results for a mode.
type ModeStats struct {
	Mode        Mode    `json:"mode"`
	Wins        int     `json:"wins"`
	AvgGuesses  float64 `json:"avgGuesses"`
	BestGuesses int     `json:"bestGuesses"`
}

// PlayerStats returns per-mode aggregates for a player, ordered by mode key.
func (s *Store) PlayerStats(ctx context.Context, playerID string) ([]ModeStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mode, COUNT(1), AVG(guesses), MIN(guesses)
		FROM daily_results
		WHERE player_id=?
		GROUP BY mode
		ORDER BY mode`, playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ModeStats{}
	for rows.Next() {
		var m ModeStats
		var mode string
		if err := rows.Scan(&mode, &m.Wins, &m.AvgGuesses, &m.BestGuesses); err != nil {
			return nil, err
		}
		m.Mode = Mode(mode)
		out = append(out, m)
	}
	return out, rows.Err()
}
