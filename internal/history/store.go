// internal/history/store.go
//
// Durable record of players and games.
//
// Live games stay in memory (internal/store); this package only keeps what
// outlives a process: who played, how long a word length took, and who
// needed the fewest wrong guesses. Games have no "lost" status: a game is
// either still active or won.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a player or game row does not exist.
	ErrNotFound = errors.New("history: not found")
	// ErrUsernameTaken is returned by CreatePlayer for a duplicate name.
	ErrUsernameTaken = errors.New("history: username taken")
)

const (
	StatusActive = "active"
	StatusWon    = "won"
)

// Store wraps the history database.
type Store struct{ db *sql.DB }

// Open opens the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

/* ------------------------------- players -------------------------------- */

// Player matches the players table.
type Player struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	GamesPlayed   int       `json:"gamesPlayed"`
	GamesWon      int       `json:"gamesWon"`
	TotalAttempts int       `json:"totalAttempts"`
	FewestWrong   *int      `json:"fewestWrong,omitempty"`
}

// CreatePlayer inserts a new player. Usernames are unique ignoring case.
func (s *Store) CreatePlayer(ctx context.Context, id, username, passwordHash string) (*Player, error) {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		id, username, passwordHash, now.Format(time.RFC3339))
	if err != nil {
		var se sqlite3.Error
		if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert player: %w", err)
	}
	return &Player{ID: id, Username: username, PasswordHash: passwordHash, CreatedAt: now}, nil
}

// PlayerByID loads a player by ID.
func (s *Store) PlayerByID(ctx context.Context, id string) (*Player, error) {
	return scanPlayer(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, games_played, games_won, total_attempts, fewest_wrong
		FROM players WHERE id=?`, id))
}

// PlayerByUsername loads a player by name, ignoring case.
func (s *Store) PlayerByUsername(ctx context.Context, username string) (*Player, error) {
	return scanPlayer(s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at, games_played, games_won, total_attempts, fewest_wrong
		FROM players WHERE username=?`, username))
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var (
		p       Player
		created string
		fewest  sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &created,
		&p.GamesPlayed, &p.GamesWon, &p.TotalAttempts, &fewest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = mustParse(created)
	if fewest.Valid {
		n := int(fewest.Int64)
		p.FewestWrong = &n
	}
	return &p, nil
}

/* -------------------------------- games --------------------------------- */

// GameRecord describes a newly started game. Exactly one of PlayerID and
// AnonymousID is normally set.
type GameRecord struct {
	ID          string
	PlayerID    string
	AnonymousID string
	Length      int
	StartedAt   time.Time
}

// StartGame inserts the owner row for a game and counts it for the player.
func (s *Store) StartGame(ctx context.Context, rec GameRecord) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO games (id, player_id, anonymous_id, length, status, started_at)
		VALUES (?,?,?,?,?,?)`,
		rec.ID, nullable(rec.PlayerID), nullable(rec.AnonymousID), rec.Length, StatusActive,
		rec.StartedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	if rec.PlayerID != "" {
		if _, err := tx.ExecContext(ctx,
			`UPDATE players SET games_played = games_played + 1 WHERE id=?`, rec.PlayerID); err != nil {
			return fmt.Errorf("bump games_played: %w", err)
		}
	}
	return tx.Commit()
}

// RecordGuess stores the current attempt count of an active game.
func (s *Store) RecordGuess(ctx context.Context, gameID string, attempts int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET attempts=? WHERE id=? AND status=?`, attempts, gameID, StatusActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Result is the outcome of a won game.
type Result struct {
	GameID       string
	Word         string
	Attempts     int
	WrongGuesses []string
	FinishedAt   time.Time
}

// FinishGame marks a game won and updates its player's stats in the same
// transaction. Finishing an already finished game is a no-op.
func (s *Store) FinishGame(ctx context.Context, r Result) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	wrong := ""
	for _, l := range r.WrongGuesses {
		wrong += l
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		status   string
		playerID sql.NullString
	)
	err = tx.QueryRowContext(ctx, `SELECT status, player_id FROM games WHERE id=?`, r.GameID).
		Scan(&status, &playerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if status == StatusWon {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE games SET status=?, word=?, attempts=?, wrong_guesses=?, wrong_count=?, finished_at=?
		WHERE id=?`,
		StatusWon, r.Word, r.Attempts, wrong, len(r.WrongGuesses),
		r.FinishedAt.UTC().Format(time.RFC3339), r.GameID); err != nil {
		return fmt.Errorf("finish game: %w", err)
	}
	if playerID.Valid {
		if err := bumpStats(ctx, tx, playerID.String, r.Attempts, len(r.WrongGuesses)); err != nil {
			return fmt.Errorf("bump stats: %w", err)
		}
	}
	return tx.Commit()
}

// bumpStats records one more win for a player (within tx).
func bumpStats(ctx context.Context, tx *sql.Tx, playerID string, attempts, wrong int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE players SET
			games_won = games_won + 1,
			total_attempts = total_attempts + ?,
			fewest_wrong = CASE WHEN fewest_wrong IS NULL OR ? < fewest_wrong THEN ? ELSE fewest_wrong END
		WHERE id=?`, attempts, wrong, wrong, playerID)
	return err
}

// ClaimAnonymous moves a guest's games to a player account and counts them
// in the player's stats: every claimed game as played, and won ones as
// wins with their attempts and wrong guesses.
func (s *Store) ClaimAnonymous(ctx context.Context, anonID, playerID string) error {
	if anonID == "" || playerID == "" {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var (
		played, won, attempts int
		fewest                sql.NullInt64
	)
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(1),
		       COALESCE(SUM(CASE WHEN status=? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status=? THEN attempts ELSE 0 END), 0),
		       MIN(CASE WHEN status=? THEN wrong_count END)
		FROM games WHERE anonymous_id=?`, StatusWon, StatusWon, StatusWon, anonID).
		Scan(&played, &won, &attempts, &fewest)
	if err != nil {
		return fmt.Errorf("count anonymous games: %w", err)
	}
	if played == 0 {
		return nil
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE players SET
			games_played = games_played + ?,
			games_won = games_won + ?,
			total_attempts = total_attempts + ?,
			fewest_wrong = CASE
				WHEN ? IS NULL THEN fewest_wrong
				WHEN fewest_wrong IS NULL OR ? < fewest_wrong THEN ?
				ELSE fewest_wrong END
		WHERE id=?`, played, won, attempts, fewest, fewest, fewest, playerID)
	if err != nil {
		return fmt.Errorf("bump claimed stats: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET player_id=?, anonymous_id=NULL WHERE anonymous_id=?`, playerID, anonID); err != nil {
		return fmt.Errorf("claim games: %w", err)
	}
	return tx.Commit()
}

// GameRow is one entry of a player's game list.
type GameRow struct {
	ID           string `json:"id"`
	Length       int    `json:"length"`
	Status       string `json:"status"`
	Attempts     int    `json:"attempts"`
	WrongGuesses string `json:"wrongGuesses"`
	Word         string `json:"word,omitempty"`
	StartedAt    string `json:"startedAt"`
	FinishedAt   string `json:"finishedAt,omitempty"`
}

// RecentGames lists a player's games, newest first. Default limit is 50.
func (s *Store) RecentGames(ctx context.Context, playerID string, limit int) ([]GameRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, length, status, attempts, wrong_guesses, COALESCE(word,''), started_at, COALESCE(finished_at,'')
		FROM games WHERE player_id=?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRow{}
	for rows.Next() {
		var g GameRow
		if err := rows.Scan(&g.ID, &g.Length, &g.Status, &g.Attempts, &g.WrongGuesses,
			&g.Word, &g.StartedAt, &g.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// LeaderRow is one leaderboard entry.
type LeaderRow struct {
	Player     string `json:"player"`
	Word       string `json:"word"`
	Attempts   int    `json:"attempts"`
	Wrong      int    `json:"wrong"`
	FinishedAt string `json:"finishedAt"`
}

// Leaderboard returns the best won games for a word length: fewest wrong
// guesses, then fewest attempts, then earliest finish. Default limit is 20.
func (s *Store) Leaderboard(ctx context.Context, length, limit int) ([]LeaderRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(p.username, 'guest'), g.word, g.attempts, g.wrong_count, g.finished_at
		FROM games g LEFT JOIN players p ON p.id = g.player_id
		WHERE g.length=? AND g.status=?
		ORDER BY g.wrong_count ASC, g.attempts ASC, g.finished_at ASC
		LIMIT ?`, length, StatusWon, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LeaderRow, 0, limit)
	for rows.Next() {
		var r LeaderRow
		if err := rows.Scan(&r.Player, &r.Word, &r.Attempts, &r.Wrong, &r.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// nullable maps "" to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// mustParse parses RFC3339 timestamps; on error returns zero time.
func mustParse(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
