// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for game results.
type Store struct {
	db *sql.DB
}

// Winner values stored with each game.
const (
	WinnerHome = "home"
	WinnerAway = "away"
	WinnerTie  = "tie"
)

// GameRecord is one finished game.
type GameRecord struct {
	ID        string
	Seed      int64
	HomeCoach string
	AwayCoach string
	HomeScore int
	AwayScore int
	Winner    string
	Plays     int
	Overtime  bool
	CreatedAt time.Time
	Scoring   []ScoringPlay
}

// ScoringPlay is one change in the score.
type ScoringPlay struct {
	ID      int64
	GameID  string
	Quarter int
	Clock   int
	Side    string
	Kind    string
	Points  int
}

// CoachRecord aggregates a coach's results over every stored game.
type CoachRecord struct {
	Coach         string
	Games         int
	Wins          int
	Losses        int
	Ties          int
	PointsFor     int
	PointsAgainst int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Batch workers save concurrently; SQLite takes one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			home_coach TEXT NOT NULL,
			away_coach TEXT NOT NULL,
			home_score INTEGER NOT NULL DEFAULT 0,
			away_score INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL,
			plays INTEGER NOT NULL DEFAULT 0,
			overtime INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_games_home_coach ON games(home_coach);
		CREATE INDEX IF NOT EXISTS idx_games_away_coach ON games(away_coach);

		CREATE TABLE IF NOT EXISTS scoring_plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL REFERENCES games(id),
			quarter INTEGER NOT NULL,
			clock INTEGER NOT NULL,
			side TEXT NOT NULL,
			kind TEXT NOT NULL,
			points INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scoring_plays_game_id ON scoring_plays(game_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a finished game and its scoring plays in one transaction.
// An empty ID is replaced by a new UUID. Returns the game ID.
func (s *Store) SaveGame(ctx context.Context, g GameRecord) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games
		 (id, seed, home_coach, away_coach, home_score, away_score, winner, plays, overtime)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Seed, g.HomeCoach, g.AwayCoach, g.HomeScore, g.AwayScore, g.Winner, g.Plays, g.Overtime,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	for _, p := range g.Scoring {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scoring_plays (game_id, quarter, clock, side, kind, points)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, p.Quarter, p.Clock, p.Side, p.Kind, p.Points,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save scoring play: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return g.ID, nil
}

const gameColumns = `id, seed, home_coach, away_coach, home_score, away_score, winner, plays, overtime, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanGame(row scanner) (GameRecord, error) {
	var g GameRecord
	var createdAt any
	err := row.Scan(&g.ID, &g.Seed, &g.HomeCoach, &g.AwayCoach, &g.HomeScore, &g.AwayScore,
		&g.Winner, &g.Plays, &g.Overtime, &createdAt)
	g.CreatedAt = parseTime(createdAt)
	return g, err
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentGames retrieves the most recent games, newest first, without their
// scoring plays.
func (s *Store) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+gameColumns+`
		 FROM games
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}

// GameByID retrieves a game and its scoring plays. Returns nil if not found.
func (s *Store) GameByID(ctx context.Context, id string) (*GameRecord, error) {
	g, err := scanGame(s.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}

	g.Scoring, err = s.ScoringPlays(ctx, id)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ScoringPlays retrieves a game's scoring plays in the order they happened.
func (s *Store) ScoringPlays(ctx context.Context, gameID string) ([]ScoringPlay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, quarter, clock, side, kind, points
		 FROM scoring_plays
		 WHERE game_id = ?
		 ORDER BY id`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scoring plays: %w", err)
	}
	defer rows.Close()

	var plays []ScoringPlay
	for rows.Next() {
		var p ScoringPlay
		if err := rows.Scan(&p.ID, &p.GameID, &p.Quarter, &p.Clock, &p.Side, &p.Kind, &p.Points); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return plays, nil
}

// CoachRecord aggregates results for a coach across both sides of the ball.
func (s *Store) CoachRecord(ctx context.Context, coach string) (*CoachRecord, error) {
	rec := &CoachRecord{Coach: coach}

	err := s.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN (home_coach = ?1 AND winner = 'home') OR (away_coach = ?1 AND winner = 'away') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN (home_coach = ?1 AND winner = 'away') OR (away_coach = ?1 AND winner = 'home') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN winner = 'tie' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN home_coach = ?1 THEN home_score ELSE away_score END), 0),
			COALESCE(SUM(CASE WHEN home_coach = ?1 THEN away_score ELSE home_score END), 0)
		 FROM games
		 WHERE home_coach = ?1 OR away_coach = ?1`,
		coach,
	).Scan(&rec.Games, &rec.Wins, &rec.Losses, &rec.Ties, &rec.PointsFor, &rec.PointsAgainst)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get coach record: %w", err)
	}
	return rec, nil
}
