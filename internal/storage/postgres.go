package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps scores in a shared PostgreSQL database,
// so several SSH servers can publish one leaderboard.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ Scores = (*PostgresStore)(nil)

// OpenPostgres connects to the database and runs migrations.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to connect to db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot reach db: %w", err)
	}

	store := &PostgresStore{db: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			score INTEGER NOT NULL,
			duration DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`)
	return err
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

// SaveScore records a finished round.
func (s *PostgresStore) SaveScore(ctx context.Context, e ScoreEntry) (int64, error) {
	if e.Player == "" {
		e.Player = "local"
	}
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO scores (game_id, player, score, duration) VALUES ($1, $2, $3, $4) RETURNING id`,
		e.GameID, e.Player, e.Score, e.Duration,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
func (s *PostgresStore) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, game_id, player, score, duration, created_at
		 FROM scores
		 WHERE game_id = $1
		 ORDER BY score DESC, id ASC
		 LIMIT $2`,
		gameID, normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Duration, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest score for the given game, or 0 if none exist.
func (s *PostgresStore) HighScore(ctx context.Context, gameID string) (int, error) {
	var score int
	err := s.db.QueryRow(ctx,
		"SELECT COALESCE(MAX(score), 0) FROM scores WHERE game_id = $1", gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// GameStats retrieves aggregated statistics for a specific game.
func (s *PostgresStore) GameStats(ctx context.Context, gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)::float8, COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = $1`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT created_at FROM scores WHERE game_id = $1 ORDER BY id DESC LIMIT 1`, gameID,
	).Scan(&stats.LastPlayed)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	return stats, nil
}

// ClearScores deletes all scores for the given game.
func (s *PostgresStore) ClearScores(ctx context.Context, gameID string) error {
	if _, err := s.db.Exec(ctx, "DELETE FROM scores WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}
