// Package storage persists flappy high scores.
// The default backend is a local SQLite file (pure-Go modernc.org/sqlite);
// a postgres:// DSN selects a shared PostgreSQL database through pgx.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultPath is the SQLite database used when no DSN is configured.
const DefaultPath = "~/.arcade/flappy.db"

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string  // SSH user name or "local"
	Score     int
	Duration  float64 // Seconds the round lasted
	CreatedAt time.Time
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Scores is the score persistence used by every host.
type Scores interface {
	SaveScore(ctx context.Context, e ScoreEntry) (int64, error)
	TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error)
	HighScore(ctx context.Context, gameID string) (int, error)
	GameStats(ctx context.Context, gameID string) (*GameStats, error)
	ClearScores(ctx context.Context, gameID string) error
	Close() error
}

// Open selects a backend from the DSN: postgres:// and postgresql:// URLs use
// PostgreSQL, anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (Scores, error) {
	if dsn == "" {
		dsn = DefaultPath
	}
	if IsPostgres(dsn) {
		pg, err := OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	lite, err := OpenSQLite(dsn)
	if err != nil {
		return nil, err
	}
	return lite, nil
}

// IsPostgres reports whether the DSN names a PostgreSQL database.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// normalizeLimit applies the default page size.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	return limit
}

// parseTime handles drivers that return timestamps as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
