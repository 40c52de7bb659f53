package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/aaronzipp/werewolf/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS games (
	game_id        TEXT PRIMARY KEY,
	board          TEXT NOT NULL,
	winner         TEXT NOT NULL,
	total_rounds   INTEGER NOT NULL,
	total_players  INTEGER NOT NULL,
	alive_players  INTEGER NOT NULL,
	ended_at       INTEGER NOT NULL,
	victory_reason TEXT NOT NULL,
	document       TEXT NOT NULL
)`

// SQLite archives games in a single table, one JSON document per game
type SQLite struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// OpenSQLite opens the archive at path and creates its table
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *SQLite) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts one finished game
func (s *SQLite) Save(ctx context.Context, doc models.GameLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info := doc.GameInfo
	if strings.TrimSpace(info.GameID) == "" {
		return ErrMissingID
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode game log: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (
		   game_id, board, winner, total_rounds, total_players, alive_players,
		   ended_at, victory_reason, document
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		info.GameID,
		info.Board,
		string(info.Winner),
		info.TotalRounds,
		info.TotalPlayers,
		info.AlivePlayers,
		toMillis(info.EndTime),
		doc.VictoryReason,
		string(data),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// Get loads one archived game
func (s *SQLite) Get(ctx context.Context, id string) (models.GameLog, error) {
	var data string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT document FROM games WHERE game_id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameLog{}, ErrNotFound
	}
	if err != nil {
		return models.GameLog{}, fmt.Errorf("get game: %w", err)
	}
	var doc models.GameLog
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return models.GameLog{}, fmt.Errorf("decode game log: %w", err)
	}
	return doc, nil
}

// List returns the archived games oldest first
func (s *SQLite) List(ctx context.Context) ([]models.GameInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, board, winner, total_rounds, total_players, alive_players, ended_at
		   FROM games ORDER BY ended_at, game_id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []models.GameInfo
	for rows.Next() {
		var (
			info   models.GameInfo
			winner string
			ended  int64
		)
		if err := rows.Scan(&info.GameID, &info.Board, &winner, &info.TotalRounds,
			&info.TotalPlayers, &info.AlivePlayers, &ended); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		info.Winner = models.Camp(winner)
		info.EndTime = fromMillis(ended)
		info.DeadPlayers = info.TotalPlayers - info.AlivePlayers
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
