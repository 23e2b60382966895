package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameRecord is a finished (or abandoned) 2048 game.
type GameRecord struct {
	ID        string // UUID, assigned by SaveGame when empty
	Score     int
	MaxTile   int
	Moves     int
	Status    string // Final engine status: win, lose, playing
	Seed      int64
	Board     string // Final board, rows separated by '/'
	Initial   string // Board every start began from, empty for an empty board
	History   string // Encoded command history, replayable with Seed
	CreatedAt time.Time
}

// GameStats contains aggregated statistics over all recorded games.
type GameStats struct {
	GamesCount int
	Wins       int
	Losses     int
	HighScore  int
	BestTile   int
	AvgScore   float64
	TotalMoves int64
	LastPlayed time.Time
}

const gameColumns = `id, score, max_tile, moves, status, seed, board, initial, history, created_at`

// SaveGame records a game and returns its ID.
func (s *Store) SaveGame(rec GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return "", fmt.Errorf("storage: invalid game id %q: %w", rec.ID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO games (id, score, max_tile, moves, status, seed, board, initial, history)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Score,
		rec.MaxTile,
		rec.Moves,
		rec.Status,
		rec.Seed,
		rec.Board,
		rec.Initial,
		rec.History,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return rec.ID, nil
}

// GameByID retrieves a game by its ID. Returns nil if it does not exist.
func (s *Store) GameByID(id string) (*GameRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+gameColumns+` FROM games WHERE id = ?`,
		id,
	)

	rec, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return &rec, nil
}

// RecentGames retrieves the most recent games, newest first.
// A non-positive limit means 20.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
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
		rec, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// GameStats retrieves aggregated statistics over all recorded games.
func (s *Store) GameStats() (*GameStats, error) {
	stats := &GameStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'win' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'lose' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(moves), 0),
		        MAX(created_at)
		 FROM games`,
	).Scan(
		&stats.GamesCount,
		&stats.Wins,
		&stats.Losses,
		&stats.HighScore,
		&stats.BestTile,
		&stats.AvgScore,
		&stats.TotalMoves,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearGames deletes all game records.
func (s *Store) ClearGames() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (GameRecord, error) {
	var rec GameRecord
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.Score,
		&rec.MaxTile,
		&rec.Moves,
		&rec.Status,
		&rec.Seed,
		&rec.Board,
		&rec.Initial,
		&rec.History,
		&createdAt,
	)
	if err != nil {
		return GameRecord{}, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
