package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
)

const (
	SourceScore = "score"
	SourceDeal  = "deal"
)

// Show is one persisted, scored hand.
type Show struct {
	ID        int64         `json:"id"`
	Cards     []common.Card `json:"cards"`
	Discarded []common.Card `json:"discarded,omitempty"`
	Fifteens  int           `json:"fifteens"`
	Pairs     int           `json:"pairs"`
	Runs      int           `json:"runs"`
	Total     int           `json:"total"`
	Source    string        `json:"source"`
	CreatedAt time.Time     `json:"created_at"`
}

const showColumns = `id, cards, discarded, fifteens, pairs, runs, total, source, created_at`

func encodeCards(cards []common.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func decodeCards(s string) ([]common.Card, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	return common.ParseHand(fields)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShow(row rowScanner) (*Show, error) {
	var (
		s               Show
		cards, discards string
	)
	if err := row.Scan(&s.ID, &cards, &discards, &s.Fifteens, &s.Pairs, &s.Runs, &s.Total, &s.Source, &s.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if s.Cards, err = decodeCards(cards); err != nil {
		return nil, fmt.Errorf("decode show %d cards: %w", s.ID, err)
	}
	if s.Discarded, err = decodeCards(discards); err != nil {
		return nil, fmt.Errorf("decode show %d discards: %w", s.ID, err)
	}
	return &s, nil
}

func InsertShow(ctx context.Context, db *sql.DB, cards, discarded []common.Card, sb cribbage.ScoreBreakdown, source string) (*Show, error) {
	res, err := db.ExecContext(ctx,
		`INSERT INTO shows(cards, discarded, fifteens, pairs, runs, total, source) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		encodeCards(cards), encodeCards(discarded), sb.Fifteens, sb.Pairs, sb.Runs, sb.Total, source,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetShow(ctx, db, id)
}

func GetShow(ctx context.Context, db *sql.DB, id int64) (*Show, error) {
	s, err := scanShow(db.QueryRowContext(ctx, `SELECT `+showColumns+` FROM shows WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ListShows returns the most recent shows first. minTotal filters out lower scores.
func ListShows(ctx context.Context, db *sql.DB, limit int64, minTotal int) ([]Show, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx,
		`SELECT `+showColumns+` FROM shows WHERE total >= ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		minTotal, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type ShowStats struct {
	Count   int64   `json:"count"`
	Best    int     `json:"best"`
	Average float64 `json:"average"`
}

func GetShowStats(ctx context.Context, db *sql.DB) (*ShowStats, error) {
	var s ShowStats
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(total), 0), COALESCE(AVG(total), 0) FROM shows`,
	).Scan(&s.Count, &s.Best, &s.Average); err != nil {
		return nil, err
	}
	return &s, nil
}
