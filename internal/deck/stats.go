package deck

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string      `json:"db_path"`
	DBSizeBytes int64       `json:"db_size_bytes"`
	Decks       []DeckStats `json:"decks"`
	ReviewCount int         `json:"review_events"`
}

// DeckStats holds per-deck counts.
type DeckStats struct {
	Key      string `json:"key"`
	Items    int    `json:"items"`
	Reviewed int    `json:"reviewed"`
}

// Stats returns deck and review-log statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_log`).Scan(&st.ReviewCount); err != nil {
		return st, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT deck_key, items FROM decks ORDER BY deck_key`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return st, err
		}
		items := decodeItems([]byte(value))
		ds := DeckStats{Key: key, Items: len(items)}
		for _, it := range items {
			if !it.LastReviewedAt.IsZero() {
				ds.Reviewed++
			}
		}
		st.Decks = append(st.Decks, ds)
	}
	return st, rows.Err()
}
