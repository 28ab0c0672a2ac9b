package deck

import (
	"context"
	"fmt"
)

// DeckDump is one deck with its storage key, as exported.
type DeckDump struct {
	Key   string `json:"key"`
	Items []Item `json:"items"`
}

// ExportAll returns every stored deck. With a non-empty prefix only decks
// whose key starts with it are returned (e.g. a single kind).
func (s *SQLiteStore) ExportAll(ctx context.Context, prefix string) ([]DeckDump, error) {
	query := `SELECT deck_key, items FROM decks ORDER BY deck_key`
	args := []any{}
	if prefix != "" {
		query = `SELECT deck_key, items FROM decks WHERE deck_key LIKE ? ORDER BY deck_key`
		args = append(args, prefix+"%")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dumps []DeckDump
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		dumps = append(dumps, DeckDump{Key: key, Items: decodeItems([]byte(value))})
	}
	return dumps, rows.Err()
}

// Import writes exported decks back, replacing any deck with the same key.
func (s *SQLiteStore) Import(ctx context.Context, dumps []DeckDump) (int, error) {
	imported := 0
	for _, d := range dumps {
		if d.Key == "" {
			continue
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO decks (deck_key, items, updated_at) VALUES (?, ?, datetime('now'))
			 ON CONFLICT(deck_key) DO UPDATE SET items = excluded.items, updated_at = excluded.updated_at`,
			d.Key, string(encodeItems(d.Items)))
		if err != nil {
			return imported, fmt.Errorf("import deck %s: %w", d.Key, err)
		}
		imported++
	}
	return imported, nil
}
