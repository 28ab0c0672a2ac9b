// Package deck keeps a local pool of previously seen exercise tasks per
// learner and course, and mixes a bounded, least-recently-reviewed sample of
// them into freshly generated lessons. Everything here is best effort: deck
// failures must never block lesson delivery.
package deck

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// Kind identifies which exercise deck an item belongs to.
type Kind string

const (
	KindConstructor Kind = "constructorDeck"
	KindFindMistake Kind = "findMistakeDeck"
)

// Key addresses one deck: one learner, one course level, one language, one
// task kind. Free-form parts are escaped so the joined form is unambiguous.
type Key struct {
	Kind   Kind
	UserID string
	Level  string
	Lang   string
}

// String renders the storage key, e.g. "constructorDeck|u42|a1|en".
func (k Key) String() string {
	return strings.Join([]string{
		string(k.Kind),
		url.PathEscape(k.UserID),
		url.PathEscape(k.Level),
		url.PathEscape(k.Lang),
	}, "|")
}

// Item is one tracked task. ID is the content fingerprint of the task, so
// identical tasks collapse to a single item regardless of generation time.
// A zero LastReviewedAt means the learner has never completed the exercise.
type Item struct {
	ID             string          `json:"id"`
	Task           json.RawMessage `json:"task"`
	LastSeenAt     time.Time       `json:"lastSeenAt"`
	LastReviewedAt time.Time       `json:"lastReviewedAt"`
}

// legacyItem additionally accepts the pre-rename field lastShownAt in place
// of lastReviewedAt.
type legacyItem struct {
	Item
	LastShownAt time.Time `json:"lastShownAt"`
}

// decodeItems parses a stored deck value, migrating any legacy lastShownAt
// fields in one pass. Malformed data yields an empty deck.
func decodeItems(data []byte) []Item {
	if len(data) == 0 {
		return nil
	}
	var raw []legacyItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	items := make([]Item, 0, len(raw))
	for _, r := range raw {
		it := r.Item
		if it.LastReviewedAt.IsZero() && !r.LastShownAt.IsZero() {
			it.LastReviewedAt = r.LastShownAt
		}
		if it.ID == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}

func encodeItems(items []Item) []byte {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return data
}
