package deck

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/mlazarev/speakcheck/internal/lesson"
)

const (
	DefaultPerLessonLimit = 5
	DefaultMaxDeckSize    = 800

	// Decks never shrink below this, whatever cap a caller configures.
	MinDeckSize = 50
)

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

// WithPerLessonLimit caps how many review items get mixed into one lesson.
func WithPerLessonLimit(n int) Option {
	return func(m *Manager) { m.perLessonLimit = n }
}

// WithMaxDeckSize caps how many items a deck retains. Values below
// MinDeckSize are raised to it.
func WithMaxDeckSize(n int) Option {
	return func(m *Manager) { m.maxDeckSize = n }
}

// WithLogger sets the logger for swallowed storage failures.
func WithLogger(log *logrus.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// Manager merges freshly generated lesson tasks into the persisted decks and
// selects the review mix for each lesson.
type Manager struct {
	store          Store
	clock          func() time.Time
	perLessonLimit int
	maxDeckSize    int
	log            *logrus.Logger
}

// NewManager wires the store with default limits.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:          store,
		clock:          time.Now,
		perLessonLimit: DefaultPerLessonLimit,
		maxDeckSize:    DefaultMaxDeckSize,
		log:            logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// AugmentScript folds the script's fresh tasks into the learner's decks and
// rebuilds each task list as: deduplicated fresh tasks first, then the
// least-recently-reviewed deck items up to the per-lesson limit. Task kinds
// absent from the script are left alone. The returned flag reports whether
// any task list's serialized form changed. Storage failures degrade to an
// empty deck or a lost save, never to an error.
func (m *Manager) AugmentScript(ctx context.Context, script lesson.Script, userID, level, lang string) (lesson.Script, bool) {
	if len(script) == 0 {
		return script, false
	}

	changed := false
	if _, ok := script[lesson.ConstructorField]; ok {
		key := Key{Kind: KindConstructor, UserID: userID, Level: level, Lang: lang}
		tasks := augmentTasks(m, ctx, key, script.ConstructorTasks(), lesson.ConstructorTask.Normalized)
		if script.SetConstructorTasks(tasks) {
			changed = true
		}
	}
	if _, ok := script[lesson.FindMistakeField]; ok {
		key := Key{Kind: KindFindMistake, UserID: userID, Level: level, Lang: lang}
		tasks := augmentTasks(m, ctx, key, script.FindMistakeTasks(), lesson.FindMistakeTask.Normalized)
		if script.SetFindMistakeTasks(tasks) {
			changed = true
		}
	}
	return script, changed
}

// RecordConstructorReview marks a constructor task as completed by the
// learner. Fire and forget.
func (m *Manager) RecordConstructorReview(ctx context.Context, userID, level, lang string, task lesson.ConstructorTask) {
	key := Key{Kind: KindConstructor, UserID: userID, Level: level, Lang: lang}
	recordReview(m, ctx, key, task, lesson.ConstructorTask.Normalized)
}

// RecordFindMistakeReview marks a find-the-mistake task as completed by the
// learner. Fire and forget.
func (m *Manager) RecordFindMistakeReview(ctx context.Context, userID, level, lang string, task lesson.FindMistakeTask) {
	key := Key{Kind: KindFindMistake, UserID: userID, Level: level, Lang: lang}
	recordReview(m, ctx, key, task, lesson.FindMistakeTask.Normalized)
}

type stamped[T any] struct {
	id   string
	task T
}

func fingerprinted[T any](fresh []T, norm func(T) T) []stamped[T] {
	return lo.UniqBy(lo.Map(fresh, func(t T, _ int) stamped[T] {
		n := norm(t)
		return stamped[T]{id: lesson.Fingerprint(n), task: n}
	}), func(s stamped[T]) string { return s.id })
}

func augmentTasks[T any](m *Manager, ctx context.Context, key Key, fresh []T, norm func(T) T) []T {
	now := m.clock()
	uniq := fingerprinted(fresh, norm)

	items := m.loadDeck(ctx, key)
	index := make(map[string]int, len(items))
	for i, it := range items {
		index[it.ID] = i
	}

	for _, f := range uniq {
		if i, ok := index[f.id]; ok {
			items[i].LastSeenAt = now
			continue
		}
		raw, err := json.Marshal(f.task)
		if err != nil {
			continue
		}
		items = append(items, Item{ID: f.id, Task: raw, LastSeenAt: now})
	}

	items = trimDeck(items, m.maxDeckSize)
	m.saveDeck(ctx, key, items)

	// Fresh tasks lead the lesson; review items fill the remaining slots,
	// least recently reviewed first, ties broken by least recently seen.
	final := lo.Map(uniq, func(s stamped[T], _ int) T { return s.task })
	freshIDs := lo.SliceToMap(uniq, func(s stamped[T]) (string, struct{}) { return s.id, struct{}{} })

	review := lo.Filter(items, func(it Item, _ int) bool {
		_, fresh := freshIDs[it.ID]
		return !fresh
	})
	sort.SliceStable(review, func(i, j int) bool {
		if !review[i].LastReviewedAt.Equal(review[j].LastReviewedAt) {
			return review[i].LastReviewedAt.Before(review[j].LastReviewedAt)
		}
		return review[i].LastSeenAt.Before(review[j].LastSeenAt)
	})

	added := 0
	for _, it := range review {
		if added >= m.perLessonLimit {
			break
		}
		var t T
		if err := json.Unmarshal(it.Task, &t); err != nil {
			continue
		}
		final = append(final, t)
		added++
	}
	return final
}

func recordReview[T any](m *Manager, ctx context.Context, key Key, task T, norm func(T) T) {
	now := m.clock()
	n := norm(task)
	id := lesson.Fingerprint(n)

	items := m.loadDeck(ctx, key)
	found := false
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].LastReviewedAt = now
		if items[i].LastSeenAt.Before(now) {
			items[i].LastSeenAt = now
		}
		found = true
		break
	}
	if !found {
		if raw, err := json.Marshal(n); err == nil {
			items = append(items, Item{ID: id, Task: raw, LastSeenAt: now, LastReviewedAt: now})
		}
	}

	items = trimDeck(items, m.maxDeckSize)
	m.saveDeck(ctx, key, items)

	if err := m.store.LogReview(ctx, key, id, now); err != nil {
		m.log.WithError(err).WithField("deck", key.String()).Debug("review log write failed")
	}
}

// trimDeck keeps the cap most recently seen items, cap floored at
// MinDeckSize. Eviction drops the oldest LastSeenAt first.
func trimDeck(items []Item, maxSize int) []Item {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastSeenAt.After(items[j].LastSeenAt)
	})
	limit := max(maxSize, MinDeckSize)
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func (m *Manager) loadDeck(ctx context.Context, key Key) []Item {
	items, err := m.store.Load(ctx, key)
	if err != nil {
		m.log.WithError(err).WithField("deck", key.String()).Debug("deck load failed, starting empty")
		return nil
	}
	return items
}

func (m *Manager) saveDeck(ctx context.Context, key Key, items []Item) {
	if err := m.store.Save(ctx, key, items); err != nil {
		m.log.WithError(err).WithField("deck", key.String()).Debug("deck save failed")
	}
}
