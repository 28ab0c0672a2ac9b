package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mlazarev/speakcheck/internal/lesson"
)

// fakeStore is an in-memory Store for manager tests.
type fakeStore struct {
	decks   map[string][]Item
	reviews int
	failAll bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{decks: map[string][]Item{}}
}

func (f *fakeStore) Load(ctx context.Context, key Key) ([]Item, error) {
	if f.failAll {
		return nil, fmt.Errorf("boom")
	}
	items := f.decks[key.String()]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

func (f *fakeStore) Save(ctx context.Context, key Key, items []Item) error {
	if f.failAll {
		return fmt.Errorf("boom")
	}
	f.decks[key.String()] = items
	return nil
}

func (f *fakeStore) LogReview(ctx context.Context, key Key, fingerprint string, at time.Time) error {
	if f.failAll {
		return fmt.Errorf("boom")
	}
	f.reviews++
	return nil
}

func (f *fakeStore) Close() error { return nil }

// testClock returns a clock that advances one minute per call.
func testClock() func() time.Time {
	t := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func scriptWithConstructors(tasks ...lesson.ConstructorTask) lesson.Script {
	s := lesson.Script{}
	s.SetConstructorTasks(tasks)
	return s
}

func ctorTask(correct string) lesson.ConstructorTask {
	return lesson.ConstructorTask{Words: []string{"w"}, Correct: correct}
}

func TestAugmentScript_FreshTasksTracked(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))

	script := scriptWithConstructors(ctorTask("I am fine"), ctorTask("I am tired"))
	out, _ := m.AugmentScript(context.Background(), script, "u1", "a1", "en")

	tasks := out.ConstructorTasks()
	if len(tasks) != 2 {
		t.Fatalf("augmented task count = %d, want 2", len(tasks))
	}

	key := Key{Kind: KindConstructor, UserID: "u1", Level: "a1", Lang: "en"}
	items := store.decks[key.String()]
	if len(items) != 2 {
		t.Fatalf("persisted deck size = %d, want 2", len(items))
	}
	for _, it := range items {
		if it.LastSeenAt.IsZero() {
			t.Errorf("item %s has zero LastSeenAt", it.ID)
		}
		if !it.LastReviewedAt.IsZero() {
			t.Errorf("unreviewed item %s has LastReviewedAt set", it.ID)
		}
	}
}

func TestAugmentScript_MergeIdempotent(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))
	key := Key{Kind: KindConstructor, UserID: "u1", Level: "a1", Lang: "en"}

	script := scriptWithConstructors(ctorTask("I am fine"), ctorTask("I am tired"))
	m.AugmentScript(context.Background(), script, "u1", "a1", "en")

	script = scriptWithConstructors(ctorTask("I am fine"), ctorTask("I am tired"))
	m.AugmentScript(context.Background(), script, "u1", "a1", "en")

	items := store.decks[key.String()]
	if len(items) != 2 {
		t.Fatalf("repeat augment duplicated items: deck size = %d, want 2", len(items))
	}
}

func TestAugmentScript_DedupesFreshByFingerprint(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))

	script := scriptWithConstructors(ctorTask("I am fine"), ctorTask("I am fine"))
	out, changed := m.AugmentScript(context.Background(), script, "u1", "a1", "en")

	if got := len(out.ConstructorTasks()); got != 1 {
		t.Errorf("duplicate fresh tasks not collapsed: %d tasks", got)
	}
	if !changed {
		t.Error("dropping a duplicate should report change")
	}
}

func TestAugmentScript_InjectsReviewItems(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()), WithPerLessonLimit(2))

	// Seed the deck with three older tasks.
	seed := scriptWithConstructors(ctorTask("old one"), ctorTask("old two"), ctorTask("old three"))
	m.AugmentScript(context.Background(), seed, "u1", "a1", "en")

	// The middle one was reviewed, making it the least urgent.
	m.RecordConstructorReview(context.Background(), "u1", "a1", "en", ctorTask("old two"))

	fresh := scriptWithConstructors(ctorTask("brand new"))
	out, changed := m.AugmentScript(context.Background(), fresh, "u1", "a1", "en")
	if !changed {
		t.Fatal("augmentation should report change")
	}

	tasks := out.ConstructorTasks()
	if len(tasks) != 3 {
		t.Fatalf("task count = %d, want 1 fresh + 2 review", len(tasks))
	}
	if tasks[0].Correct != "brand new" {
		t.Errorf("fresh task must lead the lesson, got %q", tasks[0].Correct)
	}
	// Never-reviewed items precede the reviewed one.
	for _, task := range tasks[1:] {
		if task.Correct == "old two" {
			t.Errorf("reviewed item selected before never-reviewed ones: %v", tasks)
		}
	}
}

func TestAugmentScript_DeckCapacityFloor(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()), WithMaxDeckSize(10))
	key := Key{Kind: KindConstructor, UserID: "u1", Level: "a1", Lang: "en"}

	// MinDeckSize floors the configured cap.
	for i := 0; i < 120; i++ {
		script := scriptWithConstructors(ctorTask(fmt.Sprintf("sentence %d", i)))
		m.AugmentScript(context.Background(), script, "u1", "a1", "en")
	}

	items := store.decks[key.String()]
	if len(items) != MinDeckSize {
		t.Fatalf("deck size = %d, want %d", len(items), MinDeckSize)
	}
	// Retained items are exactly the most recently seen ones.
	for i := 1; i < len(items); i++ {
		if items[i-1].LastSeenAt.Before(items[i].LastSeenAt) {
			t.Fatal("deck not ordered by most recent LastSeenAt")
		}
	}
	var newest lesson.ConstructorTask
	if err := json.Unmarshal(items[0].Task, &newest); err != nil {
		t.Fatal(err)
	}
	if newest.Correct != "sentence 119" {
		t.Errorf("most recent item = %q, want %q", newest.Correct, "sentence 119")
	}
}

func TestAugmentScript_DeckCapAboveFloor(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()), WithMaxDeckSize(60))
	key := Key{Kind: KindConstructor, UserID: "u1", Level: "a1", Lang: "en"}

	// A cap above MinDeckSize is honored as-is.
	for i := 0; i < 200; i++ {
		script := scriptWithConstructors(ctorTask(fmt.Sprintf("sentence %d", i)))
		m.AugmentScript(context.Background(), script, "u1", "a1", "en")
	}

	items := store.decks[key.String()]
	if len(items) != 60 {
		t.Fatalf("deck size = %d, want 60", len(items))
	}
	var newest lesson.ConstructorTask
	if err := json.Unmarshal(items[0].Task, &newest); err != nil {
		t.Fatal(err)
	}
	if newest.Correct != "sentence 199" {
		t.Errorf("most recent item = %q, want %q", newest.Correct, "sentence 199")
	}
}

func TestAugmentScript_MalformedScriptUnchanged(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))

	script := lesson.ParseScript([]byte(`"not an object"`))
	out, changed := m.AugmentScript(context.Background(), script, "u1", "a1", "en")
	if changed {
		t.Error("malformed script must report changed=false")
	}
	if len(out) != 0 {
		t.Errorf("malformed script must come back unmodified, got %v", out)
	}
	if len(store.decks) != 0 {
		t.Errorf("malformed script must not touch storage")
	}
}

func TestAugmentScript_SkipsAbsentKinds(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))

	script := lesson.ParseScript([]byte(`{"title":"no tasks here"}`))
	_, changed := m.AugmentScript(context.Background(), script, "u1", "a1", "en")
	if changed {
		t.Error("script without task lists must report changed=false")
	}
}

func TestAugmentScript_StorageFailureDegrades(t *testing.T) {
	store := newFakeStore()
	store.failAll = true
	m := NewManager(store, WithClock(testClock()))

	script := scriptWithConstructors(ctorTask("I am fine"))
	out, _ := m.AugmentScript(context.Background(), script, "u1", "a1", "en")
	if got := len(out.ConstructorTasks()); got != 1 {
		t.Errorf("augmentation must survive storage failure, got %d tasks", got)
	}
}

func TestRecordReview_Timestamps(t *testing.T) {
	store := newFakeStore()
	clock := testClock()
	m := NewManager(store, WithClock(clock))
	key := Key{Kind: KindConstructor, UserID: "u1", Level: "a1", Lang: "en"}

	task := ctorTask("I am fine")
	m.AugmentScript(context.Background(), scriptWithConstructors(task), "u1", "a1", "en")
	m.RecordConstructorReview(context.Background(), "u1", "a1", "en", task)

	items := store.decks[key.String()]
	if len(items) != 1 {
		t.Fatalf("deck size = %d, want 1", len(items))
	}
	if items[0].LastReviewedAt.IsZero() {
		t.Error("review did not set LastReviewedAt")
	}
	if items[0].LastSeenAt.Before(items[0].LastReviewedAt) {
		t.Error("LastSeenAt must be bumped to at least the review time")
	}
	if store.reviews != 1 {
		t.Errorf("review log entries = %d, want 1", store.reviews)
	}
}

func TestRecordReview_UnknownTaskUpserts(t *testing.T) {
	store := newFakeStore()
	m := NewManager(store, WithClock(testClock()))
	key := Key{Kind: KindFindMistake, UserID: "u1", Level: "a1", Lang: "en"}

	task := lesson.FindMistakeTask{Options: [2]string{"I am", "I is"}, Answer: "I am"}
	m.RecordFindMistakeReview(context.Background(), "u1", "a1", "en", task)

	items := store.decks[key.String()]
	if len(items) != 1 {
		t.Fatalf("deck size = %d, want 1", len(items))
	}
	if items[0].LastReviewedAt.IsZero() || items[0].LastSeenAt.IsZero() {
		t.Error("new reviewed item must carry both timestamps")
	}
}
