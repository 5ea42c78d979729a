package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/counterline/internal/score"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestTracker(t *testing.T, store Store) *Tracker {
	t.Helper()
	if store == nil {
		store = NewMemoryStore()
	}
	tr, err := New(context.Background(), store, WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

// failingStore wraps a MemoryStore and fails selected writes.
type failingStore struct {
	*MemoryStore
	failSave  bool
	failReset bool
}

var errDisk = errors.New("disk full")

func (f *failingStore) SaveDay(ctx context.Context, p DayProgress) error {
	if f.failSave {
		return errDisk
	}
	return f.MemoryStore.SaveDay(ctx, p)
}

func (f *failingStore) Reset(ctx context.Context) error {
	if f.failReset {
		return errDisk
	}
	return f.MemoryStore.Reset(ctx)
}

func TestRecordResult_FirstAttempt(t *testing.T) {
	tr := newTestTracker(t, nil)

	p, err := tr.RecordResult(context.Background(), "day1", 72, score.GradeB)
	if err != nil {
		t.Fatalf("RecordResult: %v", err)
	}
	if p.AttemptCount != 1 {
		t.Errorf("AttemptCount = %d, want 1", p.AttemptCount)
	}
	if p.BestScore != 72 || p.BestGrade != score.GradeB {
		t.Errorf("best = %d/%s, want 72/B", p.BestScore, p.BestGrade)
	}
	if !p.Completed {
		t.Error("expected Completed for score 72")
	}
	if !p.LastPlayed.Equal(fixedNow) {
		t.Errorf("LastPlayed = %v, want %v", p.LastPlayed, fixedNow)
	}
}

func TestRecordResult_FirstAttemptFailing(t *testing.T) {
	tr := newTestTracker(t, nil)
	p, _ := tr.RecordResult(context.Background(), "day1", 59, score.GradeD)
	if p.Completed {
		t.Error("expected not Completed for score 59")
	}
}

func TestRecordResult_ImprovesBest(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 70, score.GradeB)
	p, _ := tr.RecordResult(ctx, "day1", 85, score.GradeA)

	if p.BestScore != 85 || p.BestGrade != score.GradeA {
		t.Errorf("best = %d/%s, want 85/A", p.BestScore, p.BestGrade)
	}
	if p.AttemptCount != 2 {
		t.Errorf("AttemptCount = %d, want 2", p.AttemptCount)
	}
}

func TestRecordResult_KeepsBestOnLowerScore(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 85, score.GradeA)
	p, _ := tr.RecordResult(ctx, "day1", 70, score.GradeB)

	if p.BestScore != 85 || p.BestGrade != score.GradeA {
		t.Errorf("best = %d/%s, want 85/A", p.BestScore, p.BestGrade)
	}
	if p.AttemptCount != 2 {
		t.Errorf("AttemptCount = %d, want 2", p.AttemptCount)
	}
}

func TestRecordResult_EqualScoreDoesNotReplaceGrade(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 80, score.GradeB)
	p, _ := tr.RecordResult(ctx, "day1", 80, score.GradeA)
	if p.BestGrade != score.GradeB {
		t.Errorf("BestGrade = %s, want B", p.BestGrade)
	}
}

func TestRecordResult_FailingRetryClearsCompleted(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 90, score.GradeA)
	if !tr.IsDayUnlocked(2) {
		t.Fatal("expected day 2 unlocked after passing day 1")
	}

	p, _ := tr.RecordResult(ctx, "day1", 40, score.GradeD)
	if p.Completed {
		t.Error("expected Completed=false after failing retry")
	}
	if p.BestScore != 90 {
		t.Errorf("BestScore = %d, want 90", p.BestScore)
	}
	if tr.IsDayUnlocked(2) {
		t.Error("expected day 2 locked again after failing retry")
	}
}

func TestBestScoreIsMaximumOfAllAttempts(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	scores := []int{40, 77, 63, 91, 12, 90}
	for _, s := range scores {
		tr.RecordResult(ctx, "day3", s, score.GradeFor(s))
	}
	p, ok := tr.Progress("day3")
	if !ok {
		t.Fatal("expected day3 record")
	}
	if p.BestScore != 91 || p.BestGrade != score.GradeA {
		t.Errorf("best = %d/%s, want 91/A", p.BestScore, p.BestGrade)
	}
	if p.AttemptCount != len(scores) {
		t.Errorf("AttemptCount = %d, want %d", p.AttemptCount, len(scores))
	}
}

func TestIsDayUnlocked(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	if !tr.IsDayUnlocked(1) {
		t.Error("day 1 must always be unlocked")
	}
	if tr.IsDayUnlocked(2) {
		t.Error("day 2 must be locked before day 1 is completed")
	}

	tr.RecordResult(ctx, "day1", 50, score.GradeD)
	if tr.IsDayUnlocked(2) {
		t.Error("day 2 must stay locked when day 1 failed")
	}

	tr.RecordResult(ctx, "day1", 60, score.GradeC)
	if !tr.IsDayUnlocked(2) {
		t.Error("day 2 must unlock once day 1 is completed")
	}
	if tr.IsDayUnlocked(3) {
		t.Error("day 3 must be locked until day 2 is completed")
	}
}

func TestUnlock_Idempotent(t *testing.T) {
	store := NewMemoryStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()

	if err := tr.Unlock(ctx, "tip_greeting"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if err := tr.Unlock(ctx, "tip_greeting"); err != nil {
		t.Fatalf("Unlock again: %v", err)
	}

	if got := tr.UnlockedContent(); len(got) != 1 {
		t.Errorf("UnlockedContent() = %v, want 1 entry", got)
	}
	if !tr.IsUnlocked("tip_greeting") {
		t.Error("expected tip_greeting unlocked")
	}

	snap, _ := store.Load(ctx)
	if len(snap.Unlocked) != 1 {
		t.Errorf("persisted unlocks = %d, want 1", len(snap.Unlocked))
	}
}

func TestOverallProgress(t *testing.T) {
	tr := newTestTracker(t, nil)
	ctx := context.Background()

	if got := tr.OverallProgress(); got != 0 {
		t.Errorf("OverallProgress() = %v, want 0", got)
	}
	tr.RecordResult(ctx, "day1", 80, score.GradeB)
	tr.RecordResult(ctx, "day2", 30, score.GradeD)
	tr.RecordResult(ctx, "day3", 95, score.GradeS)

	want := 2.0 / 7.0
	if got := tr.OverallProgress(); got != want {
		t.Errorf("OverallProgress() = %v, want %v", got, want)
	}
}

func TestReset(t *testing.T) {
	store := NewMemoryStore()
	tr := newTestTracker(t, store)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 80, score.GradeB)
	tr.Unlock(ctx, "tip_greeting")

	if err := tr.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if len(tr.AllProgress()) != 0 || len(tr.UnlockedContent()) != 0 {
		t.Error("expected empty tracker after reset")
	}
	snap, _ := store.Load(ctx)
	if len(snap.Days) != 0 || len(snap.Unlocked) != 0 {
		t.Error("expected empty store after reset")
	}
}

func TestReset_StoreFailureKeepsState(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failReset: true}
	tr := newTestTracker(t, store)
	ctx := context.Background()

	tr.RecordResult(ctx, "day1", 80, score.GradeB)
	if err := tr.Reset(ctx); !errors.Is(err, errDisk) {
		t.Fatalf("Reset error = %v, want errDisk", err)
	}
	if _, ok := tr.Progress("day1"); !ok {
		t.Error("expected day1 record to survive failed reset")
	}
}

func TestRecordResult_StoreFailureKeepsMemory(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), failSave: true}
	tr := newTestTracker(t, store)

	_, err := tr.RecordResult(context.Background(), "day1", 80, score.GradeB)
	if !errors.Is(err, errDisk) {
		t.Fatalf("RecordResult error = %v, want errDisk", err)
	}
	if p, ok := tr.Progress("day1"); !ok || p.BestScore != 80 {
		t.Errorf("Progress(day1) = %+v, %v; want in-memory record", p, ok)
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := newTestTracker(t, store)
	first.RecordResult(ctx, "day1", 88, score.GradeA)
	first.Unlock(ctx, "tip_repeat_order")

	second := newTestTracker(t, store)
	p, ok := second.Progress("day1")
	if !ok || p.BestScore != 88 {
		t.Errorf("Progress(day1) = %+v, %v; want persisted record", p, ok)
	}
	if !second.IsUnlocked("tip_repeat_order") {
		t.Error("expected persisted unlock")
	}
	if !second.IsDayUnlocked(2) {
		t.Error("expected day 2 unlocked from persisted state")
	}
}
