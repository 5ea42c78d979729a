// Package progress tracks per-day results and unlocked reward content.
//
// The Tracker applies every change to its in-memory state first and then
// persists it through a Store as a separate step, under the same lock so
// writes reach the store in mutation order. A failed write is reported to the
// caller but never rolls back state that was already applied. Reset is the
// exception: memory is only cleared after the store has been cleared.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/counterline/internal/score"
)

// TotalDays is the fixed course length used for overall progress.
const TotalDays = 7

// Tracker owns day progress records and the unlocked-content set.
type Tracker struct {
	mu       sync.RWMutex
	store    Store
	days     map[string]DayProgress
	unlocked map[string]time.Time
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used for timestamps.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) { t.clock = clock }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// New creates a Tracker and loads its state from store.
func New(ctx context.Context, store Store, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:    store,
		days:     make(map[string]DayProgress),
		unlocked: make(map[string]time.Time),
		clock:    time.Now,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	for k, v := range snap.Days {
		t.days[k] = v
	}
	for k, v := range snap.Unlocked {
		t.unlocked[k] = v
	}
	return t, nil
}

// RecordResult records one finished attempt at a day and returns the
// updated record.
//
// The best score and grade only move when the new score is strictly higher.
// Completed always reflects the latest attempt, so a failing retry clears it
// even if an earlier attempt passed.
func (t *Tracker) RecordResult(ctx context.Context, dayID string, total int, grade score.Grade) (DayProgress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	p, exists := t.days[dayID]
	if !exists {
		p = DayProgress{
			DayID:        dayID,
			BestScore:    total,
			BestGrade:    grade,
			AttemptCount: 1,
		}
	} else {
		p.AttemptCount++
		if total > p.BestScore {
			p.BestScore = total
			p.BestGrade = grade
		}
	}
	p.Completed = total >= score.PassingScore
	p.LastPlayed = now
	t.days[dayID] = p

	if err := t.store.SaveDay(ctx, p); err != nil {
		t.logger.Error("persist day progress", "day", dayID, "error", err)
		return p, fmt.Errorf("save day progress: %w", err)
	}
	return p, nil
}

// Unlock adds contentID to the unlocked set. Unlocking twice is a no-op.
func (t *Tracker) Unlock(ctx context.Context, contentID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.unlocked[contentID]; ok {
		return nil
	}
	now := t.clock()
	t.unlocked[contentID] = now

	if err := t.store.SaveUnlock(ctx, contentID, now); err != nil {
		t.logger.Error("persist unlock", "content", contentID, "error", err)
		return fmt.Errorf("save unlock: %w", err)
	}
	return nil
}

// IsUnlocked reports whether contentID has been unlocked.
func (t *Tracker) IsUnlocked(contentID string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.unlocked[contentID]
	return ok
}

// UnlockedContent returns the unlocked identifiers in sorted order.
func (t *Tracker) UnlockedContent() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.unlocked))
	for id := range t.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsDayUnlocked reports whether a day can be played. Day 1 is always open;
// later days need the previous day's record to be completed.
func (t *Tracker) IsDayUnlocked(dayNumber int) bool {
	if dayNumber <= 1 {
		return true
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	prev, ok := t.days[dayKey(dayNumber-1)]
	return ok && prev.Completed
}

// Progress returns the record for a day, if any.
func (t *Tracker) Progress(dayID string) (DayProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.days[dayID]
	return p, ok
}

// AllProgress returns every record sorted by day identifier.
func (t *Tracker) AllProgress() []DayProgress {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]DayProgress, 0, len(t.days))
	for _, p := range t.days {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayID < out[j].DayID })
	return out
}

// CompletedDays returns how many day records are marked completed.
func (t *Tracker) CompletedDays() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n := 0
	for _, p := range t.days {
		if p.Completed {
			n++
		}
	}
	return n
}

// OverallProgress returns completed days over TotalDays.
func (t *Tracker) OverallProgress() float64 {
	return float64(t.CompletedDays()) / float64(TotalDays)
}

// Reset clears all records and unlocked content. Memory is only cleared once
// the store reset succeeds.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	t.days = make(map[string]DayProgress)
	t.unlocked = make(map[string]time.Time)
	return nil
}

func dayKey(dayNumber int) string {
	return fmt.Sprintf("day%d", dayNumber)
}
