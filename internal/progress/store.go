package progress

import (
	"context"
	"sync"
	"time"

	"github.com/abhisek/counterline/internal/score"
)

// DayProgress is the persisted record for one day.
type DayProgress struct {
	DayID        string
	Completed    bool
	BestScore    int
	BestGrade    score.Grade
	AttemptCount int
	LastPlayed   time.Time
}

// Snapshot is everything a Store holds.
type Snapshot struct {
	Days     map[string]DayProgress
	Unlocked map[string]time.Time
}

// Store is the durable home of progress data. Writes must be visible to a
// Load issued after they return.
type Store interface {
	// Load returns all persisted records.
	Load(ctx context.Context) (Snapshot, error)

	// SaveDay upserts a single day record.
	SaveDay(ctx context.Context, p DayProgress) error

	// SaveUnlock records a content identifier. Saving an existing id is a no-op.
	SaveUnlock(ctx context.Context, contentID string, at time.Time) error

	// Reset removes all day records and unlocked content in one step.
	Reset(ctx context.Context) error
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	days     map[string]DayProgress
	unlocked map[string]time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		days:     make(map[string]DayProgress),
		unlocked: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Days:     make(map[string]DayProgress, len(m.days)),
		Unlocked: make(map[string]time.Time, len(m.unlocked)),
	}
	for k, v := range m.days {
		snap.Days[k] = v
	}
	for k, v := range m.unlocked {
		snap.Unlocked[k] = v
	}
	return snap, nil
}

func (m *MemoryStore) SaveDay(_ context.Context, p DayProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[p.DayID] = p
	return nil
}

func (m *MemoryStore) SaveUnlock(_ context.Context, contentID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.unlocked[contentID]; !ok {
		m.unlocked[contentID] = at
	}
	return nil
}

func (m *MemoryStore) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days = make(map[string]DayProgress)
	m.unlocked = make(map[string]time.Time)
	return nil
}
