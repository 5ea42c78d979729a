package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	DayID  string    // only events for this day
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures one session lifecycle event.
type SessionEventData struct {
	SessionID       string
	DayID           string
	Action          string
	CompletedOrders int
	TotalOrders     int
	Mistakes        int
	Score           int
	Grade           string
	Reason          string
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// SessionEvents returns events newest first.
	SessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// CountSessions returns the number of finished sessions.
	CountSessions(ctx context.Context) (int, error)
}
