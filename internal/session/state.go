package session

import (
	"errors"
	"time"

	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/score"
)

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle          State = iota // Constructed, not started
	StateStageActive                // A stage is running and its timer counts down
	StateStageComplete              // Transient, between stages
	StateFinished                   // Terminal; a Result exists
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStageActive:
		return "stage-active"
	case StateStageComplete:
		return "stage-complete"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// EndReason records why a session finished.
type EndReason string

const (
	ReasonCompleted EndReason = "completed" // Every stage's orders were served
	ReasonTimeout   EndReason = "timeout"   // A stage countdown reached zero
	ReasonQuit      EndReason = "quit"      // The player quit
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the
	// machine's current state.
	ErrInvalidState = errors.New("invalid session state")

	// ErrFinished is returned by mutating operations after finalization.
	ErrFinished = errors.New("session already finished")
)

// Fixed deductions attached to generated mistakes.
const (
	WrongOrderPoints = 5
	TimeoutPoints    = 10
)

// DefaultAverageDuration is used when no order was timed. It deliberately
// scores as slow rather than instant.
const DefaultAverageDuration = 120 * time.Second

// Mistake is an append-only record of a scoring deduction.
type Mistake struct {
	OrderNumber    int    `json:"order_number"` // 1-based within the stage
	Description    string `json:"description"`
	DeductedPoints int    `json:"deducted_points"`
}

// OrderSlot is either NoCurrentOrder or an ActiveOrder.
type OrderSlot interface {
	isOrderSlot()
}

// NoCurrentOrder means no order is waiting to be served.
type NoCurrentOrder struct{}

// ActiveOrder is the order currently being served.
type ActiveOrder struct {
	Order      scenario.Order
	StageIndex int
	Number     int // 1-based position within the stage
	StartedAt  time.Time
}

func (NoCurrentOrder) isOrderSlot() {}
func (ActiveOrder) isOrderSlot()    {}

// Result is the outcome of a finished session. It is created once and never
// modified.
type Result struct {
	SessionID           string
	DayID               string
	Score               score.Components
	Mistakes            []Mistake
	TotalOrders         int
	CompletedOrders     int
	CorrectOrders       int
	AverageTimePerOrder time.Duration
	SatisfactionScores  []float64
	Violations          int
	StagesCleared       int
	RequiredScore       int
	Passed              bool // Total met the scenario's required score
	Reason              EndReason
	Elapsed             time.Duration
}

// Total returns the rounded total score.
func (r Result) Total() int {
	return r.Score.Total()
}

// Grade returns the grade for the total score.
func (r Result) Grade() score.Grade {
	return r.Score.Grade()
}

// DeductedPoints sums the points attached to every mistake.
func (r Result) DeductedPoints() int {
	n := 0
	for _, m := range r.Mistakes {
		n += m.DeductedPoints
	}
	return n
}

// Status is a consistent read of the machine's observable values.
type Status struct {
	State           State
	StageIndex      int
	StageCount      int
	Stage           scenario.Stage
	Current         OrderSlot
	Remaining       time.Duration
	CompletedOrders int
	MistakeCount    int
	Violations      int
}
