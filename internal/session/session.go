// Package session runs one play-through of a scenario: stage and order
// sequencing, the stage countdown, mistake and metric accumulation, and the
// single finalization that scores the run and reports it to progress.
//
// The machine never owns a timer. The host calls Tick once per elapsed
// second; every public method takes the same lock, so ticks from a ticker
// goroutine are serialized with player actions.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/counterline/internal/progress"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/score"
)

// Clock supplies monotonic time for order durations.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Reporter receives the outcome of a finished session. *progress.Tracker
// satisfies it.
type Reporter interface {
	Unlock(ctx context.Context, contentID string) error
	RecordResult(ctx context.Context, dayID string, total int, grade score.Grade) (progress.DayProgress, error)
}

var _ Reporter = (*progress.Tracker)(nil)

// Machine is the session state machine. Create one per play-through.
type Machine struct {
	mu sync.Mutex

	scenario  scenario.Scenario
	sessionID string
	clock     Clock
	reporter  Reporter
	logger    *slog.Logger

	state      State
	stageIndex int
	orderIndex int
	current    OrderSlot
	remaining  int // seconds left in the active stage
	startedAt  time.Time

	completed     int
	correct       int
	stagesCleared int
	mistakes      []Mistake
	satisfaction  []float64
	durations     []time.Duration
	violations    int

	result    *Result
	reportErr error
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock sets the time source for order durations.
func WithClock(c Clock) Option {
	return func(m *Machine) { m.clock = c }
}

// WithReporter sets where the finished session is reported.
func WithReporter(r Reporter) Option {
	return func(m *Machine) { m.reporter = r }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(m *Machine) { m.sessionID = id }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

// New creates an idle machine for sc. The scenario is assumed to be valid.
func New(sc scenario.Scenario, opts ...Option) *Machine {
	m := &Machine{
		scenario:  sc,
		sessionID: uuid.New().String(),
		clock:     systemClock{},
		logger:    slog.New(slog.DiscardHandler),
		state:     StateIdle,
		current:   NoCurrentOrder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("session_id", m.sessionID, "day", sc.ID)
	if len(sc.Stages) > 0 {
		m.remaining = sc.Stages[0].TimeLimitSeconds
	}
	return m
}

// Start begins the first stage. It is a no-op when the scenario has no
// stages.
func (m *Machine) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkState(StateIdle); err != nil {
		return err
	}
	if len(m.scenario.Stages) == 0 {
		return nil
	}

	m.startedAt = m.clock.Now()
	m.logger.Info("session started", "stages", len(m.scenario.Stages), "orders", m.scenario.TotalOrders())
	m.enterStage(0)
	return nil
}

// SubmitOrderOutcome records how the current order was served and moves to
// the next order, the next stage, or finalization.
func (m *Machine) SubmitOrderOutcome(isCorrect bool, satisfaction float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkState(StateStageActive); err != nil {
		return err
	}
	active, ok := m.current.(ActiveOrder)
	if !ok {
		return fmt.Errorf("submit order outcome: no current order: %w", ErrInvalidState)
	}

	m.durations = append(m.durations, m.clock.Now().Sub(active.StartedAt))
	m.satisfaction = append(m.satisfaction, satisfaction)
	if isCorrect {
		m.correct++
	} else {
		m.mistakes = append(m.mistakes, Mistake{
			OrderNumber:    active.Number,
			Description:    fmt.Sprintf("%s: order handled incorrectly", active.Order.CustomerName),
			DeductedPoints: WrongOrderPoints,
		})
	}
	m.completed++
	m.logger.Debug("order served", "order", active.Order.ID, "correct", isCorrect, "satisfaction", satisfaction)

	m.orderIndex++
	m.loadOrder()
	return nil
}

// RecordMistake appends a mistake detected outside order submission, such as
// a hygiene breach. It does not advance the order. Negative points count as
// zero.
func (m *Machine) RecordMistake(description string, points int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkState(StateStageActive); err != nil {
		return err
	}
	if points < 0 {
		points = 0
	}
	m.mistakes = append(m.mistakes, Mistake{
		OrderNumber:    m.currentNumber(),
		Description:    description,
		DeductedPoints: points,
	})
	return nil
}

// RecordComplianceViolation counts a procedural violation.
func (m *Machine) RecordComplianceViolation() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkState(StateStageActive); err != nil {
		return err
	}
	m.violations++
	return nil
}

// Tick advances the countdown by one second. Reaching zero records a timeout
// mistake and finalizes the whole session, even when later stages remain.
func (m *Machine) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkState(StateStageActive); err != nil {
		return err
	}

	m.remaining--
	if m.remaining > 0 {
		return nil
	}
	m.remaining = 0
	m.mistakes = append(m.mistakes, Mistake{
		OrderNumber:    m.currentNumber(),
		Description:    "time ran out before the order was served",
		DeductedPoints: TimeoutPoints,
	})
	m.logger.Info("stage timed out", "stage", m.scenario.Stages[m.stageIndex].ID)
	m.finalize(ReasonTimeout)
	return nil
}

// Quit finalizes the session with whatever has been accumulated.
func (m *Machine) Quit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFinished {
		return ErrFinished
	}
	m.finalize(ReasonQuit)
	return nil
}

// checkState rejects the call unless the machine is in want.
func (m *Machine) checkState(want State) error {
	if m.state == StateFinished {
		return ErrFinished
	}
	if m.state != want {
		return fmt.Errorf("%s required, machine is %s: %w", want, m.state, ErrInvalidState)
	}
	return nil
}

// enterStage resets the per-stage timer and order index. Session metrics
// carry over.
func (m *Machine) enterStage(i int) {
	stage := m.scenario.Stages[i]
	m.stageIndex = i
	m.orderIndex = 0
	m.remaining = stage.TimeLimitSeconds
	m.state = StateStageActive
	m.logger.Debug("stage started", "stage", stage.ID, "kind", stage.Kind, "time_limit", stage.TimeLimitSeconds)
	m.loadOrder()
}

// loadOrder makes the order at orderIndex current, or completes the stage
// when its orders are exhausted.
func (m *Machine) loadOrder() {
	stage := m.scenario.Stages[m.stageIndex]
	if m.orderIndex >= len(stage.Orders) {
		m.current = NoCurrentOrder{}
		m.completeStage()
		return
	}
	m.current = ActiveOrder{
		Order:      stage.Orders[m.orderIndex],
		StageIndex: m.stageIndex,
		Number:     m.orderIndex + 1,
		StartedAt:  m.clock.Now(),
	}
}

func (m *Machine) completeStage() {
	m.state = StateStageComplete
	m.stagesCleared++
	if m.stageIndex+1 < len(m.scenario.Stages) {
		m.enterStage(m.stageIndex + 1)
		return
	}
	m.finalize(ReasonCompleted)
}

// currentNumber is the 1-based number of the current order, or of the next
// one when no order is current.
func (m *Machine) currentNumber() int {
	if a, ok := m.current.(ActiveOrder); ok {
		return a.Number
	}
	return m.orderIndex + 1
}

// finalize scores the session and reports it. It runs at most once.
func (m *Machine) finalize(reason EndReason) {
	if m.state == StateFinished {
		return
	}
	m.state = StateFinished
	m.current = NoCurrentOrder{}

	avg := DefaultAverageDuration
	if len(m.durations) > 0 {
		var sum time.Duration
		for _, d := range m.durations {
			sum += d
		}
		avg = sum / time.Duration(len(m.durations))
	}

	totalOrders := m.scenario.TotalOrders()
	comps := score.Calculate(score.Input{
		TotalOrders:        totalOrders,
		MistakeCount:       len(m.mistakes),
		AverageDuration:    avg,
		SatisfactionScores: m.satisfaction,
		Violations:         m.violations,
	})

	var elapsed time.Duration
	if !m.startedAt.IsZero() {
		elapsed = m.clock.Now().Sub(m.startedAt)
	}

	r := &Result{
		SessionID:           m.sessionID,
		DayID:               m.scenario.ID,
		Score:               comps,
		Mistakes:            append([]Mistake(nil), m.mistakes...),
		TotalOrders:         totalOrders,
		CompletedOrders:     m.completed,
		CorrectOrders:       m.correct,
		AverageTimePerOrder: avg,
		SatisfactionScores:  append([]float64(nil), m.satisfaction...),
		Violations:          m.violations,
		StagesCleared:       m.stagesCleared,
		RequiredScore:       m.scenario.RequiredScore,
		Passed:              comps.Total() >= m.scenario.RequiredScore,
		Reason:              reason,
		Elapsed:             elapsed,
	}
	m.result = r

	m.logger.Info("session finished",
		"reason", reason,
		"total", r.Total(),
		"grade", r.Grade(),
		"completed_orders", r.CompletedOrders,
		"mistakes", len(r.Mistakes),
	)

	m.report(r)
}

// report unlocks the scenario's content when the session passed and then
// records the result. Failures are kept for ReportErr and never undo the
// finalization.
func (m *Machine) report(r *Result) {
	if m.reporter == nil {
		return
	}
	ctx := context.Background()

	var errs []error
	if r.Passed {
		for _, id := range m.scenario.UnlockTips {
			if err := m.reporter.Unlock(ctx, id); err != nil {
				errs = append(errs, fmt.Errorf("unlock %s: %w", id, err))
			}
		}
	}
	if _, err := m.reporter.RecordResult(ctx, r.DayID, r.Total(), r.Grade()); err != nil {
		errs = append(errs, fmt.Errorf("record result: %w", err))
	}

	if len(errs) > 0 {
		m.reportErr = errors.Join(errs...)
		m.logger.Error("report session result", "error", m.reportErr)
	}
}
