package session

import (
	"fmt"
	"time"

	"github.com/abhisek/counterline/internal/scenario"
)

// Status returns every observable value under one lock.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := Status{
		State:           m.state,
		StageIndex:      m.stageIndex,
		StageCount:      len(m.scenario.Stages),
		Current:         m.current,
		Remaining:       time.Duration(m.remaining) * time.Second,
		CompletedOrders: m.completed,
		MistakeCount:    len(m.mistakes),
		Violations:      m.violations,
	}
	if m.stageIndex < len(m.scenario.Stages) {
		st.Stage = m.scenario.Stages[m.stageIndex]
	}
	return st
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SessionID returns the identifier attached to events and logs.
func (m *Machine) SessionID() string {
	return m.sessionID
}

// Scenario returns the scenario being played.
func (m *Machine) Scenario() scenario.Scenario {
	return m.scenario
}

// CurrentStage returns the active stage. ok is false for a scenario without
// stages.
func (m *Machine) CurrentStage() (stage scenario.Stage, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stageIndex >= len(m.scenario.Stages) {
		return scenario.Stage{}, false
	}
	return m.scenario.Stages[m.stageIndex], true
}

func (m *Machine) StageIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stageIndex
}

// CurrentOrder returns the order waiting to be served, or NoCurrentOrder.
func (m *Machine) CurrentOrder() OrderSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// RemainingTime returns the seconds left on the stage countdown.
func (m *Machine) RemainingTime() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining
}

// FormattedRemaining renders the countdown as mm:ss.
func (m *Machine) FormattedRemaining() string {
	return FormatClock(m.RemainingTime())
}

func (m *Machine) CompletedOrders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

// Mistakes returns a copy of the mistakes recorded so far.
func (m *Machine) Mistakes() []Mistake {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Mistake(nil), m.mistakes...)
}

func (m *Machine) Finished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateFinished
}

// Result returns the final result. ok is false until the session finishes.
func (m *Machine) Result() (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.result == nil {
		return Result{}, false
	}
	return *m.result, true
}

// ReportErr returns the error from reporting the result, if any.
func (m *Machine) ReportErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportErr
}

// StageProgress is the fraction of the current stage's orders already served,
// in [0, 1]. A stage without orders counts as done.
func (m *Machine) StageProgress() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFinished || m.stageIndex >= len(m.scenario.Stages) {
		return 1
	}
	n := len(m.scenario.Stages[m.stageIndex].Orders)
	if n == 0 {
		return 1
	}
	return float64(m.orderIndex) / float64(n)
}

// FormatClock renders whole seconds as mm:ss. Negative values print as 00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
