// Package play hosts a running shift. It owns the one-second tea.Tick that
// drives the session countdown and turns typed answers into judged order
// outcomes.
package play

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/router"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/screen"
	"github.com/abhisek/counterline/internal/screens/summary"
	"github.com/abhisek/counterline/internal/session"
	"github.com/abhisek/counterline/internal/store"
	"github.com/abhisek/counterline/internal/ui/components"
	"github.com/abhisek/counterline/internal/ui/layout"
)

// Options configures a PlayScreen.
type Options struct {
	Scenario  scenario.Scenario
	Menu      []scenario.MenuItem
	TipTitles map[string]string // tip ID → title, for the summary
	Reporter  session.Reporter
	Events    store.EventRepo
	Logger    *slog.Logger
}

// feedback is the judged outcome of the last served order.
type feedback struct {
	order    scenario.Order
	verdict  judge.Verdict
	expected string
}

// PlayScreen implements screen.Screen for an active shift.
type PlayScreen struct {
	opts    Options
	machine *session.Machine
	logger  *slog.Logger
	input   components.TextInput

	showingQuitConfirm bool
	feedback           *feedback
	ended              bool
	errMsg             string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)
var _ screen.EscapeHandler = (*PlayScreen)(nil)

// New creates a PlayScreen for opts.Scenario. The session starts in Init.
func New(opts Options) *PlayScreen {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	mopts := []session.Option{session.WithLogger(opts.Logger)}
	if opts.Reporter != nil {
		mopts = append(mopts, session.WithReporter(opts.Reporter))
	}
	m := session.New(opts.Scenario, mopts...)
	return &PlayScreen{
		opts:    opts,
		machine: m,
		logger:  opts.Logger.With("session_id", m.SessionID(), "day", opts.Scenario.ID),
		input:   components.NewTextInput(placeholder(judge.ModeItems), 120),
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	if err := s.machine.Start(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if s.machine.State() != session.StateStageActive {
		s.errMsg = "this day has no stages to play"
		return nil
	}
	s.appendEvent(store.SessionEventData{
		SessionID:   s.machine.SessionID(),
		DayID:       s.opts.Scenario.ID,
		Action:      store.ActionStart,
		TotalOrders: s.opts.Scenario.TotalOrders(),
	})
	s.resetInput()
	return tea.Batch(tickCmd(), s.input.Init())
}

func (s *PlayScreen) Title() string {
	return s.opts.Scenario.Title
}

// HandlesEscape keeps Esc for the quit confirmation while the shift runs.
func (s *PlayScreen) HandlesEscape() bool {
	return s.errMsg == "" && !s.ended
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.showingQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Clock out"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "any key", Description: "Next customer"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Serve"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PlayScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.showingQuitConfirm:
		return renderQuitConfirm(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	}
	return s.renderOrderView(width, height)
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTimerTick()

	case sessionEndMsg:
		return s.handleSessionEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) acceptingInput() bool {
	return s.errMsg == "" && !s.ended && !s.showingQuitConfirm && s.feedback == nil
}

func (s *PlayScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if s.ended || s.machine.Finished() {
		return s, nil
	}
	if err := s.machine.Tick(); err != nil && !errors.Is(err, session.ErrFinished) {
		s.logger.Warn("tick", "error", err)
	}
	if s.machine.Finished() {
		return s, endCmd()
	}
	return s, tickCmd()
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.ended {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			if err := s.machine.Quit(); err != nil && !errors.Is(err, session.ErrFinished) {
				s.logger.Warn("quit", "error", err)
			}
			return s, endCmd()
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.feedback != nil {
		s.feedback = nil
		if s.machine.Finished() {
			return s, endCmd()
		}
		s.resetInput()
		return s, s.input.Init()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "enter":
		return s.submitAnswer()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submitAnswer judges the typed answer against the current order and
// reports the outcome to the machine.
func (s *PlayScreen) submitAnswer() (screen.Screen, tea.Cmd) {
	raw := s.input.Value()
	if raw == "" {
		return s, nil
	}
	active, ok := s.machine.CurrentOrder().(session.ActiveOrder)
	if !ok {
		return s, nil
	}
	stage, _ := s.machine.CurrentStage()

	v := judge.Evaluate(stage.Kind, active.Order, judge.Parse(raw))
	if v.Violation {
		if err := s.machine.RecordComplianceViolation(); err != nil {
			s.logger.Warn("record violation", "error", err)
		}
	}
	if err := s.machine.SubmitOrderOutcome(v.Correct, v.Satisfaction); err != nil {
		// The countdown may have finished the shift first.
		if s.machine.Finished() {
			return s, endCmd()
		}
		s.logger.Warn("submit order", "order", active.Order.ID, "error", err)
		return s, nil
	}

	s.input.Submit(v.Correct)
	s.feedback = &feedback{
		order:    active.Order,
		verdict:  v,
		expected: judge.Expected(stage.Kind, active.Order),
	}
	return s, nil
}

// handleSessionEnd records the end event and replaces this screen with the
// summary.
func (s *PlayScreen) handleSessionEnd() (screen.Screen, tea.Cmd) {
	if s.ended {
		return s, nil
	}
	res, ok := s.machine.Result()
	if !ok {
		return s, nil
	}
	s.ended = true

	s.appendEvent(store.SessionEventData{
		SessionID:       res.SessionID,
		DayID:           res.DayID,
		Action:          store.ActionEnd,
		CompletedOrders: res.CompletedOrders,
		TotalOrders:     res.TotalOrders,
		Mistakes:        len(res.Mistakes),
		Score:           res.Total(),
		Grade:           string(res.Grade()),
		Reason:          string(res.Reason),
	})

	var tips []string
	for _, id := range s.opts.Scenario.UnlockTips {
		if title, ok := s.opts.TipTitles[id]; ok {
			tips = append(tips, title)
		} else {
			tips = append(tips, id)
		}
	}
	sum := session.BuildSummary(res, s.opts.Scenario.Title, tips)
	next := summary.New(sum, s.machine.ReportErr())

	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *PlayScreen) appendEvent(data store.SessionEventData) {
	if s.opts.Events == nil {
		return
	}
	if err := s.opts.Events.AppendSessionEvent(context.Background(), data); err != nil {
		s.logger.Warn("record session event", "action", data.Action, "error", err)
	}
}

// resetInput prepares the input for the current order's answer mode.
func (s *PlayScreen) resetInput() {
	mode := judge.ModeItems
	if active, ok := s.machine.CurrentOrder().(session.ActiveOrder); ok {
		stage, _ := s.machine.CurrentStage()
		mode = judge.ModeFor(stage.Kind, active.Order)
	}
	s.input.Reset()
	s.input.Model.Placeholder = placeholder(mode)
}

func placeholder(mode judge.Mode) string {
	switch mode {
	case judge.ModeSteps:
		return "steps in order, e.g. bottom_bun, patty, cheese, top_bun"
	case judge.ModeAcknowledge:
		return "type done when finished"
	}
	return "menu ids, e.g. cheeseburger, fries, +no_pickles"
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func endCmd() tea.Cmd {
	return func() tea.Msg { return sessionEndMsg{} }
}
