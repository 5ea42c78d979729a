// Package autoplay runs a session without the TUI. A time.Ticker goroutine
// feeds the machine's countdown while an Answerer serves the orders.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/scenario"
	"github.com/abhisek/counterline/internal/session"
	"github.com/abhisek/counterline/internal/store"
)

// Options configures a Runner.
type Options struct {
	// Interval between countdown ticks. One tick is one second of stage
	// time, so a shorter interval compresses the run.
	Interval time.Duration
	Answerer Answerer
	Reporter session.Reporter
	Events   store.EventRepo
	Clock    session.Clock
	Logger   *slog.Logger
	// OnServed, if set, is called after each order is judged.
	OnServed func(order scenario.Order, v judge.Verdict)
}

// Runner plays one scenario headlessly.
type Runner struct {
	opts Options
}

// New creates a Runner. A zero Interval means one second.
func New(opts Options) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Answerer == nil {
		opts.Answerer = Scripted{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{opts: opts}
}

// Run plays sc to the end and returns the result. Cancelling ctx quits the
// session; the partial result is still returned.
func (r *Runner) Run(ctx context.Context, sc scenario.Scenario) (session.Result, error) {
	if len(sc.Stages) == 0 {
		return session.Result{}, fmt.Errorf("run %s: scenario has no stages", sc.ID)
	}

	mopts := []session.Option{session.WithLogger(r.opts.Logger)}
	if r.opts.Reporter != nil {
		mopts = append(mopts, session.WithReporter(r.opts.Reporter))
	}
	if r.opts.Clock != nil {
		mopts = append(mopts, session.WithClock(r.opts.Clock))
	}
	m := session.New(sc, mopts...)
	logger := r.opts.Logger.With("session_id", m.SessionID(), "day", sc.ID)

	if err := m.Start(); err != nil {
		return session.Result{}, fmt.Errorf("start session: %w", err)
	}
	r.appendEvent(ctx, logger, store.SessionEventData{
		SessionID:   m.SessionID(),
		DayID:       sc.ID,
		Action:      store.ActionStart,
		TotalOrders: sc.TotalOrders(),
	})

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		r.tickLoop(runCtx, m)
	}()

	r.serve(runCtx, m, logger)

	if !m.Finished() {
		if err := m.Quit(); err != nil && !errors.Is(err, session.ErrFinished) {
			logger.Warn("quit session", "error", err)
		}
	}
	cancel()
	wg.Wait()

	res, ok := m.Result()
	if !ok {
		return session.Result{}, fmt.Errorf("run %s: session did not finish", sc.ID)
	}
	// The session is over, so the end event is recorded even when ctx was
	// cancelled.
	r.appendEvent(context.WithoutCancel(ctx), logger, store.SessionEventData{
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
	return res, m.ReportErr()
}

// tickLoop calls Tick once per interval until the session finishes or ctx
// is done.
func (r *Runner) tickLoop(ctx context.Context, m *session.Machine) {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Tick(); err != nil || m.Finished() {
				return
			}
		}
	}
}

// serve answers orders until the session finishes or ctx is done.
func (r *Runner) serve(ctx context.Context, m *session.Machine, logger *slog.Logger) {
	for {
		active, ok := m.CurrentOrder().(session.ActiveOrder)
		if !ok {
			return
		}
		stage, _ := m.CurrentStage()

		input, err := r.opts.Answerer.Answer(ctx, stage.Kind, active.Order)
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("answer order", "order", active.Order.ID, "error", err)
			}
			return
		}

		v := judge.Evaluate(stage.Kind, active.Order, judge.Parse(input))
		if v.Violation {
			if err := m.RecordComplianceViolation(); err != nil {
				return
			}
		}
		if err := m.SubmitOrderOutcome(v.Correct, v.Satisfaction); err != nil {
			return
		}
		if r.opts.OnServed != nil {
			r.opts.OnServed(active.Order, v)
		}
	}
}

func (r *Runner) appendEvent(ctx context.Context, logger *slog.Logger, data store.SessionEventData) {
	if r.opts.Events == nil {
		return
	}
	if err := r.opts.Events.AppendSessionEvent(ctx, data); err != nil {
		logger.Warn("record session event", "action", data.Action, "error", err)
	}
}
