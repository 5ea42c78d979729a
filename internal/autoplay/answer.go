package autoplay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abhisek/counterline/internal/judge"
	"github.com/abhisek/counterline/internal/scenario"
)

// Answerer produces the player's input for one order. It must return
// promptly once ctx is done.
type Answerer interface {
	Answer(ctx context.Context, kind scenario.StageKind, order scenario.Order) (string, error)
}

// Scripted answers every order with the input judged correct, after Delay.
// Orders listed in Fumble get an empty answer instead.
type Scripted struct {
	Delay  time.Duration
	Fumble map[string]bool
}

func (s Scripted) Answer(ctx context.Context, kind scenario.StageKind, order scenario.Order) (string, error) {
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	}
	if s.Fumble[order.ID] {
		return "", nil
	}
	return judge.Expected(kind, order), nil
}

// Lines prompts on w and reads one answer per line from r.
type Lines struct {
	w     io.Writer
	lines chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewLines starts reading r in the background. The reader goroutine exits
// when r reaches EOF.
func NewLines(r io.Reader, w io.Writer) *Lines {
	l := &Lines{w: w, lines: make(chan lineResult)}
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			l.lines <- lineResult{text: sc.Text()}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		l.lines <- lineResult{err: err}
		close(l.lines)
	}()
	return l
}

func (l *Lines) Answer(ctx context.Context, kind scenario.StageKind, order scenario.Order) (string, error) {
	fmt.Fprintf(l.w, "\n[%s] %s (%s): %s\n", kind, order.CustomerName, order.CustomerMood, order.RequestText)
	switch judge.ModeFor(kind, order) {
	case judge.ModeItems:
		fmt.Fprintln(l.w, "  enter menu ids separated by commas, +option to confirm an option")
	case judge.ModeSteps:
		fmt.Fprintln(l.w, "  enter assembly steps in order, separated by commas")
	case judge.ModeAcknowledge:
		fmt.Fprintln(l.w, "  press enter when done")
	}
	fmt.Fprint(l.w, "> ")

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}
