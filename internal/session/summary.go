package session

import (
	"time"

	"github.com/abhisek/counterline/internal/score"
)

// Summary holds the data displayed on the summary screen and printed by the
// headless runner.
type Summary struct {
	DayID           string
	Title           string
	Reason          EndReason
	Duration        time.Duration
	TotalOrders     int
	CompletedOrders int
	CorrectOrders   int
	Score           score.Components
	Total           int
	Grade           score.Grade
	RequiredScore   int
	Passed          bool
	AverageTime     time.Duration
	Mistakes        []Mistake
	DeductedPoints  int
	UnlockedTips    []string
}

// BuildSummary creates a Summary from a finished session's result. title is
// the scenario title and tips the content the scenario unlocks on a pass.
func BuildSummary(r Result, title string, tips []string) *Summary {
	var unlocked []string
	if r.Passed {
		unlocked = append(unlocked, tips...)
	}

	return &Summary{
		DayID:           r.DayID,
		Title:           title,
		Reason:          r.Reason,
		Duration:        r.Elapsed,
		TotalOrders:     r.TotalOrders,
		CompletedOrders: r.CompletedOrders,
		CorrectOrders:   r.CorrectOrders,
		Score:           r.Score,
		Total:           r.Total(),
		Grade:           r.Grade(),
		RequiredScore:   r.RequiredScore,
		Passed:          r.Passed,
		AverageTime:     r.AverageTimePerOrder,
		Mistakes:        r.Mistakes,
		DeductedPoints:  r.DeductedPoints(),
		UnlockedTips:    unlocked,
	}
}
