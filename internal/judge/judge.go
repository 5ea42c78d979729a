// Package judge decides whether a player's handling of an order was correct
// and how satisfied the customer is with it.
package judge

import (
	"sort"
	"strings"

	"github.com/abhisek/counterline/internal/scenario"
)

// Satisfaction values awarded per outcome.
const (
	CounterCorrect     = 90.0
	CounterIncorrect   = 50.0
	KitchenCorrect     = 95.0
	KitchenIncorrect   = 60.0
	AcknowledgedOrder  = 80.0
	friendlyAdjustment = 5.0
	hurriedAdjustment  = -5.0
	angryAdjustment    = -10.0
)

// Mode is how an order is answered.
type Mode int

const (
	ModeItems       Mode = iota // List the menu items handed over
	ModeSteps                   // List the assembly steps in order
	ModeAcknowledge             // Confirm the task was done
)

func (m Mode) String() string {
	switch m {
	case ModeItems:
		return "items"
	case ModeSteps:
		return "steps"
	case ModeAcknowledge:
		return "acknowledge"
	}
	return "unknown"
}

// ModeFor returns how order is answered in a stage of the given kind. Mixed
// stages treat orders with a build sheet as kitchen work.
func ModeFor(kind scenario.StageKind, order scenario.Order) Mode {
	switch kind {
	case scenario.KindKitchen:
		return ModeSteps
	case scenario.KindCleaning, scenario.KindComplaint:
		return ModeAcknowledge
	case scenario.KindMixed:
		if len(order.ExpectedSteps()) > 0 {
			return ModeSteps
		}
	}
	return ModeItems
}

// Answer is the player's normalized input for one order.
type Answer struct {
	Tokens    []string // Menu IDs or assembly steps, depending on the mode
	Confirmed []string // Option keys the player read back
}

// Verdict is the judged outcome of one order.
type Verdict struct {
	Correct      bool
	Satisfaction float64
	// Violation is set when a careful customer's required option was not
	// confirmed. The host reports it as a compliance violation.
	Violation bool
}

// Parse splits raw input into an Answer. Tokens are separated by commas,
// lower-cased, and inner spaces become underscores so "Bottom bun" matches
// "bottom_bun". A token starting with "+" confirms an option.
func Parse(input string) Answer {
	var a Answer
	for _, raw := range strings.Split(input, ",") {
		tok := normalize(raw)
		if tok == "" {
			continue
		}
		if strings.HasPrefix(tok, "+") {
			if key := strings.TrimPrefix(tok, "+"); key != "" {
				a.Confirmed = append(a.Confirmed, key)
			}
			continue
		}
		a.Tokens = append(a.Tokens, tok)
	}
	return a
}

// Evaluate judges ans against order.
func Evaluate(kind scenario.StageKind, order scenario.Order, ans Answer) Verdict {
	var v Verdict
	switch ModeFor(kind, order) {
	case ModeItems:
		v.Correct = sameMultiset(ans.Tokens, order.MenuIDs())
		v.Satisfaction = pick(v.Correct, CounterCorrect, CounterIncorrect)
	case ModeSteps:
		v.Correct = sameSequence(ans.Tokens, order.ExpectedSteps())
		v.Satisfaction = pick(v.Correct, KitchenCorrect, KitchenIncorrect)
	case ModeAcknowledge:
		v.Correct = true
		v.Satisfaction = AcknowledgedOrder
	}

	v.Satisfaction = clamp(v.Satisfaction + moodAdjustment(order.CustomerMood))
	if order.CustomerMood == scenario.MoodCareful {
		v.Violation = !confirmsAll(ans.Confirmed, order.RequiredOptions())
	}
	return v
}

// Expected renders the input that Evaluate judges correct with no violation.
func Expected(kind scenario.StageKind, order scenario.Order) string {
	var parts []string
	switch ModeFor(kind, order) {
	case ModeItems:
		parts = append(parts, order.MenuIDs()...)
	case ModeSteps:
		parts = append(parts, order.ExpectedSteps()...)
	case ModeAcknowledge:
		parts = append(parts, "done")
	}
	for _, key := range order.RequiredOptions() {
		parts = append(parts, "+"+key)
	}
	return strings.Join(parts, ", ")
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

func moodAdjustment(m scenario.CustomerMood) float64 {
	switch m {
	case scenario.MoodFriendly:
		return friendlyAdjustment
	case scenario.MoodHurried:
		return hurriedAdjustment
	case scenario.MoodAngry:
		return angryAdjustment
	}
	return 0
}

func sameMultiset(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	a := append([]string(nil), got...)
	b := append([]string(nil), want...)
	sort.Strings(a)
	sort.Strings(b)
	return sameSequence(a, b)
}

func sameSequence(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func confirmsAll(confirmed, required []string) bool {
	seen := make(map[string]bool, len(confirmed))
	for _, k := range confirmed {
		seen[k] = true
	}
	for _, k := range required {
		if !seen[k] {
			return false
		}
	}
	return true
}

func pick(ok bool, yes, no float64) float64 {
	if ok {
		return yes
	}
	return no
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
