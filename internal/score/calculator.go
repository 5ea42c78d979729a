// Package score turns session telemetry into a four-part score and a grade.
// Every function here is pure.
package score

import (
	"math"
	"time"
)

// Component ceilings.
const (
	MaxAccuracy     = 40.0
	MaxSpeed        = 30.0
	MaxSatisfaction = 20.0
	MaxCompliance   = 10.0
)

// Speed thresholds. Orders served within TargetTime earn full speed points,
// the score falls linearly until AcceptableTime and stays flat after it.
const (
	TargetTime     = 90 * time.Second
	AcceptableTime = 120 * time.Second
	speedFloor     = 15.0
)

// ViolationPenalty is the compliance deduction per procedural violation.
const ViolationPenalty = 2.0

// Components is the score broken down into its four bounded sub-scores.
type Components struct {
	Accuracy     float64 `json:"accuracy"`     // 0-40
	Speed        float64 `json:"speed"`        // 0-30
	Satisfaction float64 `json:"satisfaction"` // 0-20
	Compliance   float64 `json:"compliance"`   // 0-10
}

// Total returns the rounded sum of all components.
func (c Components) Total() int {
	return int(math.Round(c.Accuracy + c.Speed + c.Satisfaction + c.Compliance))
}

// Grade returns the grade for the rounded total.
func (c Components) Grade() Grade {
	return GradeFor(c.Total())
}

// Input carries the session totals the calculator needs.
type Input struct {
	TotalOrders        int
	MistakeCount       int
	AverageDuration    time.Duration
	SatisfactionScores []float64
	Violations         int
}

// Calculate computes all four components from session totals.
func Calculate(in Input) Components {
	return Components{
		Accuracy:     Accuracy(in.TotalOrders, in.MistakeCount),
		Speed:        Speed(in.AverageDuration),
		Satisfaction: Satisfaction(in.SatisfactionScores),
		Compliance:   Compliance(in.Violations),
	}
}

// Accuracy scores the share of orders without a mistake. The number of
// mistakes counts, not their deducted points. Zero orders scores zero.
func Accuracy(totalOrders, mistakeCount int) float64 {
	if totalOrders <= 0 {
		return 0
	}
	if mistakeCount < 0 {
		mistakeCount = 0
	}
	clean := totalOrders - mistakeCount
	if clean < 0 {
		clean = 0
	}
	return float64(clean) / float64(totalOrders) * MaxAccuracy
}

// Speed scores the average time spent per order.
func Speed(avg time.Duration) float64 {
	switch {
	case avg <= TargetTime:
		return MaxSpeed
	case avg <= AcceptableTime:
		window := (AcceptableTime - TargetTime).Seconds()
		ratio := (AcceptableTime - avg).Seconds() / window
		return speedFloor + ratio*(MaxSpeed-speedFloor)
	default:
		return speedFloor
	}
}

// Satisfaction scales the mean customer satisfaction (0-100) to 0-20.
// An empty list scores zero.
func Satisfaction(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	avg := sum / float64(len(scores))
	return clamp(avg/100*MaxSatisfaction, 0, MaxSatisfaction)
}

// Compliance deducts ViolationPenalty per violation, never below zero.
func Compliance(violations int) float64 {
	if violations < 0 {
		violations = 0
	}
	return math.Max(0, MaxCompliance-float64(violations)*ViolationPenalty)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
