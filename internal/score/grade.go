package score

// Grade is the letter classification derived from a total score.
type Grade string

const (
	GradeS          Grade = "S"
	GradeA          Grade = "A"
	GradeB          Grade = "B"
	GradeC          Grade = "C"
	GradeD          Grade = "D"
	GradeIncomplete Grade = "Incomplete" // No attempt recorded yet; never produced by GradeFor.
)

// PassingScore is the minimum total that marks a day as completed.
const PassingScore = 60

// GradeFor maps a total score to its grade.
func GradeFor(total int) Grade {
	switch {
	case total >= 95:
		return GradeS
	case total >= 85:
		return GradeA
	case total >= 70:
		return GradeB
	case total >= PassingScore:
		return GradeC
	default:
		return GradeD
	}
}

// ParseGrade converts a stored grade string back to a Grade.
// Unknown values map to GradeIncomplete.
func ParseGrade(s string) Grade {
	switch g := Grade(s); g {
	case GradeS, GradeA, GradeB, GradeC, GradeD:
		return g
	}
	return GradeIncomplete
}

// Rank orders grades from D (1) to S (5); Incomplete ranks 0.
func (g Grade) Rank() int {
	switch g {
	case GradeS:
		return 5
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	}
	return 0
}
