package subject

// Grade is a letter grade derived from a percentage.
type Grade string

// Grades from highest to lowest.
const (
	GradeO     Grade = "O"
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeF     Grade = "F"
)

type threshold struct {
	grade Grade
	min   float64
	color string
	hex   string
}

// thresholds are ordered by descending minimum; the last entry catches everything.
var thresholds = []threshold{
	{grade: GradeO, min: 90, color: "oklch(0.7 0.2 145)", hex: "#4cb84c"},
	{grade: GradeAPlus, min: 80, color: "oklch(0.65 0.18 180)", hex: "#14b3a0"},
	{grade: GradeA, min: 70, color: "oklch(0.65 0.18 200)", hex: "#0ea5c6"},
	{grade: GradeBPlus, min: 60, color: "oklch(0.7 0.15 250)", hex: "#5f9cf0"},
	{grade: GradeB, min: 50, color: "oklch(0.75 0.18 45)", hex: "#f2994a"},
	{grade: GradeC, min: 40, color: "oklch(0.7 0.2 60)", hex: "#e89a2a"},
	{grade: GradeF, min: 0, color: "oklch(0.65 0.2 25)", hex: "#e35d5d"},
}

// GradeFor maps a percentage to its letter grade. It is used for overall
// percentages and for normalized per-subject percentages alike.
func GradeFor(percentage float64) Grade {
	for _, t := range thresholds[:len(thresholds)-1] {
		if percentage >= t.min {
			return t.grade
		}
	}

	return GradeF
}

// Grades returns all grades in canonical order, highest first.
func Grades() []Grade {
	out := make([]Grade, 0, len(thresholds))

	for _, t := range thresholds {
		out = append(out, t.grade)
	}

	return out
}

// MinPercent returns the lowest percentage that earns g.
func (g Grade) MinPercent() float64 {
	if t, ok := g.lookup(); ok {
		return t.min
	}

	return 0
}

// Color returns the CSS color of g.
func (g Grade) Color() string {
	t, _ := g.lookup()

	return t.color
}

// ChartColor returns the hex color of g for chart series.
func (g Grade) ChartColor() string {
	t, _ := g.lookup()

	return t.hex
}

// Passing reports whether g is above the fail grade.
func (g Grade) Passing() bool {
	return g != GradeF
}

func (g Grade) String() string {
	return string(g)
}

func (g Grade) lookup() (threshold, bool) {
	for _, t := range thresholds {
		if t.grade == g {
			return t, true
		}
	}

	return threshold{}, false
}
