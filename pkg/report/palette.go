package report

import (
	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// palette colours terminal output. Colours are also suppressed when the
// package-level color.NoColor is set (NO_COLOR, non-tty output).
type palette struct {
	title   *color.Color
	good    *color.Color
	fair    *color.Color
	weak    *color.Color
	bad     *color.Color
	subdued *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:   color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		fair:    color.New(color.FgCyan),
		weak:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
		subdued: color.New(color.Faint),
	}

	if noColor {
		for _, c := range []*color.Color{p.title, p.good, p.fair, p.weak, p.bad, p.subdued} {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) grade(g subject.Grade) string {
	switch g {
	case subject.GradeO, subject.GradeAPlus:
		return p.good.Sprint(g.String())
	case subject.GradeA, subject.GradeBPlus:
		return p.fair.Sprint(g.String())
	case subject.GradeB, subject.GradeC:
		return p.weak.Sprint(g.String())
	case subject.GradeF:
		return p.bad.Sprint(g.String())
	default:
		return g.String()
	}
}

// passRate colours a percentage red below the pass line.
func (p palette) passRate(v float64, s string) string {
	if v < subject.PassPercent {
		return p.bad.Sprint(s)
	}

	return s
}
