package dashboard

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func num(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func ordinalOf(rank, size int) string {
	if rank == 0 {
		return "unranked"
	}

	return fmt.Sprintf("%s of %s", humanize.Ordinal(rank), count(size))
}

func gradeBadge(g subject.Grade) template.HTML {
	return plotpage.NewBadge(g.String()).WithColor(g.ChartColor()).HTML()
}

func electiveBadge(e subject.ElectiveCourse) template.HTML {
	return plotpage.NewBadge(e.String()).WithColor(e.ChartColor()).HTML()
}

func esc(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}

func scoreCell(s cohort.Score) template.HTML {
	return esc(s.String())
}
