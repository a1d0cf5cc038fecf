package analytics

import (
	"slices"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// whiskerIQRFactor is the Tukey fence multiplier.
const whiskerIQRFactor = 1.5

// BoxPlot is the five-number summary of one subject plus Tukey outliers.
// Min and Max are the whisker ends: the extreme scores inside the fences.
type BoxPlot struct {
	Subject  subject.Key `json:"subject"`
	Label    string      `json:"label"`
	Min      float64     `json:"min"`
	Q1       float64     `json:"q1"`
	Median   float64     `json:"median"`
	Q3       float64     `json:"q3"`
	Max      float64     `json:"max"`
	Outliers []float64   `json:"outliers"`
}

// BoxPlotFor computes the box plot of raw scores for key.
func BoxPlotFor(students []cohort.Student, key subject.Key) BoxPlot {
	scores := SubjectScores(students, key)
	slices.Sort(scores)

	q1 := stats.Percentile(scores, stats.PercentileQ1)
	q3 := stats.Percentile(scores, stats.PercentileQ3)
	iqr := q3 - q1
	lower := q1 - whiskerIQRFactor*iqr
	upper := q3 + whiskerIQRFactor*iqr

	outliers := []float64{}
	inside := make([]float64, 0, len(scores))

	for _, s := range scores {
		if s < lower || s > upper {
			outliers = append(outliers, s)

			continue
		}

		inside = append(inside, s)
	}

	box := BoxPlot{
		Subject:  key,
		Label:    subject.MustLookup(key).ShortName,
		Min:      q1,
		Q1:       q1,
		Median:   stats.Median(scores),
		Q3:       q3,
		Max:      q3,
		Outliers: outliers,
	}

	if len(inside) > 0 {
		box.Min = inside[0]
		box.Max = inside[len(inside)-1]
	}

	return box
}

// BoxPlots returns BoxPlotFor every subject in canonical order.
func BoxPlots(students []cohort.Student) []BoxPlot {
	out := make([]BoxPlot, 0, len(subject.Keys()))

	for _, key := range subject.Keys() {
		out = append(out, BoxPlotFor(students, key))
	}

	return out
}
