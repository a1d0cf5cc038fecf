package views

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/stats"
	"github.com/Sumatoshi-tech/markboard/pkg/analytics"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// DefaultBucketCount is the histogram resolution used by the dashboard.
const DefaultBucketCount = 10

// Bucket is one histogram bin.
type Bucket struct {
	Range      string  `json:"range"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// DistributionBuckets splits [0, maxMarks] into count equal-width bins and
// counts scores per bin. Bins are half-open [start, end) except the last,
// which is closed so that a score equal to maxMarks is counted. Scores outside
// [0, maxMarks] and non-finite scores are not counted. A non-positive count or maxMarks yields nil.
func DistributionBuckets(scores []float64, maxMarks float64, count int) []Bucket {
	if count <= 0 || maxMarks <= 0 {
		return nil
	}

	width := maxMarks / float64(count)
	buckets := make([]Bucket, count)

	for i := range buckets {
		start := float64(i) * width
		end := float64(i+1) * width

		buckets[i] = Bucket{
			Range: formatBound(start) + "-" + formatBound(end),
			Start: start,
			End:   end,
		}
	}

	for _, s := range scores {
		if math.IsNaN(s) || s < 0 || s > maxMarks {
			continue
		}

		idx := min(int(s/width), count-1)
		if idx > 0 && s < buckets[idx].Start {
			idx--
		} else if idx < count-1 && s >= buckets[idx].End {
			idx++
		}

		buckets[idx].Count++
	}

	for i := range buckets {
		buckets[i].Percentage = stats.Ratio(buckets[i].Count, len(scores))
	}

	return buckets
}

// SubjectBuckets is DistributionBuckets over one subject's present scores.
func SubjectBuckets(students []cohort.Student, key subject.Key, count int) []Bucket {
	return DistributionBuckets(analytics.SubjectScores(students, key), subject.MustLookup(key).MaxMarks, count)
}

func formatBound(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return fmt.Sprintf("%g", stats.Round(v, 2))
}
