package cohort

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/subject"
)

// Validation errors returned by NewStudent and NewDataset.
var (
	ErrMissingID       = errors.New("student id is empty")
	ErrMissingName     = errors.New("student name is empty")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrDuplicateID     = errors.New("duplicate student id")
)

// Enrollment pairs the elective course with the score earned in it.
type Enrollment struct {
	Course subject.ElectiveCourse `json:"name"  yaml:"name"`
	Score  Score                  `json:"score" yaml:"score"`
}

// Record is the raw shape of one student row, as produced by a loader.
type Record struct {
	SlNo     int        `json:"slNo"     yaml:"slNo"`
	USN      string     `json:"usn"      yaml:"usn"`
	Name     string     `json:"name"     yaml:"name"`
	POME     Score      `json:"pome"     yaml:"pome"`
	DBMS     Score      `json:"dbms"     yaml:"dbms"`
	AIML     Score      `json:"aiml"     yaml:"aiml"`
	TOC      Score      `json:"toc"      yaml:"toc"`
	Elective Enrollment `json:"elective" yaml:"elective"`
}

// Student is a validated record with its derived totals. Derived fields are
// computed once by NewStudent and never change.
type Student struct {
	rec        Record
	total      float64
	percentage float64
	grade      subject.Grade
}

// NewStudent validates rec and derives total marks, percentage and grade.
func NewStudent(rec Record) (Student, error) {
	rec.USN = strings.TrimSpace(rec.USN)
	rec.Name = strings.TrimSpace(rec.Name)

	if rec.USN == "" {
		return Student{}, fmt.Errorf("row %d: %w", rec.SlNo, ErrMissingID)
	}

	if rec.Name == "" {
		return Student{}, fmt.Errorf("%s: %w", rec.USN, ErrMissingName)
	}

	if !rec.Elective.Course.Valid() {
		return Student{}, fmt.Errorf("%s: %w", rec.USN, subject.ErrUnknownElective)
	}

	var total float64

	for _, key := range subject.Keys() {
		score := rec.score(key)

		v, ok := score.Get()
		if !ok {
			continue
		}

		maxMarks := subject.MustLookup(key).MaxMarks
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > maxMarks {
			return Student{}, fmt.Errorf("%s: %s=%v (max %v): %w", rec.USN, key, v, maxMarks, ErrScoreOutOfRange)
		}

		total += v
	}

	percentage := total / subject.TotalMaxMarks() * percentScale

	return Student{
		rec:        rec,
		total:      total,
		percentage: percentage,
		grade:      subject.GradeFor(percentage),
	}, nil
}

// MustStudent is like NewStudent but panics on invalid input. Intended for
// fixtures and tests.
func MustStudent(rec Record) Student {
	s, err := NewStudent(rec)
	if err != nil {
		panic(err)
	}

	return s
}

const percentScale = 100.0

// SlNo returns the serial number.
func (s Student) SlNo() int { return s.rec.SlNo }

// USN returns the unique student identifier.
func (s Student) USN() string { return s.rec.USN }

// Name returns the display name.
func (s Student) Name() string { return s.rec.Name }

// Elective returns the elective enrollment.
func (s Student) Elective() Enrollment { return s.rec.Elective }

// Total returns the sum of present scores.
func (s Student) Total() float64 { return s.total }

// Percentage returns Total as a percentage of the maximum marks of all subjects.
func (s Student) Percentage() float64 { return s.percentage }

// Grade returns the letter grade for Percentage.
func (s Student) Grade() subject.Grade { return s.grade }

// Record returns a copy of the raw record.
func (s Student) Record() Record { return s.rec }

// Score returns the score for a subject key. The elective key returns the
// elective score regardless of course.
func (s Student) Score(key subject.Key) Score {
	return s.rec.score(key)
}

// Normalized returns the score for key as a percentage of the subject
// maximum, or 0 when absent.
func (s Student) Normalized(key subject.Key) float64 {
	v, ok := s.Score(key).Get()
	if !ok {
		return 0
	}

	return subject.MustLookup(key).Normalize(v)
}

type studentJSON struct {
	Record

	TotalMarks float64       `json:"totalMarks"`
	Percentage float64       `json:"percentage"`
	Grade      subject.Grade `json:"grade"`
}

// MarshalJSON encodes the record together with its derived fields.
func (s Student) MarshalJSON() ([]byte, error) {
	return json.Marshal(studentJSON{
		Record:     s.rec,
		TotalMarks: s.total,
		Percentage: s.percentage,
		Grade:      s.grade,
	})
}

func (r Record) score(key subject.Key) Score {
	switch key {
	case subject.POME:
		return r.POME
	case subject.DBMS:
		return r.DBMS
	case subject.AIML:
		return r.AIML
	case subject.TOC:
		return r.TOC
	case subject.Elective:
		return r.Elective.Score
	default:
		return Absent()
	}
}
