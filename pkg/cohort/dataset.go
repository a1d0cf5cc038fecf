// Package cohort models validated student records and the immutable dataset
// snapshot every analytics function reads from.
package cohort

import (
	"fmt"
	"slices"
	"strings"
)

// Dataset is a read-only snapshot of one cohort. It is safe for concurrent use.
type Dataset struct {
	title    string
	students []Student
	byUSN    map[string]int
}

// NewDataset builds a snapshot, rejecting duplicate student IDs.
// IDs are compared case-insensitively.
func NewDataset(title string, students []Student) (*Dataset, error) {
	byUSN := make(map[string]int, len(students))

	for i, s := range students {
		key := strings.ToLower(s.USN())
		if prev, dup := byUSN[key]; dup {
			return nil, fmt.Errorf("%s at rows %d and %d: %w", s.USN(), students[prev].SlNo(), s.SlNo(), ErrDuplicateID)
		}

		byUSN[key] = i
	}

	return &Dataset{
		title:    title,
		students: slices.Clone(students),
		byUSN:    byUSN,
	}, nil
}

// Empty returns a dataset with no students.
func Empty(title string) *Dataset {
	return &Dataset{title: title, byUSN: map[string]int{}}
}

// Title returns the cohort label, e.g. "5th Semester CSE".
func (d *Dataset) Title() string {
	return d.title
}

// Len returns the number of students.
func (d *Dataset) Len() int {
	return len(d.students)
}

// Students returns the students in load order. The returned slice is a copy.
func (d *Dataset) Students() []Student {
	return slices.Clone(d.students)
}

// Lookup finds a student by ID, case-insensitively.
func (d *Dataset) Lookup(usn string) (Student, bool) {
	i, ok := d.byUSN[strings.ToLower(strings.TrimSpace(usn))]
	if !ok {
		return Student{}, false
	}

	return d.students[i], true
}
