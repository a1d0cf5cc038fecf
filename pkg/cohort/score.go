package cohort

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Score is an optional exam score. The zero value is absent, meaning the
// student did not sit or was exempted from the exam.
type Score struct {
	value   float64
	present bool
}

// Present returns a score holding v.
func Present(v float64) Score {
	return Score{value: v, present: true}
}

// Absent returns a score with no value.
func Absent() Score {
	return Score{}
}

// Get returns the value and whether it is present.
func (s Score) Get() (float64, bool) {
	return s.value, s.present
}

// IsPresent reports whether the score holds a value.
func (s Score) IsPresent() bool {
	return s.present
}

// OrZero returns the value, or 0 when absent.
func (s Score) OrZero() float64 {
	if !s.present {
		return 0
	}

	return s.value
}

func (s Score) String() string {
	if !s.present {
		return "-"
	}

	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// MarshalJSON encodes an absent score as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}

	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as absent and a number as present.
func (s *Score) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Absent()

		return nil
	}

	var v float64

	err := json.Unmarshal(data, &v)
	if err != nil {
		return fmt.Errorf("decode score: %w", err)
	}

	*s = Present(v)

	return nil
}

// UnmarshalYAML decodes null or ~ as absent and a number as present.
func (s *Score) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*s = Absent()

		return nil
	}

	var v float64

	err := node.Decode(&v)
	if err != nil {
		return fmt.Errorf("decode score: %w", err)
	}

	*s = Present(v)

	return nil
}

// IsZero lets yaml omitempty treat absent scores as empty.
func (s Score) IsZero() bool {
	return !s.present
}
