package subject

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownElective is returned when an elective name is not one of the offered courses.
var ErrUnknownElective = errors.New("unknown elective")

// ElectiveCourse is the closed set of courses that can fill the elective slot.
type ElectiveCourse int

// Offered electives.
const (
	CloudComputing ElectiveCourse = iota + 1
	NLP
	QuantumComputing
)

// Electives returns every offered course in display order.
func Electives() []ElectiveCourse {
	return []ElectiveCourse{CloudComputing, NLP, QuantumComputing}
}

// ParseElective resolves a course display name, case-insensitively.
func ParseElective(name string) (ElectiveCourse, error) {
	needle := strings.TrimSpace(name)

	for _, e := range Electives() {
		if strings.EqualFold(e.String(), needle) {
			return e, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownElective, name)
}

// Valid reports whether e is one of the offered courses.
func (e ElectiveCourse) Valid() bool {
	return e >= CloudComputing && e <= QuantumComputing
}

func (e ElectiveCourse) String() string {
	switch e {
	case CloudComputing:
		return "Cloud Computing"
	case NLP:
		return "NLP"
	case QuantumComputing:
		return "Quantum Computing"
	default:
		return fmt.Sprintf("ElectiveCourse(%d)", int(e))
	}
}

// Color returns the CSS color of the course.
func (e ElectiveCourse) Color() string {
	switch e {
	case CloudComputing:
		return "oklch(0.65 0.18 200)"
	case NLP:
		return "oklch(0.7 0.15 280)"
	case QuantumComputing:
		return "oklch(0.65 0.22 320)"
	default:
		return ""
	}
}

// ChartColor returns the hex color of the course for chart series.
func (e ElectiveCourse) ChartColor() string {
	switch e {
	case CloudComputing:
		return "#0ea5c6"
	case NLP:
		return "#8c7ae6"
	case QuantumComputing:
		return "#cc5bd1"
	default:
		return ""
	}
}

// MarshalText encodes the course by display name, so courses serialize as
// strings both as values and as map keys.
func (e ElectiveCourse) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElective, int(e))
	}

	return []byte(e.String()), nil
}

// UnmarshalText decodes a course display name.
func (e *ElectiveCourse) UnmarshalText(text []byte) error {
	parsed, err := ParseElective(string(text))
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}

// UnmarshalYAML decodes a course display name from a YAML scalar.
func (e *ElectiveCourse) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("decode elective: line %d: expected a scalar", node.Line)
	}

	parsed, err := ParseElective(node.Value)
	if err != nil {
		return err
	}

	*e = parsed

	return nil
}
