// Package subject holds the static subject table, grade thresholds and the
// elective variant shared by every analytics layer.
package subject

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/alg/levenshtein"
)

// Key identifies one of the five subject slots.
type Key string

// Subject keys in canonical display order.
const (
	POME     Key = "pome"
	DBMS     Key = "dbms"
	AIML     Key = "aiml"
	TOC      Key = "toc"
	Elective Key = "elective"
)

// PassPercent is the minimum percentage of a subject's maximum marks that counts as a pass.
const PassPercent = 40.0

// ErrUnknownSubject is returned when a subject key is not in the table.
var ErrUnknownSubject = errors.New("unknown subject")

// Descriptor is the static metadata of one subject slot.
type Descriptor struct {
	Key       Key     `json:"key"`
	Name      string  `json:"name"`
	ShortName string  `json:"shortName"`
	MaxMarks  float64 `json:"maxMarks"`
	// Color is a CSS color for the HTML layer; ChartColor is the hex
	// equivalent used by chart series.
	Color      string `json:"color"`
	ChartColor string `json:"chartColor"`
}

// PassMark returns the raw score needed to pass the subject.
func (d Descriptor) PassMark() float64 {
	return d.MaxMarks * PassPercent / percentScale
}

// Normalize converts a raw score to a percentage of the subject maximum.
func (d Descriptor) Normalize(score float64) float64 {
	if d.MaxMarks <= 0 {
		return 0
	}

	return score / d.MaxMarks * percentScale
}

const percentScale = 100.0

var keys = []Key{POME, DBMS, AIML, TOC, Elective}

var descriptors = map[Key]Descriptor{
	POME: {
		Key: POME, Name: "Principles of Management", ShortName: "POME", MaxMarks: 100,
		Color: "oklch(0.7 0.15 280)", ChartColor: "#8c7ae6",
	},
	DBMS: {
		Key: DBMS, Name: "Database Management Systems", ShortName: "DBMS", MaxMarks: 150,
		Color: "oklch(0.65 0.18 200)", ChartColor: "#0ea5c6",
	},
	AIML: {
		Key: AIML, Name: "Artificial Intelligence & Machine Learning", ShortName: "AIML", MaxMarks: 150,
		Color: "oklch(0.7 0.2 145)", ChartColor: "#4cb84c",
	},
	TOC: {
		Key: TOC, Name: "Theory of Computation", ShortName: "TOC", MaxMarks: 100,
		Color: "oklch(0.75 0.18 45)", ChartColor: "#f2994a",
	},
	Elective: {
		Key: Elective, Name: "Elective", ShortName: "Elective", MaxMarks: 100,
		Color: "oklch(0.65 0.22 320)", ChartColor: "#cc5bd1",
	},
}

// Keys returns all subject keys in canonical order.
func Keys() []Key {
	out := make([]Key, len(keys))
	copy(out, keys)

	return out
}

// CoreKeys returns the four required subjects, excluding the elective slot.
func CoreKeys() []Key {
	return Keys()[:len(keys)-1]
}

// Lookup returns the descriptor for key.
func Lookup(key Key) (Descriptor, bool) {
	d, ok := descriptors[key]

	return d, ok
}

// MustLookup returns the descriptor for key and panics on an unknown key.
// Use only with the exported Key constants.
func MustLookup(key Key) Descriptor {
	d, ok := descriptors[key]
	if !ok {
		panic(fmt.Sprintf("subject: unknown key %q", key))
	}

	return d
}

// Descriptors returns all descriptors in canonical order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(keys))

	for _, k := range keys {
		out = append(out, descriptors[k])
	}

	return out
}

// suggestDistance bounds how far a mistyped subject may be from a hint.
const suggestDistance = 2

// ParseKey resolves a key or short name, case-insensitively. The error for a
// near miss names the closest key.
func ParseKey(s string) (Key, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	names := make([]string, 0, 2*len(keys))

	for _, k := range keys {
		if string(k) == needle || strings.ToLower(descriptors[k].ShortName) == needle {
			return k, nil
		}

		names = append(names, string(k))
	}

	return "", fmt.Errorf("%w: %q%s", ErrUnknownSubject, s, levenshtein.Hint(s, names, suggestDistance))
}

// TotalMaxMarks returns the sum of every subject's maximum marks.
func TotalMaxMarks() float64 {
	var total float64

	for _, d := range descriptors {
		total += d.MaxMarks
	}

	return total
}
