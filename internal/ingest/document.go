package ingest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
)

//go:embed schema/students.schema.json
var schemaJSON []byte

// Schema returns the JSON schema of the document format.
func Schema() []byte {
	return schemaJSON
}

// Document is the JSON and YAML encoding of a dataset.
type Document struct {
	Title    string          `json:"title,omitempty"    yaml:"title,omitempty"`
	Students []cohort.Record `json:"students"           yaml:"students"`
}

// Issue is one schema violation.
type Issue struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (i Issue) String() string {
	return i.Field + ": " + i.Description
}

// Validate checks a decoded document tree against the schema and returns
// every violation found.
func Validate(doc any) ([]Issue, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	issues := make([]Issue, 0, len(result.Errors()))

	for _, verr := range result.Errors() {
		issues = append(issues, Issue{Field: verr.Field(), Description: verr.Description()})
	}

	return issues, nil
}

// ReadJSON decodes and validates a JSON document.
func ReadJSON(r io.Reader, title string) (*cohort.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var tree any

	err = json.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	err = checkSchema(tree)
	if err != nil {
		return nil, err
	}

	var doc Document

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	return doc.dataset(title)
}

// ReadYAML decodes and validates a YAML document.
func ReadYAML(r io.Reader, title string) (*cohort.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var tree any

	err = yaml.Unmarshal(data, &tree)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	err = checkSchema(tree)
	if err != nil {
		return nil, err
	}

	var doc Document

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	return doc.dataset(title)
}

// WriteJSON encodes ds as an indented document.
func WriteJSON(w io.Writer, ds *cohort.Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(NewDocument(ds))
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	return nil
}

// NewDocument converts a dataset back to its document form.
func NewDocument(ds *cohort.Dataset) Document {
	students := ds.Students()
	doc := Document{Title: ds.Title(), Students: make([]cohort.Record, 0, len(students))}

	for _, s := range students {
		doc.Students = append(doc.Students, s.Record())
	}

	return doc
}

func checkSchema(tree any) error {
	issues, err := Validate(tree)
	if err != nil {
		return err
	}

	if len(issues) == 0 {
		return nil
	}

	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(parts, "; "))
}

func (d Document) dataset(fallbackTitle string) (*cohort.Dataset, error) {
	students := make([]cohort.Student, 0, len(d.Students))

	for _, rec := range d.Students {
		s, err := cohort.NewStudent(rec)
		if err != nil {
			return nil, err
		}

		students = append(students, s)
	}

	title := d.Title
	if title == "" {
		title = fallbackTitle
	}

	return cohort.NewDataset(title, students)
}
