// Package ingest loads cohort datasets from spreadsheets, JSON and YAML and
// memoizes the loaded snapshot for the lifetime of the process.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
)

// Sentinel errors returned by the loaders.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrSchemaViolation   = errors.New("dataset does not match schema")
	ErrNoSheet           = errors.New("workbook has no sheets")
)

// Format identifies a dataset encoding.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads the dataset at path, choosing the decoder by extension.
// title labels the cohort when the file does not carry one.
func Load(ctx context.Context, path, title string) (*cohort.Dataset, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	err = ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if format == FormatXLSX {
		return LoadXLSX(path, title)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	if format == FormatJSON {
		return ReadJSON(f, title)
	}

	return ReadYAML(f, title)
}
