package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
)

// ErrInvalidDataset is returned when at least one dataset fails validation.
var ErrInvalidDataset = errors.New("dataset validation failed")

func newValidateCommand(g *globalOptions) *cobra.Command {
	var printSchema bool

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check dataset files",
		Long: `Load each dataset file the way serve does and report whether it is usable.
JSON and YAML files are checked against the embedded schema; spreadsheets are
checked row by row. Without arguments the configured dataset is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printSchema {
				_, err := cmd.OutOrStdout().Write(ingest.Schema())
				if err != nil {
					return fmt.Errorf("write schema: %w", err)
				}

				return nil
			}

			cfg, err := g.load()
			if err != nil {
				return err
			}

			paths := args
			if len(paths) == 0 {
				paths = []string{cfg.Dataset.Path}
			}

			failed := 0

			for _, path := range paths {
				if !validateFile(cmd, path, cfg.Dataset.Title, g.quiet) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidDataset, failed, len(paths))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&printSchema, "schema", false, "print the JSON dataset schema and exit")

	return cmd
}

func validateFile(cmd *cobra.Command, path, title string, quiet bool) bool {
	out := cmd.OutOrStdout()

	ds, err := ingest.Load(cmd.Context(), path, title)
	if err != nil {
		printStatus(out, color.FgRed, "FAIL", path, err.Error())

		return false
	}

	if !quiet {
		printStatus(out, color.FgGreen, "OK", path,
			fmt.Sprintf("%s students", humanize.Comma(int64(ds.Len()))))
	}

	return true
}

func printStatus(w io.Writer, attr color.Attribute, status, path, detail string) {
	fmt.Fprintf(w, "%s %s: %s\n", color.New(attr, color.Bold).Sprint(status), path, detail)
}
