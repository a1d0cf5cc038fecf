package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/pkg/report"
)

// ErrBinaryToTerminal is returned when an xlsx report has no --output file.
var ErrBinaryToTerminal = errors.New("xlsx output requires --output")

type summaryOptions struct {
	format  string
	output  string
	topN    int
	noColor bool
}

func newSummaryCommand(g *globalOptions) *cobra.Command {
	so := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the class report",
		Long: `Print the class overview, subject statistics, top students, electives and
subject correlations. Formats: text (tables), json, xlsx (requires --output).
With --output and no --format the format follows the file extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return so.run(cmd, g)
		},
	}

	cmd.Flags().StringVarP(&so.format, "format", "f", string(report.FormatText), "output format: text, json, xlsx")
	cmd.Flags().StringVarP(&so.output, "output", "o", "", "write the report to a file")
	cmd.Flags().IntVar(&so.topN, "top", 0, "number of top students; overrides render.top_n")
	cmd.Flags().BoolVar(&so.noColor, "no-color", false, "disable coloured grades")

	return cmd
}

func (so *summaryOptions) resolveFormat(cmd *cobra.Command) (report.Format, error) {
	if so.output != "" && !cmd.Flags().Changed("format") {
		return report.FormatForPath(so.output), nil
	}

	return report.ParseFormat(so.format)
}

func (so *summaryOptions) run(cmd *cobra.Command, g *globalOptions) error {
	format, err := so.resolveFormat(cmd)
	if err != nil {
		return err
	}

	if format == report.FormatXLSX && so.output == "" {
		return ErrBinaryToTerminal
	}

	cfg, err := g.load()
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	topN := cfg.Render.TopN
	if so.topN > 0 {
		topN = so.topN
	}

	rep := report.New(ds, report.Options{TopN: topN, NoColor: so.noColor})

	if so.output == "" {
		return rep.Write(cmd.OutOrStdout(), format)
	}

	err = rep.SaveToFile(so.output, format)
	if err != nil {
		return err
	}

	if !g.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s report to %s\n", format, so.output)
	}

	return nil
}
