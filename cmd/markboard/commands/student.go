package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/pkg/report"
)

func newStudentCommand(g *globalOptions) *cobra.Command {
	var (
		asJSON  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "student <usn>",
		Short: "Print one student's profile",
		Long:  "Print a student's scores, grade, class rank and per-subject comparison with the class average.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			ds, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			rep := report.New(ds, report.Options{TopN: cfg.Render.TopN, NoColor: noColor})

			if !asJSON {
				return rep.WriteStudentText(cmd.OutOrStdout(), args[0])
			}

			profile, err := rep.Profile(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			err = enc.Encode(profile)
			if err != nil {
				return fmt.Errorf("encode profile: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the profile as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable coloured grades")

	return cmd
}
