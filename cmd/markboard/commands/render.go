package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/pkg/dashboard"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
)

const (
	renderOutputFlag  = "output"
	renderOutputShort = "o"
	renderOutputUsage = "output directory for HTML files; overrides render.output_dir"
	renderThemeUsage  = "page theme (light or dark); overrides render.theme"
)

func newRenderCommand(g *globalOptions) *cobra.Command {
	var outputDir, theme string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the dashboard as static HTML pages",
		Long: `Render every dashboard page to <output>/<page>.html plus an index.html
landing page. The student page is rendered without a selection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			if outputDir != "" {
				cfg.Render.OutputDir = outputDir
			}

			if theme != "" {
				cfg.Render.Theme = theme
			}

			err = cfg.Validate()
			if err != nil {
				return err
			}

			logger := g.logger(cfg, cmd.ErrOrStderr())

			ds, err := loadDataset(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			nav := plotpage.StaticLinks(dashboard.Pages())
			opts := renderOptions(cfg)
			opts.Nav = nav

			renderer := &plotpage.MultiPageRenderer{
				OutputDir: cfg.Render.OutputDir,
				Title:     ds.Title(),
				Theme:     opts.Theme,
				Nav:       nav,
			}

			err = dashboard.New(ds, opts).RenderAll(renderer)
			if err != nil {
				return err
			}

			logger.Debug("dashboard rendered", "dir", cfg.Render.OutputDir, "students", ds.Len())

			if !g.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d pages for %s students to %s\n",
					len(dashboard.Pages())+1, humanize.Comma(int64(ds.Len())), cfg.Render.OutputDir)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, renderOutputFlag, renderOutputShort, "", renderOutputUsage)
	cmd.Flags().StringVar(&theme, "theme", "", renderThemeUsage)

	return cmd
}
