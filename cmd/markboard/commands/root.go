// Package commands implements the markboard CLI command handlers.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/pkg/cohort"
	"github.com/Sumatoshi-tech/markboard/pkg/config"
	"github.com/Sumatoshi-tech/markboard/pkg/dashboard"
	"github.com/Sumatoshi-tech/markboard/pkg/plotpage"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dataset    string
	title      string
	verbose    bool
	quiet      bool
}

// NewRootCommand creates the markboard root command with all subcommands.
func NewRootCommand() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "markboard",
		Short: "Markboard - student exam-score analytics",
		Long: `Markboard loads a cohort's exam scores and turns them into statistics,
chart dashboards and terminal reports.

Commands:
  serve     Serve the dashboard and JSON API over HTTP
  render    Export the dashboard as static HTML pages
  summary   Print the class report (text, json or xlsx)
  student   Print one student's profile
  validate  Check a dataset file
  mcp       Expose analytics as MCP tools on stdio`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default: .markboard.yaml in . or $HOME)")
	flags.StringVarP(&g.dataset, "dataset", "d", "", "dataset file (.xlsx, .json, .yaml); overrides dataset.path")
	flags.StringVar(&g.title, "title", "", "cohort title; overrides dataset.title")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "suppress output")

	rootCmd.AddCommand(
		newServeCommand(g),
		newRenderCommand(g),
		newSummaryCommand(g),
		newStudentCommand(g),
		newValidateCommand(g),
		newMCPCommand(g),
		newVersionCommand(),
	)

	return rootCmd
}

// load reads the configuration and applies the persistent flag overrides.
func (g *globalOptions) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	if g.dataset != "" {
		cfg.Dataset.Path = g.dataset
	}

	if g.title != "" {
		cfg.Dataset.Title = g.title
	}

	switch {
	case g.verbose:
		cfg.Logging.Level = "debug"
	case g.quiet:
		cfg.Logging.Level = "error"
	}

	return cfg, nil
}

// logger builds a plain CLI logger writing to w.
func (g *globalOptions) logger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, err := config.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.JSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// loadDataset reads the configured dataset strictly: one-shot commands fail
// on a bad file instead of rendering an empty cohort.
func loadDataset(ctx context.Context, cfg *config.Config) (*cohort.Dataset, error) {
	ds, err := ingest.Load(ctx, cfg.Dataset.Path, cfg.Dataset.Title)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Dataset.Path, err)
	}

	return ds, nil
}

func renderOptions(cfg *config.Config) dashboard.Options {
	return dashboard.Options{
		Theme:       plotpage.ParseTheme(cfg.Render.Theme),
		TopN:        cfg.Render.TopN,
		BucketCount: cfg.Render.BucketCount,
		SearchLimit: cfg.Render.SearchLimit,
	}
}
