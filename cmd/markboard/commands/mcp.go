package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/internal/mcp"
	"github.com/Sumatoshi-tech/markboard/pkg/observability"
	"github.com/Sumatoshi-tech/markboard/pkg/version"
)

func newMCPCommand(g *globalOptions) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The MCP server exposes markboard analytics as tools that AI agents can
discover and invoke:
  - class_overview: class size, averages, grades, electives and top students
  - subject_stats: per-subject statistics, score buckets and leaders
  - student_lookup: a student profile by USN, or a name/USN search
  - correlation: Pearson correlation between subject pairs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}

			obsCfg := cfg.Observability(observability.ModeMCP, version.Version)
			obsCfg.LogJSON = true

			if debug {
				obsCfg.LogLevel = slog.LevelDebug
				obsCfg.DebugTrace = true
			}

			providers, err := observability.InitWithWriter(obsCfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			defer func() {
				shutdownErr := providers.Shutdown(context.Background())
				if shutdownErr != nil {
					providers.Logger.Warn("observability shutdown failed", "error", shutdownErr)
				}
			}()

			red, err := observability.NewREDMetrics(providers.Meter)
			if err != nil {
				return err
			}

			datasetMetrics, err := observability.NewDatasetMetrics(providers.Meter)
			if err != nil {
				return err
			}

			source := ingest.NewSource(cfg.Dataset.Path, cfg.Dataset.Title,
				ingest.WithLogger(providers.Logger),
				ingest.WithObserver(datasetMetrics.RecordLoad),
			)

			srv := mcp.NewServer(mcp.ServerDeps{
				Source:      source,
				Logger:      providers.Logger,
				Metrics:     red,
				Tracer:      providers.Tracer,
				TopN:        cfg.Render.TopN,
				SearchLimit: cfg.Render.SearchLimit,
			})

			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging to stderr")

	return cmd
}
