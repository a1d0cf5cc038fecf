package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/markboard/internal/ingest"
	"github.com/Sumatoshi-tech/markboard/internal/server"
	"github.com/Sumatoshi-tech/markboard/pkg/observability"
	"github.com/Sumatoshi-tech/markboard/pkg/version"
)

type serveOptions struct {
	host    string
	port    int
	preload bool
}

func newServeCommand(g *globalOptions) *cobra.Command {
	so := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and JSON API over HTTP",
		Long: `Serve the dashboard pages, the JSON API, health probes and Prometheus
metrics. The dataset is loaded on first use and kept for the process lifetime.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return so.run(cmd, g)
		},
	}

	cmd.Flags().StringVar(&so.host, "host", "", "listen host; overrides server.host")
	cmd.Flags().IntVarP(&so.port, "port", "p", 0, "listen port; overrides server.port")
	cmd.Flags().BoolVar(&so.preload, "preload", true, "load the dataset before accepting requests")

	return cmd
}

func (so *serveOptions) run(cmd *cobra.Command, g *globalOptions) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	if so.host != "" {
		cfg.Server.Host = so.host
	}

	if so.port != 0 {
		cfg.Server.Port = so.port
	}

	err = cfg.Validate()
	if err != nil {
		return err
	}

	providers, err := observability.InitWithWriter(cfg.Observability(observability.ModeServe, version.Version), cmd.ErrOrStderr())
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

	srv := server.New(cfg.Server, source, server.Options{
		Render:         renderOptions(cfg),
		Logger:         providers.Logger,
		Tracer:         providers.Tracer,
		RED:            red,
		Metrics:        datasetMetrics,
		MetricsHandler: providers.MetricsHandler,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if so.preload {
		ds := source.Dataset(ctx)
		providers.Logger.Info("dataset ready", "path", source.Path(), "students", ds.Len())
	}

	return srv.Run(ctx)
}
