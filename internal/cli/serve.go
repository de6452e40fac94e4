package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/color-tools-mcp/internal/config"
	"github.com/ironsheep/color-tools-mcp/internal/logging"
	"github.com/ironsheep/color-tools-mcp/internal/server"
)

// serveOptions are the flags that override environment configuration.
type serveOptions struct {
	logLevel    string
	metricsAddr string
	workspace   string
}

func (o *serveOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides "+config.EnvLogLevel)
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address; overrides "+config.EnvMetricsAddr)
	cmd.Flags().StringVar(&o.workspace, "workspace", "", "workspace name; overrides "+config.EnvWorkspaceName)
}

// apply copies flags the user actually set onto cfg.
func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr = o.metricsAddr
	}
	if cmd.Flags().Changed("workspace") {
		cfg.WorkspaceName = o.workspace
	}
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stdio MCP server (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts.apply(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := server.NewMetrics()
	if cfg.MetricsAddr != "" {
		ms := server.NewMetricsServer(cfg.MetricsAddr, metrics, logger)
		ms.Start()
		defer func() {
			if err := ms.Shutdown(context.Background()); err != nil {
				logger.Warn("metrics shutdown", "error", err)
			}
		}()
	}

	srv := server.New(cfg, logger, metrics)
	return srv.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
