package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/optimizeai/internal/config"
	"github.com/iudanet/optimizeai/internal/logging"
	"github.com/iudanet/optimizeai/internal/server/app"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "optimizeai-server",
		Short:         "Development API server for the OptimizeAI dashboard",
		Long:          "Serves the dashboard REST API on top of a local SQLite database.\nPassword reset tokens are written to the log instead of being emailed.",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadServer(configFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			srv, err := app.New(cmd.Context(), cfg, logger, Version)
			if err != nil {
				return err
			}

			return srv.Run(cmd.Context())
		},
	}

	root.Flags().StringVar(&configFile, "config", "", "path to YAML configuration file")
	root.Flags().String("addr", "", "listen address (default :8080)")
	root.Flags().String("db", "", "path to SQLite database (default optimizeai.db)")
	root.Flags().String("log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "OptimizeAI Server\n")
			_, _ = fmt.Fprintf(out, "Version:    %s\n", Version)
			_, _ = fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			_, _ = fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	})

	return root
}
