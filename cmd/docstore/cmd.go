package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	_ "github.com/docstore/docstore-service/docs"
	"github.com/docstore/docstore-service/internal/app"
	"github.com/docstore/docstore-service/internal/config"
	"github.com/docstore/docstore-service/internal/pkg/logger"
	"github.com/docstore/docstore-service/internal/services/demo"
)

var (
	reset    bool
	database string
)

var rootCmd = &cobra.Command{
	Use:           "docstore",
	Short:         "docstore runs document store scenarios and serves the docstore API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the docstore HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Serve(ctx, cfg)
	},
}

func init() {
	for _, name := range demo.Scenarios().Names() {
		rootCmd.AddCommand(scenarioCommand(name))
	}
	rootCmd.AddCommand(serveCmd)

	rootCmd.PersistentFlags().StringVar(&database, "database", "", "database name (overrides MONGODB_DATABASE)")
}

func scenarioCommand(name string) *cobra.Command {
	c := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Run the %s scenario", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd.Context(), demo.Scenarios()[name])
		},
	}
	c.Flags().BoolVar(&reset, "reset", false, "drop the collection before running")
	return c
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetupWithWriter(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, os.Stderr)
	return cfg, nil
}

func runScenario(ctx context.Context, s *demo.Scenario) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	switch {
	case database != "":
		cfg.DocDB.Database = database
	case s.Database != "":
		cfg.DocDB.Database = s.Database
	}

	v, err := app.NewVault(cfg.Vault)
	if err != nil {
		return err
	}
	defer v.Close()

	client, err := app.ConnectDocStore(ctx, cfg.DocDB, v)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close document store")
		}
	}()

	runner := demo.NewRunner(os.Stdout)
	if reset {
		if err := runner.Reset(ctx, client, s); err != nil {
			return err
		}
	}
	_, err = runner.Run(ctx, client, s)
	return err
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
