package main

import (
	"fmt"
	"os"

	"github.com/edec-tools/peppol-reporting/pkg/server"
	"github.com/edec-tools/peppol-reporting/pkg/services/config"
	"github.com/edec-tools/peppol-reporting/pkg/services/reports"
	"github.com/edec-tools/peppol-reporting/pkg/store/backend"
	"github.com/edec-tools/peppol-reporting/pkg/store/memory"
	"github.com/edec-tools/peppol-reporting/pkg/store/redisdb"
	"github.com/edec-tools/peppol-reporting/pkg/store/sqldb"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	propsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the Peppol reporting web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the reporting config file")
	rootCmd.Flags().StringVar(&propsPath, "properties", "",
		"Path to an application.properties overrides file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if propsPath != "" {
		if err := config.ApplyProperties(cfg, propsPath); err != nil {
			return err
		}
	}

	// Deployment-specific values may come from the environment.
	if addr := os.Getenv("PEPPOL_REPORTING_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if password := os.Getenv("PEPPOL_REPORTING_REDIS_PASSWORD"); password != "" {
		cfg.Backend.Redis.Password = password
	}

	registry, err := backend.NewRegistry(map[string]backend.Factory{
		"memory":   memory.Factory,
		"sqlite":   sqldb.SQLiteFactory,
		"postgres": sqldb.PostgresFactory,
		"redis":    redisdb.Factory,
	})
	if err != nil {
		return fmt.Errorf("failed to create backend registry: %w", err)
	}

	store, err := registry.Open(cfg.Backend)
	if err != nil {
		return fmt.Errorf("failed to open %q backend: %w", cfg.Backend.Type, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close storage backend")
		}
	}()

	generator, err := reports.NewGenerator(reports.Config{
		Store:    store,
		Reporter: cfg.ReporterID(),
	})
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	logger.Info().
		Str("backend", cfg.Backend.Type).
		Str("reporter", cfg.Reporter.ID).
		Msg("reporting backend ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Store:     store,
			Generator: generator,
		},
	})

	return api.Start()
}
