// Package main provides the CLI entrypoint for the resolver service.
// It wires the serve subcommand, loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"resolver/internal/config"
	"resolver/pkg/logger"
	"resolver/pkg/storage"
	"resolver/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getStore creates the metadata store from configuration and returns it along
// with a cleanup function. Without a database URL the Noop store stands in
// and the diagnostics endpoint reports the database as unavailable.
func getStore(ctx context.Context, cfg *config.Config) (storage.MetadataStore, func()) {
	if cfg.Database.URL == "" {
		return storage.Noop{}, func() {}
	}

	pgsql, err := postgres.New(ctx, postgres.Options{
		URL:  cfg.Database.URL,
		Name: cfg.Database.Name,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "resolver",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
