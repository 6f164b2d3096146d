package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fgeck/dgs-backup/internal/cli"
	"github.com/fgeck/dgs-backup/internal/config"
	"github.com/fgeck/dgs-backup/internal/logging"
	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/fgeck/dgs-backup/internal/services/runner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type app struct {
	defaults  models.DefaultConfig
	stdout    io.Writer
	stderr    io.Writer
	newLogger func(console io.Writer, facility string) *logging.Logger
	newRunner func(logger zerolog.Logger, out io.Writer) runner.Service
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	logger := a.newLogger(a.stderr, a.defaults.LogFacility)
	defer func() { _ = logger.Close() }()

	overrides, err := cli.Parse(args)
	if errors.Is(err, cli.ErrHelp) {
		cmd.SetOut(a.stdout)
		return cmd.Help()
	}
	if err != nil {
		logger.Error().Err(err).Msg("invalid command line")
		return err
	}

	resolver := config.NewResolver(logger.Logger)
	configFile := resolver.ConfigPath(a.defaults, overrides)

	doc, err := config.LoadFile(logger.Logger, configFile)
	if err != nil {
		logger.Error().Err(err).Str("file", configFile).Msg("failed to load config")
		return err
	}

	cfg, err := resolver.Resolve(a.defaults, overrides, doc)
	if err != nil {
		logger.Error().Err(err).Str("file", configFile).Msg("invalid configuration")
		return err
	}

	if cfg.LogFacility != a.defaults.LogFacility {
		_ = logger.Close()
		logger = a.newLogger(a.stderr, cfg.LogFacility)
	}

	logger.Info().
		Str("config", cfg.ConfigFile).
		Str("address", cfg.DeviceAddress).
		Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Warn().Str("signal", sig.String()).Msg("received signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := a.newRunner(logger.Logger, a.stdout).Run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("backup failed")
		return err
	}

	return nil
}
