// Package runner orchestrates a backup run against one switch.
package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/fgeck/dgs-backup/internal/services/credential"
	"github.com/fgeck/dgs-backup/internal/services/login"
	"github.com/rs/zerolog"
)

// Service defines the interface for the backup runner.
type Service interface {
	Run(ctx context.Context, cfg models.ResolvedConfig) error
}

// Executor performs the backup over an established session.
type Executor interface {
	Execute(ctx context.Context, cfg models.ResolvedConfig, session *login.Session) error
}

// Impl implements the runner Service interface.
type Impl struct {
	loginSvc login.Service
	executor Executor
	logger   zerolog.Logger
}

// New creates a new runner service. Backup filenames are printed to out.
func New(logger zerolog.Logger, out io.Writer) *Impl {
	return &Impl{
		loginSvc: login.New(logger),
		executor: NewTargetExecutor(logger, out),
		logger:   logger,
	}
}

// NewWithServices creates a new runner service with custom services (for testing).
func NewWithServices(logger zerolog.Logger, loginSvc login.Service, executor Executor) *Impl {
	return &Impl{
		loginSvc: loginSvc,
		executor: executor,
		logger:   logger,
	}
}

// Run logs in to the switch and hands the session to the executor. The
// session is closed on every path.
func (s *Impl) Run(ctx context.Context, cfg models.ResolvedConfig) error {
	startTime := time.Now()

	s.logger.Info().
		Str("address", cfg.DeviceAddress).
		Str("backup_directory", cfg.BackupDirectory).
		Msg("starting backup run")

	session, err := s.loginSvc.Login(ctx, cfg, credential.Hash(cfg.Password))
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to discard session")
		}
	}()

	if err := s.executor.Execute(ctx, cfg, session); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	s.logger.Info().
		Dur("duration", time.Since(startTime)).
		Msg("backup run completed successfully")

	return nil
}

// Targets returns the files a backup of cfg's switch produces.
func Targets(cfg models.ResolvedConfig) []models.BackupTarget {
	targets := []models.BackupTarget{{
		Kind: "config",
		Path: filepath.Join(cfg.BackupDirectory, cfg.DeviceAddress+"-config.cfg"),
	}}
	if cfg.BackupFirmware {
		targets = append(targets, models.BackupTarget{
			Kind: "firmware",
			Path: filepath.Join(cfg.BackupDirectory, cfg.DeviceAddress+"-firmware.hex"),
		})
	}
	return targets
}

// TargetExecutor reports the backup targets for a session. Fetching the
// content from the switch is done by a separate stage.
type TargetExecutor struct {
	logger zerolog.Logger
	out    io.Writer
}

// NewTargetExecutor creates an executor that prints filenames to out when
// the run asks for them.
func NewTargetExecutor(logger zerolog.Logger, out io.Writer) *TargetExecutor {
	return &TargetExecutor{logger: logger, out: out}
}

// Execute implements Executor.
func (e *TargetExecutor) Execute(_ context.Context, cfg models.ResolvedConfig, session *login.Session) error {
	e.logger.Debug().
		Str("cookie_file", session.CookieFile()).
		Int("cookies", len(session.Cookies())).
		Msg("session ready for backup")

	for _, t := range Targets(cfg) {
		e.logger.Info().
			Str("kind", t.Kind).
			Str("path", t.Path).
			Bool("save_password", cfg.SavePasswordInBackup).
			Msg("backup target")

		if cfg.OutputFilenames {
			if _, err := fmt.Fprintln(e.out, t.Path); err != nil {
				return fmt.Errorf("failed to write filename: %w", err)
			}
		}
	}
	return nil
}
