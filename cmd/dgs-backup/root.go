package main

import (
	"io"
	"os"

	"github.com/fgeck/dgs-backup/internal/cli"
	"github.com/fgeck/dgs-backup/internal/logging"
	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/fgeck/dgs-backup/internal/services/runner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dgs-backup [-c config.xml] [-o]",
	Short: "Back up the configuration of a D-Link DGS-1100 switch",
	Long: `dgs-backup reads the switch address and password from an XML config file,
logs in to the switch's web interface and backs up its configuration
(and optionally its firmware) into the backup directory.
Without -c the config is read from ` + models.Defaults().ConfigFile + `.

Flags:
` + cli.Usage() + `
Unknown flags are ignored.`,
	// Flags are parsed by internal/cli so unknown ones can be ignored.
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp()
		return a.run(cmd, args)
	},
}

func newApp() *app {
	return &app{
		defaults:  models.Defaults(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		newLogger: logging.New,
		newRunner: func(logger zerolog.Logger, out io.Writer) runner.Service {
			return runner.New(logger, out)
		},
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
