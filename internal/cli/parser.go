// Package cli parses the command line into config overrides.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/spf13/pflag"
)

var (
	// ErrMalformed is returned when the arguments cannot be parsed, e.g. a
	// flag that needs a value has none.
	ErrMalformed = errors.New("could not parse command line options")

	// ErrHelp is returned when -h or --help was given.
	ErrHelp = pflag.ErrHelp
)

// Parse reads -c/--config <path> and -o/--output from args (without the
// program name). Unknown flags are ignored.
func Parse(args []string) (models.CLIOverrides, error) {
	var overrides models.CLIOverrides

	fs := NewFlagSet(&overrides)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return models.CLIOverrides{}, ErrHelp
		}
		return models.CLIOverrides{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return overrides, nil
}

// NewFlagSet returns the flag set that fills overrides.
func NewFlagSet(overrides *models.CLIOverrides) *pflag.FlagSet {
	fs := pflag.NewFlagSet("dgs-backup", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.StringVarP(&overrides.ConfigFile, "config", "c", "", "alternate config file")
	fs.BoolVarP(&overrides.OutputFilenames, "output", "o", false, "print the names of written backup files")
	return fs
}

// Usage returns the flag table shown in the command's help text.
func Usage() string {
	return NewFlagSet(&models.CLIOverrides{}).FlagUsages()
}
