// Package models contains the data structures used throughout dgs-backup.
package models

import "time"

// ResolvedConfig holds the validated configuration for a backup run.
type ResolvedConfig struct {
	ConfigFile           string // file the settings were read from
	BackupDirectory      string
	LogFacility          string // syslog facility name, e.g. "user" or "local3"
	SavePasswordInBackup bool
	BackupFirmware       bool
	DeviceAddress        string // IPv4 literal
	Password             string
	OutputFilenames      bool // print written filenames (-o)
	LoginTimeout         time.Duration
}

// DefaultConfig holds the built-in values used when neither the command line
// nor the config file provides a setting.
type DefaultConfig struct {
	ConfigFile           string
	BackupDirectory      string
	LogFacility          string
	SavePasswordInBackup bool
	BackupFirmware       bool
	OutputFilenames      bool
	LoginTimeout         time.Duration
}

// Defaults returns the built-in defaults.
func Defaults() DefaultConfig {
	return DefaultConfig{
		ConfigFile:           "/etc/backup-DGS-1100.xml",
		BackupDirectory:      "/var/backups",
		LogFacility:          "user",
		SavePasswordInBackup: true,
		BackupFirmware:       false,
		OutputFilenames:      false,
		LoginTimeout:         30 * time.Second,
	}
}

// CLIOverrides holds the settings given on the command line.
type CLIOverrides struct {
	ConfigFile      string // empty if -c/--config was not given
	OutputFilenames bool
}
