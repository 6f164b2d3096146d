package config

import (
	"net/netip"
	"strings"

	"github.com/fgeck/dgs-backup/internal/logging"
	"github.com/fgeck/dgs-backup/internal/models"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Setting names as they appear as XML elements in the config file.
const (
	SettingBackupDirectory = "backupDirectory"
	SettingLogFacility     = "logFacility"
	SettingSavePassword    = "savePasswordsInConfigurationBackup"
	SettingBackupFirmware  = "backupFirmware"
	SettingIPv4            = "IPv4"
	SettingPassword        = "password"
)

const (
	keyConfigFile = "config"
	keyOutput     = "output"
)

// Resolver merges command line overrides, the config document and the
// built-in defaults into a ResolvedConfig.
type Resolver struct {
	logger zerolog.Logger
}

// NewResolver creates a new resolver.
func NewResolver(logger zerolog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// ConfigPath returns the config file to load: -c/--config if given,
// otherwise the default path.
func (r *Resolver) ConfigPath(defaults models.DefaultConfig, overrides models.CLIOverrides) string {
	return r.layers(defaults, overrides, nil).GetString(keyConfigFile)
}

// Resolve builds the validated configuration. Only the config path and the
// output flag can come from the command line; every other setting comes
// from doc or falls back to defaults. IPv4 and password have no default.
func (r *Resolver) Resolve(defaults models.DefaultConfig, overrides models.CLIOverrides, doc *Document) (models.ResolvedConfig, error) {
	v := r.layers(defaults, overrides, doc)

	savePassword, err := parseBool(SettingSavePassword, v.GetString(SettingSavePassword))
	if err != nil {
		return models.ResolvedConfig{}, err
	}
	backupFirmware, err := parseBool(SettingBackupFirmware, v.GetString(SettingBackupFirmware))
	if err != nil {
		return models.ResolvedConfig{}, err
	}

	facility := strings.TrimSpace(v.GetString(SettingLogFacility))
	if _, err := logging.ParseFacility(facility); err != nil {
		return models.ResolvedConfig{}, &SettingError{Setting: SettingLogFacility, Value: facility, Err: ErrInvalidValue}
	}

	address, err := r.required(doc, SettingIPv4)
	if err != nil {
		return models.ResolvedConfig{}, err
	}
	address = strings.TrimSpace(address)
	if !isIPv4(address) {
		return models.ResolvedConfig{}, &SettingError{Setting: SettingIPv4, Value: address, Err: ErrInvalidAddress}
	}

	password, err := r.required(doc, SettingPassword)
	if err != nil {
		return models.ResolvedConfig{}, err
	}

	cfg := models.ResolvedConfig{
		ConfigFile:           v.GetString(keyConfigFile),
		BackupDirectory:      v.GetString(SettingBackupDirectory),
		LogFacility:          facility,
		SavePasswordInBackup: savePassword,
		BackupFirmware:       backupFirmware,
		DeviceAddress:        address,
		Password:             password,
		OutputFilenames:      v.GetBool(keyOutput),
		LoginTimeout:         defaults.LoginTimeout,
	}

	r.logger.Debug().
		Str("config", cfg.ConfigFile).
		Str("backup_directory", cfg.BackupDirectory).
		Str("log_facility", cfg.LogFacility).
		Bool("save_password", cfg.SavePasswordInBackup).
		Bool("backup_firmware", cfg.BackupFirmware).
		Str("address", cfg.DeviceAddress).
		Msg("configuration resolved")

	return cfg, nil
}

// layers stacks the sources: defaults at the bottom, document values over
// them, command line on top. doc may be nil.
func (r *Resolver) layers(defaults models.DefaultConfig, overrides models.CLIOverrides, doc *Document) *viper.Viper {
	v := viper.New()

	v.SetDefault(keyConfigFile, defaults.ConfigFile)
	v.SetDefault(keyOutput, defaults.OutputFilenames)
	v.SetDefault(SettingBackupDirectory, defaults.BackupDirectory)
	v.SetDefault(SettingLogFacility, defaults.LogFacility)
	v.SetDefault(SettingSavePassword, formatBool(defaults.SavePasswordInBackup))
	v.SetDefault(SettingBackupFirmware, formatBool(defaults.BackupFirmware))

	if doc != nil {
		for _, setting := range []string{SettingBackupDirectory, SettingLogFacility, SettingSavePassword, SettingBackupFirmware} {
			if value, ok := doc.Get(setting); ok {
				v.Set(setting, value)
			}
		}
	}

	if overrides.ConfigFile != "" {
		v.Set(keyConfigFile, overrides.ConfigFile)
	}
	if overrides.OutputFilenames {
		v.Set(keyOutput, true)
	}

	return v
}

func (r *Resolver) required(doc *Document, setting string) (string, error) {
	if doc == nil {
		return "", &SettingError{Setting: setting, Err: ErrMissingRequiredField}
	}
	res := doc.Lookup(setting)
	switch res.Kind {
	case LookupFound:
		r.logger.Debug().Str("setting", setting).Msg("config setting found")
		return res.Value, nil
	case LookupAmbiguous:
		return "", &SettingError{Setting: setting, Err: ErrAmbiguousSetting}
	default:
		return "", &SettingError{Setting: setting, Err: ErrMissingRequiredField}
	}
}

// parseBool accepts true/1 and false/0 (any case, surrounding space
// ignored). An empty value is false.
func parseBool(setting, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, nil
	case "false", "0", "":
		return false, nil
	default:
		return false, &SettingError{Setting: setting, Value: value, Err: ErrInvalidValue}
	}
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func isIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return false
	}
	return addr.Is4()
}
