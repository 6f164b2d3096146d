package logging

import (
	"bytes"
	"log/syslog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSyslog struct {
	debug, info, warning, err []string
}

func (f *fakeSyslog) Write(p []byte) (int, error) {
	f.info = append(f.info, string(p))
	return len(p), nil
}

func (f *fakeSyslog) Debug(m string) error   { f.debug = append(f.debug, m); return nil }
func (f *fakeSyslog) Info(m string) error    { f.info = append(f.info, m); return nil }
func (f *fakeSyslog) Warning(m string) error { f.warning = append(f.warning, m); return nil }
func (f *fakeSyslog) Err(m string) error     { f.err = append(f.err, m); return nil }
func (f *fakeSyslog) Emerg(m string) error   { f.err = append(f.err, m); return nil }
func (f *fakeSyslog) Crit(m string) error    { f.err = append(f.err, m); return nil }

func TestParseFacility(t *testing.T) {
	tests := []struct {
		name string
		want syslog.Priority
	}{
		{"user", syslog.LOG_USER},
		{"USER", syslog.LOG_USER},
		{"LOG_USER", syslog.LOG_USER},
		{"daemon", syslog.LOG_DAEMON},
		{" local3 ", syslog.LOG_LOCAL3},
		{"log_local7", syslog.LOG_LOCAL7},
		{"authpriv", syslog.LOG_AUTHPRIV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFacility(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFacility_Unknown(t *testing.T) {
	for _, name := range []string{"", "local8", "LOG_", "8"} {
		_, err := ParseFacility(name)
		assert.Error(t, err, name)
	}
}

func TestNewWithWriter_MirrorsToSyslog(t *testing.T) {
	var console bytes.Buffer
	sys := &fakeSyslog{}

	logger := NewWithWriter(&console, sys)
	logger.Debug().Str("setting", "IPv4").Msg("config setting found")
	logger.Error().Msg("failed to load config")

	require.Len(t, sys.debug, 1)
	assert.Contains(t, sys.debug[0], "config setting found")
	require.Len(t, sys.err, 1)
	assert.Contains(t, sys.err[0], "failed to load config")

	assert.NotContains(t, console.String(), "config setting found")
	assert.Contains(t, console.String(), "ERROR")
	assert.Contains(t, console.String(), "failed to load config")
	assert.NoError(t, logger.Close())
}

func TestNewWithWriter_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	logger := NewWithWriter(&console, nil)
	logger.Info().Str("address", "192.168.0.1").Msg("logging in to switch")
	logger.Warn().Msg("careful")

	assert.Contains(t, console.String(), "INFO")
	assert.Contains(t, console.String(), "address=192.168.0.1")
	assert.Contains(t, console.String(), "WARN")
}

func TestNew_FallsBackOnUnknownFacility(t *testing.T) {
	var console bytes.Buffer

	logger := New(&console, "nope")
	defer func() { _ = logger.Close() }()

	assert.Contains(t, console.String(), "using default syslog facility")
}
