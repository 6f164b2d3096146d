// Package logging sets up the console and syslog loggers.
package logging

import (
	"fmt"
	"io"
	"log/syslog"
	"strings"

	"github.com/rs/zerolog"
)

// Tag is the syslog program name.
const Tag = "dgs-backup"

var facilities = map[string]syslog.Priority{
	"kern":     syslog.LOG_KERN,
	"user":     syslog.LOG_USER,
	"mail":     syslog.LOG_MAIL,
	"daemon":   syslog.LOG_DAEMON,
	"auth":     syslog.LOG_AUTH,
	"syslog":   syslog.LOG_SYSLOG,
	"lpr":      syslog.LOG_LPR,
	"news":     syslog.LOG_NEWS,
	"uucp":     syslog.LOG_UUCP,
	"cron":     syslog.LOG_CRON,
	"authpriv": syslog.LOG_AUTHPRIV,
	"ftp":      syslog.LOG_FTP,
	"local0":   syslog.LOG_LOCAL0,
	"local1":   syslog.LOG_LOCAL1,
	"local2":   syslog.LOG_LOCAL2,
	"local3":   syslog.LOG_LOCAL3,
	"local4":   syslog.LOG_LOCAL4,
	"local5":   syslog.LOG_LOCAL5,
	"local6":   syslog.LOG_LOCAL6,
	"local7":   syslog.LOG_LOCAL7,
}

// ParseFacility maps a facility name such as "user", "LOG_LOCAL3" or
// "daemon" to its syslog priority bits.
func ParseFacility(name string) (syslog.Priority, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, "log_")
	if p, ok := facilities[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown syslog facility %q", name)
}

// Logger is a zerolog logger with an optional syslog connection behind it.
type Logger struct {
	zerolog.Logger
	syslog io.Closer
}

// Close releases the syslog connection, if any.
func (l *Logger) Close() error {
	if l.syslog == nil {
		return nil
	}
	return l.syslog.Close()
}

// New creates a logger writing human readable output to console at info and
// above, and every event to syslog under facility. If syslog cannot be
// reached the logger falls back to console only and says so.
func New(console io.Writer, facility string) *Logger {
	priority, err := ParseFacility(facility)
	if err != nil {
		l := &Logger{Logger: newLogger(consoleWriter(console), nil)}
		l.Warn().Err(err).Msg("using default syslog facility")
		priority = syslog.LOG_USER
		facility = "user"
	}

	w, err := syslog.New(priority|syslog.LOG_DEBUG, Tag)
	if err != nil {
		l := &Logger{Logger: newLogger(consoleWriter(console), nil)}
		l.Warn().Err(err).Str("facility", facility).Msg("syslog unavailable, logging to console only")
		return l
	}

	return &Logger{Logger: newLogger(consoleWriter(console), w), syslog: w}
}

// NewWithWriter creates a logger over an already connected syslog writer
// (useful for testing). sys may be nil.
func NewWithWriter(console io.Writer, sys zerolog.SyslogWriter) *Logger {
	return &Logger{Logger: newLogger(consoleWriter(console), sys)}
}

func newLogger(console io.Writer, sys zerolog.SyslogWriter) zerolog.Logger {
	writers := []io.Writer{&levelFilter{w: console, min: zerolog.InfoLevel}}
	if sys != nil {
		writers = append(writers, zerolog.SyslogLevelWriter(sys))
	}
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

func consoleWriter(out io.Writer) io.Writer {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05", NoColor: true}
	output.FormatLevel = func(i interface{}) string {
		if s, ok := i.(string); ok {
			return strings.ToUpper(s)
		}
		return ""
	}
	return output
}

// levelFilter drops events below min.
type levelFilter struct {
	w   io.Writer
	min zerolog.Level
}

func (f *levelFilter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *levelFilter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < f.min {
		return len(p), nil
	}
	return f.w.Write(p)
}
