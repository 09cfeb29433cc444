package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// L is the process-wide logger. It discards everything until Init is called.
var L = zerolog.Nop()

// Init points L at path (stdout when empty) with the given minimum level.
// The console owns the terminal, so callers normally pass a file path.
func Init(path, level string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = file
	}
	L = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: path != ""}).With().Timestamp().Logger()
	SetLevel(level)
	return nil
}

// SetLevel changes the minimum level. Safe to call while other goroutines log.
func SetLevel(level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func Info(v ...interface{})             { L.Info().Msg(sprint(v)) }
func Warn(v ...interface{})             { L.Warn().Msg(sprint(v)) }
func Error(v ...interface{})            { L.Error().Msg(sprint(v)) }
func Infof(f string, v ...interface{})  { L.Info().Msgf(f, v...) }
func Warnf(f string, v ...interface{})  { L.Warn().Msgf(f, v...) }
func Errorf(f string, v ...interface{}) { L.Error().Msgf(f, v...) }

// sprint joins operands with spaces, like log.Println.
func sprint(v []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}
