package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var L = zerolog.Nop()

// Init sets up the package logger. With an empty path logs go to stdout,
// otherwise to an append-only file.
func Init(path string) error {
	var w io.Writer = os.Stdout
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		w = file
	}
	L = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	return nil
}

func Info(v ...interface{})             { L.Info().Msgf("%v", v...) }
func Error(v ...interface{})            { L.Error().Msgf("%v", v...) }
func Infof(f string, v ...interface{})  { L.Info().Msgf(f, v...) }
func Warnf(f string, v ...interface{})  { L.Warn().Msgf(f, v...) }
func Errorf(f string, v ...interface{}) { L.Error().Msgf(f, v...) }
