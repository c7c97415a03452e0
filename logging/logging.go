package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Output goes to stderr so that command output on stdout
// stays clean.
func Setup(debug bool) {
	SetupWriter(os.Stderr, debug)
}

func SetupWriter(w io.Writer, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	console := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
	}

	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	if debug {
		log.Logger = log.Logger.With().Caller().Logger()
	}
}

// Get returns a logger tagged with the component name.
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return IsTerminal(f)
	}

	return false
}
