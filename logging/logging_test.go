package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetupWriter(t *testing.T) {
	var out bytes.Buffer

	SetupWriter(&out, false)

	log := Get("propagate")
	log.Debug().Msg("hidden")
	log.Info().Str("document", "Alice - 2024").Msg("updated")

	s := out.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "updated")
	assert.Contains(t, s, "component=propagate")
	assert.Contains(t, s, "document=")
	assert.NotContains(t, s, "\x1b[")
}

func TestSetupWriterWithDebug(t *testing.T) {
	var out bytes.Buffer

	SetupWriter(&out, true)
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Get("settings").Debug().Msg("loaded")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Contains(t, out.String(), "loaded")
}
