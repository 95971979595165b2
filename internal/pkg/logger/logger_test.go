package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWithWriter(Config{Level: "debug", Format: "json"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	l.Debug().Str("collection", "contactlist").Msg("documents inserted")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "contactlist", entry["collection"])
	assert.Equal(t, "docstore", entry["service"])
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWithWriter(Config{Level: "loud"}, &buf)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	l := SetupWithWriter(Config{Level: "info", Format: "console"}, &buf)

	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.NotContains(t, buf.String(), "{")
}
