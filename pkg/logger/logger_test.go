package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_AttachesServiceFields(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(prev)
	})
	Reset()

	var buf bytes.Buffer
	Init(Options{Level: "info", Service: "sms-api", Env: "test", Output: &buf})
	menuLog := Component("menu")
	menuLog.Info().Int64("role_id", 7).Msg("resolved")
	log := Get()
	log.Debug().Msg("hidden")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "sms-api", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.Equal(t, "menu", entry["component"])
	assert.Equal(t, "resolved", entry["message"])
	assert.EqualValues(t, 7, entry["role_id"])
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(prev)
	})
	Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	log := Get()
	log.Info().Msg("hello")

	assert.NotEmpty(t, first.String())
	assert.Empty(t, second.String())
}

func TestGet_BeforeInitIsSilent(t *testing.T) {
	Reset()
	assert.NotPanics(t, func() {
		log := Get()
		log.Error().Msg("dropped")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.FatalLevel, ParseLevel("fatal"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}
