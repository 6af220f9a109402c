package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionEmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", App: "seva-admin", Out: &buf})

	sub := l.Component("session")
	sub.Info().Str("email", "ana@seva.test").Msg("sesión iniciada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "seva-admin", line["app"])
	assert.Equal(t, "session", line["component"])
	assert.Equal(t, "sesión iniciada", line["message"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})
	l.Info().Msg("no debe aparecer")
	assert.Empty(t, buf.String())

	l.Warn().Msg("sí aparece")
	assert.Contains(t, buf.String(), "sí aparece")
}
