package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasitemo/store-management-sub000/pkg/logger"
)

func TestNew_JSONConComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Service: "store", Out: &buf})

	c := l.Component("order")
	c.Info().Str("order_id", "o1").Msg("orden creada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store", entry["service"])
	assert.Equal(t, "order", entry["component"])
	assert.Equal(t, "o1", entry["order_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "ruido", Out: &buf})

	l.Debug().Msg("no debe salir")
	assert.Empty(t, buf.String())

	l.Warn().Msg("sí sale")
	assert.Contains(t, buf.String(), "sí sale")
}
