package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Info("Pipeline", "resized", map[string]interface{}{"width": 100})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Pipeline", entry["component"])
	assert.Equal(t, "resized", entry["message"])
	assert.Equal(t, float64(100), entry["width"])
	assert.Equal(t, "info", entry["level"])
}

func TestZerologAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Pipeline", "hidden", nil)
	log.Info("Pipeline", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Error("Pipeline", errors.New("decode failed"), nil)
	assert.Contains(t, buf.String(), "decode failed")
}

func TestNopLogger(t *testing.T) {
	var l Logger = NewNop()
	l.Warning("x", "y", map[string]interface{}{"a": 1})
}
