package logging

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Str("slot", "9am").Msg("kept")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "9am", line["slot"])
	assert.Equal(t, service, line["service"])
}

func TestUnknownLevelIsInfo(t *testing.T) {
	for _, lvl := range []string{"", "loud"} {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, lvl)
		log.Debug().Msg("hidden")
		log.Info().Msg("shown")
		assert.Contains(t, buf.String(), "shown", lvl)
		assert.NotContains(t, buf.String(), "hidden", lvl)
	}
}
