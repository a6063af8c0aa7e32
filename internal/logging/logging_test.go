package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"Warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNew_TagsSession(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, zerolog.InfoLevel)

	log.Info().Int("lap", 3).Msg("lap completed")
	log.Debug().Msg("filtered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "lap completed", entry["message"])
	assert.Equal(t, float64(3), entry["lap"])
	assert.Contains(t, entry, "time")

	_, err := uuid.Parse(entry["session"].(string))
	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "filtered")
}

func TestSetup_FileOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "racer.log")

	log, closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug().Msg("boundary hit")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "boundary hit")
	assert.NotContains(t, string(data), "\x1b[", "file output is uncoloured")
}

func TestSetup_BadFile(t *testing.T) {
	_, _, err := Setup(Options{File: filepath.Join(t.TempDir(), "missing", "racer.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error opening log file")
}
