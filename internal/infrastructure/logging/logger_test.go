package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"", zapcore.InfoLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWritesJSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.json")

	logger, err := New(Config{Level: "info", OutputPaths: []string{out}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Named("router").Info("served", zap.String("path", "/read"))
	logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry), "expected exactly one JSON line, got %q", data)
	assert.Equal(t, "served", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "router", entry["logger"])
	assert.Equal(t, "/read", entry["path"])
}

func TestNewDevelopmentWritesConsole(t *testing.T) {
	out := filepath.Join(t.TempDir(), "log.txt")

	logger, err := New(Config{Level: "debug", Development: true, OutputPaths: []string{out}})
	require.NoError(t, err)

	logger.Debug("resolved", zap.String("file", "a.txt"))
	logger.Sync()

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolved")
	assert.Contains(t, string(data), `"file": "a.txt"`)
	assert.False(t, json.Valid(data), "development output is not JSON")
}

func TestNop(t *testing.T) {
	assert.NotNil(t, NewNop().Logger)
	assert.NotPanics(t, func() { NewNop().Named("x").Sync() })
}

func TestEncodingFormat(t *testing.T) {
	assert.Equal(t, "console", encodingFormat(true))
	assert.Equal(t, "json", encodingFormat(false))
	assert.Equal(t, "M", encoderConfig(true).MessageKey)
	assert.Equal(t, "message", encoderConfig(false).MessageKey)
}
