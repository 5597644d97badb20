package config

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
	assert.Equal(t, 100000, cfg.Runtime.FlushLimit)
}

func TestLoad(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		cfg, err := Load(filepath.Join("testdata", "full.yaml"))
		require.NoError(t, err)

		assert.Equal(t, Config{
			Log:     LogConfig{Level: "debug", Format: "json"},
			Runtime: RuntimeConfig{FlushLimit: 500},
			Metrics: MetricsConfig{Enabled: true, Namespace: "demo"},
			Tracing: TracingConfig{Enabled: true, TracerName: "demo-tracer"},
		}, cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join("testdata", "partial.yaml"))
		require.NoError(t, err)

		assert.Equal(t, 0, cfg.Runtime.FlushLimit)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "reactive", cfg.Metrics.Namespace)
	})

	t.Run("unknown keys", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "typo.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "levle")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join("testdata", "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "empty document", input: ""},
		{name: "upper case level", input: "log:\n  level: WARN\n"},
		{name: "bad level", input: "log:\n  level: loud\n", wantErr: true},
		{name: "bad format", input: "log:\n  format: xml\n", wantErr: true},
		{name: "negative flush limit", input: "runtime:\n  flush_limit: -1\n", wantErr: true},
		{name: "metrics without namespace", input: "metrics:\n  enabled: true\n  namespace: \"\"\n", wantErr: true},
		{name: "tracing without name", input: "tracing:\n  enabled: true\n  tracer_name: \"\"\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := Parse([]byte(tt.input), &cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
		})
	}
}
