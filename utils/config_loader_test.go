package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, time.Second, cfg.Tolerance())
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_OverridesKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spraylog.yaml")
	data := []byte(`
logging:
  level: debug
alignment:
  tolerance_ms: 500
export:
  compress: true
parser:
  timezone: Asia/Kolkata
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 500*time.Millisecond, cfg.Tolerance())
	assert.True(t, cfg.Export.Compress)
	assert.Equal(t, "exports", cfg.Export.BaseDir, "unset keys keep defaults")
	assert.True(t, cfg.Export.WriteHeader)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative tolerance", "alignment:\n  tolerance_ms: -1\n"},
		{"unknown level", "logging:\n  level: chatty\n"},
		{"unknown timezone", "parser:\n  timezone: Mars/Olympus\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "spraylog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))
			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spraylog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
