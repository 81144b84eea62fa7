package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_ENV", "LOG_LEVEL", "ALLOWED_ORIGINS", "DEFAULT_ASSESSMENT_YEAR", "MAX_UPLOAD_BYTES", "REGULATORY_CONFIG"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "2024-25", cfg.DefaultAssessmentYear)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Empty(t, cfg.RegulatoryConfig)
}

func TestLoadServerConfig_Environment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := LoadServerConfig("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
}

func TestLoadServerConfig_EnvFile(t *testing.T) {
	t.Setenv("DEFAULT_ASSESSMENT_YEAR", "")
	require.NoError(t, os.Unsetenv("DEFAULT_ASSESSMENT_YEAR"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DEFAULT_ASSESSMENT_YEAR=2023-24\n"), 0644))

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "2023-24", cfg.DefaultAssessmentYear)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value, contains string
	}{
		{"non numeric port", "PORT", "http", "invalid PORT"},
		{"port out of range", "PORT", "70000", "PORT must be between"},
		{"non numeric upload cap", "MAX_UPLOAD_BYTES", "ten", "invalid MAX_UPLOAD_BYTES"},
		{"zero upload cap", "MAX_UPLOAD_BYTES", "-1", "MAX_UPLOAD_BYTES must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadServerConfig("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
