package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEB_URL", "https://editor.example.com")
	t.Setenv("EDITOR_LICENSE_KEY", "GPL")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "2")
	t.Setenv("EXTERNAL_LIMITER_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "GPL", cfg.LicenseKey)
	assert.Equal(t, "https://editor.example.com/api/editor/upload/", cfg.UploadURL)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, DefaultMetricsAddr, cfg.MetricsAddr)
	assert.Equal(t, DefaultDatabaseDSN, cfg.DatabaseDSN)
	assert.Equal(t, DefaultStoragePath, cfg.StoragePath)
	assert.Equal(t, DefaultImageMaxWidth, cfg.ImageMaxWidth)
	assert.Equal(t, int64(2<<20), cfg.UploadMaxSize())
	assert.False(t, cfg.S3Enabled())
	assert.False(t, cfg.CloudServicesEnabled())
	assert.Nil(t, cfg.ExternalLimiter)
}

func TestLoadUploadURLOverride(t *testing.T) {
	t.Setenv("WEB_URL", "https://editor.example.com")
	t.Setenv("EDITOR_UPLOAD_URL", "https://cdn.example.com/upload")
	t.Setenv("AWS_S3_ENDPOINT_URL", "minio:9000")
	t.Setenv("ASSETS_CLEANER_DISABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/upload", cfg.UploadURL)
	assert.True(t, cfg.S3Enabled())
	assert.True(t, cfg.AssetsCleanerDisabled)
}

func TestLoadExternalLimiter(t *testing.T) {
	t.Setenv("WEB_URL", "https://editor.example.com")
	t.Setenv("EXTERNAL_LIMITER_URL", "http://limits.local:9000")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.ExternalLimiter)
	assert.Equal(t, "limits.local:9000", cfg.ExternalLimiter.Host)
}

func TestLoadRequiresWebURL(t *testing.T) {
	t.Setenv("WEB_URL", "")
	_, err := Load()
	assert.ErrorIs(t, err, ErrWebURLRequired)
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"secret", "s****t"},
		{"ab", "**"},
		{"x", "*"},
		{"ключ", "к**ч"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, mask(tt.in))
	}

	assert.True(t, isSecret("AWSSecretKey"))
	assert.True(t, isSecret("LicenseKey"))
	assert.False(t, isSecret("WebURLRaw"))
}

func TestLoadSkipsInvalidValues(t *testing.T) {
	t.Setenv("WEB_URL", "https://editor.example.com")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "ten")
	t.Setenv("ASSETS_CLEANER_DISABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultUploadMaxSizeMB, cfg.UploadMaxSizeMB)
	assert.False(t, cfg.AssetsCleanerDisabled)
}
