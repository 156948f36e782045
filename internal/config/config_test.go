package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadWith(t *testing.T, env map[string]string) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	for k, v := range env {
		t.Setenv(k, v)
	}
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadWith(t, map[string]string{"JWT_KEY": "test-key"})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "data/zapzap.db", cfg.DBDSN)
	assert.Equal(t, "local", cfg.FileStorage)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "", cfg.RedisAddr, "cache disabled unless configured")
	assert.Equal(t, "test-key", cfg.JWTKey)
}

func TestLoadRequiresJWTKey(t *testing.T) {
	_, err := loadWith(t, map[string]string{"JWT_KEY": ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_KEY")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	_, err := loadWith(t, map[string]string{
		"JWT_KEY":   "test-key",
		"DB_DRIVER": "oracle",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	_, err := loadWith(t, map[string]string{
		"JWT_KEY":      "test-key",
		"FILE_STORAGE": "ftp",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FILE_STORAGE")
}

func TestLoadS3RequiresCredentials(t *testing.T) {
	_, err := loadWith(t, map[string]string{
		"JWT_KEY":      "test-key",
		"FILE_STORAGE": "s3",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")

	cfg, err := loadWith(t, map[string]string{
		"JWT_KEY":              "test-key",
		"FILE_STORAGE":         "s3",
		"S3_BUCKET_NAME":       "attachments",
		"S3_ACCESS_KEY_ID":     "minio",
		"S3_SECRET_ACCESS_KEY": "minio123",
		"S3_ENDPOINT":          "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "attachments", cfg.S3BucketName)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
}
