package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	// DBDriver selects the storage engine: "sqlite" (embedded, default)
	// or "postgres".
	DBDriver string `mapstructure:"DB_DRIVER"`
	DBDSN    string `mapstructure:"DB_DSN"`

	JWTKey string `mapstructure:"JWT_KEY"`

	// LegacyDataDir points at a directory with the old flat-file layout
	// (users.csv, groups.csv, chats.csv). Imported once into an empty
	// database on startup.
	LegacyDataDir string `mapstructure:"LEGACY_DATA_DIR"`

	// FileStorage selects the upload backend: "local" (default) or "s3".
	FileStorage string `mapstructure:"FILE_STORAGE"`
	UploadDir   string `mapstructure:"UPLOAD_DIR"`

	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3BucketName      string `mapstructure:"S3_BUCKET_NAME"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`

	// Empty RedisAddr disables the conversation cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
}

func Load() (*Config, error) {
	viper.AddConfigPath("./")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine, everything can come from the environment.
	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, err
		}
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "data/zapzap.db")
	viper.SetDefault("FILE_STORAGE", "local")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("LEGACY_DATA_DIR", "data")
	viper.SetDefault("REDIS_DB", 0)

	// Registering every key lets AutomaticEnv fill it when no .env exists.
	for _, key := range []string{
		"JWT_KEY", "REDIS_ADDR", "REDIS_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_BUCKET_NAME", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		if !viper.IsSet(key) {
			viper.SetDefault(key, "")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY is required")
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}

	if cfg.FileStorage != "local" && cfg.FileStorage != "s3" {
		return nil, fmt.Errorf("FILE_STORAGE must be local or s3, got %q", cfg.FileStorage)
	}

	if cfg.FileStorage == "s3" {
		if cfg.S3BucketName == "" {
			return nil, fmt.Errorf("S3_BUCKET_NAME is required")
		}
		if cfg.S3AccessKeyID == "" {
			return nil, fmt.Errorf("S3_ACCESS_KEY_ID is required")
		}
		if cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("S3_SECRET_ACCESS_KEY is required")
		}
	}

	return &cfg, nil
}
