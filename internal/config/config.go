package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type EncryptionConfig struct {
	// Key is a hex-encoded AES-256 key; when empty the key is loaded
	// from (or created at) KeyFile on first use.
	Key     string `mapstructure:"key"`
	KeyFile string `mapstructure:"key_file"`
}

type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
	Session    SessionConfig    `mapstructure:"session"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	LogLevel   string           `mapstructure:"log_level"`
}

// Load reads configuration from an optional config.yaml plus the
// environment (HOSPITAL_ prefix). A local .env is honoured when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HOSPITAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("database.path", "data/hospital.db")
	v.SetDefault("encryption.key", "")
	v.SetDefault("encryption.key_file", "data/secret.key")
	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
