package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	CORS   CORSConfig
	Email  EmailConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// UploadConfig holds bill upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds notification relay settings.
type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from an optional config file and environment
// variables prefixed with BILLAUDIT_ (e.g. BILLAUDIT_SERVER_PORT).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("upload.max_file_size_mb", 10)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_name", "Bill Audit")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var origins []string
	for _, origin := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        v.GetString("server.port"),
			Environment: v.GetString("server.environment"),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
		Email: EmailConfig{
			Enabled:     v.GetBool("email.enabled"),
			Region:      v.GetString("email.region"),
			FromAddress: v.GetString("email.from_address"),
			FromName:    v.GetString("email.from_name"),
			ToAddress:   v.GetString("email.to_address"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if cfg.Email.Enabled && (cfg.Email.FromAddress == "" || cfg.Email.ToAddress == "") {
		return nil, fmt.Errorf("email is enabled but from_address or to_address is missing")
	}

	return cfg, nil
}
