package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Optionally read a config.yaml from the working directory; a missing
	// file is fine, everything can come from the environment.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables
	v.SetEnvPrefix("TASKNEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables. AutomaticEnv alone does
	// not surface keys that have no default and are absent from the file.
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"database.url", "TASKNEST_DATABASE_URL"},
		{"auth.token_secret", "TASKNEST_AUTH_TOKEN_SECRET"},
		{"llm.gemini_api_key", "TASKNEST_LLM_GEMINI_API_KEY"},
		{"server.port", "TASKNEST_SERVER_PORT"},
		{"server.log_level", "TASKNEST_SERVER_LOG_LEVEL"},
		{"cors.allowed_origins", "TASKNEST_CORS_ALLOWED_ORIGINS"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
