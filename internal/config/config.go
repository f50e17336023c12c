package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains settings for verifying tokens issued by the external
// identity provider. The service never issues tokens itself.
type AuthConfig struct {
	// TokenSecret is the HMAC key shared with the identity provider.
	TokenSecret string `mapstructure:"token_secret" validate:"required,min=32"`
}

// LLMConfig contains all settings for the generative-language integration.
// GeminiAPIKey is intentionally not required at load time: the rest of the
// API keeps working without it, and the generate endpoint reports the
// missing key as a server-side configuration error.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"`
	MaxRetries        int    `mapstructure:"max_retries"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds"`
	TimeoutSeconds    int    `mapstructure:"timeout_seconds"`
}

// CORSConfig contains the allowed-origin policy for browser clients.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}
