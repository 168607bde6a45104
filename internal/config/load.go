package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables this service reads,
// e.g. VOYAGECRAFT_SERVER_PORT or VOYAGECRAFT_LLM_GEMINI_API_KEY.
const envPrefix = "VOYAGECRAFT"

// Load configuration from environment variables and optionally a config
// file. Environment variables take precedence over values from config
// files. Returns a populated Config struct or an error if loading or
// validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A config file is optional; env vars alone must be enough.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("store.collection", "itineraries")
	v.SetDefault("store.timeout_seconds", 10)
	// Secrets default to empty so the keys are known to viper and can be
	// supplied through the environment alone.
	v.SetDefault("store.credentials_json", "")
	v.SetDefault("store.base_url", "")

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openai_base_url", "")

	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.queue_size", 100)
}
