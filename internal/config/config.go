package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store"  validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
	Task   TaskConfig   `mapstructure:"task"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StoreConfig contains the document store settings. CredentialsJSON is the
// raw GCP service account key (the project ID is read from it); Collection
// names the collection job records live in. BaseURL is normally empty and
// only overridden to point tests or an emulator at a local endpoint.
type StoreConfig struct {
	CredentialsJSON string `mapstructure:"credentials_json" validate:"required"`
	Collection      string `mapstructure:"collection"       validate:"required"`
	BaseURL         string `mapstructure:"base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"  validate:"gte=0"`
}

// LLMConfig contains the content generation settings. Provider selects the
// backend adapter; only the selected provider's key is required.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"        validate:"required,oneof=gemini openai"`
	Model          string `mapstructure:"model"           validate:"required"`
	GeminiAPIKey   string `mapstructure:"gemini_api_key"  validate:"required_if=Provider gemini"`
	OpenAIAPIKey   string `mapstructure:"openai_api_key"  validate:"required_if=Provider openai"`
	OpenAIBaseURL  string `mapstructure:"openai_base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// TaskConfig contains the background runner settings.
type TaskConfig struct {
	WorkerCount int `mapstructure:"worker_count" validate:"required,gte=1"`
	QueueSize   int `mapstructure:"queue_size"   validate:"required,gte=1"`
}
