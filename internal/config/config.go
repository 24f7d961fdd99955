package config

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Storage StorageConfig `mapstructure:"storage"`
	Bulk    BulkConfig    `mapstructure:"bulk"`
	Export  ExportConfig  `mapstructure:"export"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

type LLMConfig struct {
	Temperature float64         `mapstructure:"temperature"`
	OpenAI      OpenAIConfig    `mapstructure:"openai"`
	Ollama      OllamaConfig    `mapstructure:"ollama"`
	Gemini      GeminiConfig    `mapstructure:"gemini"`
	Anthropic   AnthropicConfig `mapstructure:"anthropic"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type StorageConfig struct {
	UploadPath  string `mapstructure:"upload_path"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

type BulkConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type ExportConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type LogConfig struct {
	JSON      bool `mapstructure:"json"`
	Debug     bool `mapstructure:"debug"`
	MaxLength int  `mapstructure:"max_length"`
}

type setting struct {
	key string
	env string
	def any
}

var settings = []setting{
	{"server.port", "PORT", "3000"},
	{"server.env", "ENV", "development"},
	{"llm.temperature", "LLM_TEMPERATURE", 0.1},
	{"llm.openai.api_key", "OPENAI_API_KEY", ""},
	{"llm.openai.base_url", "OPENAI_BASE_URL", ""},
	{"llm.openai.model", "OPENAI_MODEL", models.DefaultOpenAIModel},
	{"llm.ollama.base_url", "OLLAMA_BASE_URL", "http://localhost:11434/v1/"},
	{"llm.ollama.model", "OLLAMA_MODEL", models.DefaultOllamaModel},
	{"llm.gemini.api_key", "GEMINI_API_KEY", ""},
	{"llm.gemini.model", "GEMINI_MODEL", models.DefaultGeminiModel},
	{"llm.anthropic.api_key", "ANTHROPIC_API_KEY", ""},
	{"llm.anthropic.model", "ANTHROPIC_MODEL", models.DefaultAnthropicModel},
	{"storage.upload_path", "UPLOAD_PATH", "./uploads"},
	{"storage.max_file_size", "MAX_FILE_SIZE", int64(10485760)},
	{"bulk.concurrency", "BULK_CONCURRENCY", 4},
	{"export.csv_path", "EXPORT_CSV_PATH", "bulk_results.csv"},
	{"log.json", "LOG_JSON", false},
	{"log.debug", "LOG_DEBUG", false},
	{"log.max_length", "LOG_MAX_LENGTH", 200},
}

// Load reads .env (if present), the environment and an optional config file.
// An empty configFile means environment and defaults only.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	v := viper.New()
	for _, s := range settings {
		v.SetDefault(s.key, s.def)
		if err := v.BindEnv(s.key, s.env); err != nil {
			return nil, fmt.Errorf("binding %s environment variable: %w", s.env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for _, s := range settings {
		resetInvalid(v, s)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resetInvalid puts the default back when a numeric or boolean value cannot be parsed.
func resetInvalid(v *viper.Viper, s setting) {
	raw := strings.TrimSpace(v.GetString(s.key))
	var err error
	switch s.def.(type) {
	case int, int64:
		_, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		_, err = strconv.ParseFloat(raw, 64)
	case bool:
		_, err = strconv.ParseBool(raw)
	default:
		return
	}
	if err != nil {
		log.Printf("WARN: %s=%q is not valid, using default %v", s.env, raw, s.def)
		v.Set(s.key, s.def)
	}
}

// applyFallbacks restores defaults for values that decoded to their zero value
// from unparsable or blank input.
func (c *Config) applyFallbacks() {
	if c.Bulk.Concurrency == 0 {
		c.Bulk.Concurrency = 4
	}
	if c.Storage.MaxFileSize <= 0 {
		c.Storage.MaxFileSize = 10485760
	}
	if c.Log.MaxLength <= 0 {
		c.Log.MaxLength = 200
	}
	c.Export.CSVPath = strings.TrimSpace(c.Export.CSVPath)
}

func (c *Config) Validate() error {
	if c.Bulk.Concurrency < 1 {
		return fmt.Errorf("bulk.concurrency must be at least 1, got %d", c.Bulk.Concurrency)
	}
	if c.Export.CSVPath == "" {
		return errors.New("export.csv_path must not be empty")
	}
	if c.Server.Port == "" {
		return errors.New("server.port must not be empty")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
