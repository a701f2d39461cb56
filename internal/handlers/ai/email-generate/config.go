package emailgenerate

import (
	"fmt"
	"time"

	"winhouse-quote/internal/common/config"
)

type Config struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:     true,
		Timeout:     30 * time.Second,
		Model:       "gpt-3.5-turbo",
		Temperature: 0.7,
		MaxTokens:   2000,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	openai := appConfig.APIs.OpenAI
	cfg.APIKey = openai.APIKey
	cfg.BaseURL = openai.BaseURL
	if openai.Model != "" {
		cfg.Model = openai.Model
	}
	if openai.Temperature > 0 {
		cfg.Temperature = openai.Temperature
	}
	if openai.MaxTokens > 0 {
		cfg.MaxTokens = openai.MaxTokens
	}
	if openai.Timeout > 0 {
		cfg.Timeout = config.GetDuration(openai.Timeout)
	}
	return cfg
}
