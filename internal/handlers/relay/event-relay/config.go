package eventrelay

import (
	"fmt"
	"time"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/validation"
)

type Config struct {
	Enabled          bool          `mapstructure:"enabled"`
	Timeout          time.Duration `mapstructure:"timeout"`
	SheetsWebhookURL string        `mapstructure:"sheets_webhook_url"`
	IndexEvents      bool          `mapstructure:"index_events"`
	EventIndex       string        `mapstructure:"event_index"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:    true,
		Timeout:    10 * time.Second,
		EventIndex: "quote-events",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SheetsWebhookURL != "" && !validation.ValidateURL(c.SheetsWebhookURL) {
		return fmt.Errorf("sheets_webhook_url must be an http(s) URL")
	}
	if c.IndexEvents && c.EventIndex == "" {
		return fmt.Errorf("event_index is required when indexing events")
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

	cfg.SheetsWebhookURL = appConfig.Integrations.Sheets.WebhookURL
	if appConfig.Integrations.Sheets.Timeout > 0 {
		cfg.Timeout = config.GetDuration(appConfig.Integrations.Sheets.Timeout)
	}
	cfg.IndexEvents = appConfig.Database.Elasticsearch.Enabled
	if appConfig.Database.Elasticsearch.EventIndex != "" {
		cfg.EventIndex = appConfig.Database.Elasticsearch.EventIndex
	}
	return cfg
}
