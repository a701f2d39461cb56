package leadsync

import (
	"fmt"
	"time"

	"winhouse-quote/internal/common/config"
)

type Config struct {
	Enabled    bool          `mapstructure:"enabled"`
	Timeout    time.Duration `mapstructure:"timeout"`
	BaseURL    string        `mapstructure:"base_url"`
	OAuthToken string        `mapstructure:"oauth_token"`
	LeadSource string        `mapstructure:"lead_source"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:    false,
		Timeout:    10 * time.Second,
		BaseURL:    "https://www.zohoapis.com/crm/v2",
		LeadSource: "Quote Tool",
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Enabled && c.OAuthToken == "" {
		return fmt.Errorf("oauth_token is required when CRM sync is enabled")
	}
	if c.Enabled && c.BaseURL == "" {
		return fmt.Errorf("base_url is required when CRM sync is enabled")
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

	zoho := appConfig.Integrations.Zoho
	cfg.Enabled = zoho.Enabled
	cfg.OAuthToken = zoho.AuthToken
	if zoho.BaseURL != "" {
		cfg.BaseURL = zoho.BaseURL
	}
	if zoho.Timeout > 0 {
		cfg.Timeout = config.GetDuration(zoho.Timeout)
	}
	return cfg
}
