package quotedocument

import (
	"fmt"

	"winhouse-quote/internal/common/config"
)

type Config struct {
	FilenamePrefix string               `mapstructure:"filename_prefix"`
	VATPercent     int                  `mapstructure:"vat_percent"`
	DepositPercent int                  `mapstructure:"deposit_percent"`
	Company        config.CompanyConfig `mapstructure:"company"`
}

func DefaultConfig() *Config {
	return &Config{
		FilenamePrefix: "Bao-gia-Winhouse-",
		VATPercent:     10,
		DepositPercent: 50,
		Company: config.CompanyConfig{
			Name:    "CÔNG TY TNHH WIN HOUSE",
			Hotline: "0899 789 799",
			Email:   "info@thewinhouse.com",
			Website: "thewinhouse.com",
		},
	}
}

func (c *Config) Validate() error {
	if c.FilenamePrefix == "" {
		return fmt.Errorf("filename_prefix is required")
	}
	if c.DepositPercent < 0 || c.DepositPercent > 100 {
		return fmt.Errorf("deposit_percent must be between 0 and 100")
	}
	if c.VATPercent < 0 {
		return fmt.Errorf("vat_percent cannot be negative")
	}
	return nil
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil && appConfig.Company.Name != "" {
		cfg.Company = appConfig.Company
	}
	return cfg
}
