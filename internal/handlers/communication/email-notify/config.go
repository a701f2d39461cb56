package emailnotify

import (
	"fmt"
	"time"

	"winhouse-quote/internal/common/config"
)

type Config struct {
	Enabled  bool          `mapstructure:"enabled"`
	Timeout  time.Duration `mapstructure:"timeout"`
	NotifyTo string        `mapstructure:"notify_to"`
	FromName string        `mapstructure:"from_name"`

	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
	SMTPFrom     string `mapstructure:"smtp_from"`
	UseTLS       bool   `mapstructure:"use_tls"`

	SESEnabled   bool   `mapstructure:"ses_enabled"`
	SESFromEmail string `mapstructure:"ses_from_email"`

	SMSEnabled     bool   `mapstructure:"sms_enabled"`
	SMSPhoneNumber string `mapstructure:"sms_phone_number"`
	SMSSenderID    string `mapstructure:"sms_sender_id"`
	SMSMinTotal    int64  `mapstructure:"sms_min_total"`

	Company config.CompanyConfig `mapstructure:"company"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:  true,
		Timeout:  15 * time.Second,
		FromName: "Winhouse Quote Tool",
		SMTPPort: 587,
		UseTLS:   true,
		Company: config.CompanyConfig{
			Name:    "CÔNG TY TNHH WIN HOUSE",
			Hotline: "0899 789 799",
			Email:   "info@thewinhouse.com",
			Website: "thewinhouse.com",
			Address: "380/17 Nam Kỳ Khởi Nghĩa, Phường Xuân Hòa, TP Hồ Chí Minh, Việt Nam",
			TaxCode: "0315125475",
		},
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp_port must be between 1 and 65535")
	}
	if c.SESEnabled && c.SESFromEmail == "" {
		return fmt.Errorf("ses_from_email is required when SES is enabled")
	}
	if c.SMSEnabled && c.SMSPhoneNumber == "" {
		return fmt.Errorf("sms_phone_number is required when SMS alerts are enabled")
	}
	if c.SMSMinTotal < 0 {
		return fmt.Errorf("sms_min_total cannot be negative")
	}
	return nil
}

// smtpConfigured reports whether the SMTP relay has credentials. Without
// them the notification is rendered and logged only.
func (c *Config) smtpConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig == nil {
		return cfg
	}

	cfg.Enabled = appConfig.Notifications.Email.Enabled
	cfg.NotifyTo = appConfig.Notifications.Email.To

	smtp := appConfig.Integrations.SMTP
	cfg.SMTPHost = smtp.Host
	if smtp.Port > 0 {
		cfg.SMTPPort = smtp.Port
	}
	cfg.SMTPUsername = smtp.Username
	cfg.SMTPPassword = smtp.Password
	cfg.SMTPFrom = smtp.DefaultFrom
	cfg.UseTLS = cfg.SMTPPort != 25

	ses := appConfig.Integrations.AWS.SES
	cfg.SESEnabled = ses.Enabled
	cfg.SESFromEmail = ses.FromEmail

	cfg.SMSEnabled = appConfig.Notifications.SMS.Enabled && appConfig.Integrations.AWS.SNS.Enabled
	cfg.SMSPhoneNumber = appConfig.Notifications.SMS.PhoneNumber
	cfg.SMSSenderID = appConfig.Integrations.AWS.SNS.DefaultSMSSenderID
	cfg.SMSMinTotal = appConfig.Notifications.SMS.MinTotal

	if appConfig.Company.Name != "" {
		cfg.Company = appConfig.Company
	}
	return cfg
}
