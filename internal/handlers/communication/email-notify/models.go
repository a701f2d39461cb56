package emailnotify

import (
	"context"

	"winhouse-quote/internal/common/aws"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

type NotificationType string

const (
	TypeLeadNotification NotificationType = "lead_notification"
	TypeQuoteSent        NotificationType = "quote_sent"
	TypeWelcome          NotificationType = "welcome"
)

type Input struct {
	Type NotificationType        `json:"type"`
	To   string                  `json:"to,omitempty"`
	Data models.LeadNotification `json:"data"`
}

type Output struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Preview string `json:"preview"`

	Delivered bool   `json:"-"`
	Channel   string `json:"-"`
	SMSSent   bool   `json:"-"`
}

// Message is a rendered email ready for a Mailer.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTML     string
}

// Mailer delivers one rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

type ServiceDependencies struct {
	Logger logger.Logger
	// Mailer overrides the SES/SMTP selection made from the config.
	Mailer Mailer
	SES    aws.SESAPI
	SNS    aws.SNSAPI
}
