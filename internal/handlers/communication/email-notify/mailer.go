package emailnotify

import (
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net/mail"
	"net/smtp"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"

	"winhouse-quote/internal/common/aws"
)

type sesMailer struct {
	client aws.SESAPI
}

// NewSESMailer sends through Amazon SES.
func NewSESMailer(client aws.SESAPI) Mailer {
	return &sesMailer{client: client}
}

func (m *sesMailer) Name() string { return "ses" }

func (m *sesMailer) Send(ctx context.Context, msg Message) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: awsv2.String(formatAddress(msg.FromName, msg.From)),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data:    awsv2.String(msg.Subject),
				Charset: awsv2.String("UTF-8"),
			},
			Body: &sestypes.Body{
				Html: &sestypes.Content{
					Data:    awsv2.String(msg.HTML),
					Charset: awsv2.String("UTF-8"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	useTLS   bool
}

// NewSMTPMailer sends through an authenticated SMTP relay.
func NewSMTPMailer(cfg *Config) Mailer {
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		useTLS:   cfg.UseTLS,
	}
}

func (m *smtpMailer) Name() string { return "smtp" }

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	body := []byte(buildMessage(msg))

	errCh := make(chan error, 1)
	go func() {
		if m.useTLS {
			errCh <- m.sendWithTLS(addr, auth, msg.From, []string{msg.To}, body)
			return
		}
		errCh <- smtp.SendMail(addr, auth, msg.From, []string{msg.To}, body)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func (m *smtpMailer) sendWithTLS(addr string, auth smtp.Auth, from string, to []string, body []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err = client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return client.Quit()
}

// buildMessage renders the headers and HTML body. The subject is Q-encoded.
func buildMessage(msg Message) string {
	var b strings.Builder
	b.WriteString("From: " + formatAddress(msg.FromName, msg.From) + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return b.String()
}

func formatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}
