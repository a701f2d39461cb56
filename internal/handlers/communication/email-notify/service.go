package emailnotify

import (
	"context"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"winhouse-quote/internal/common/aws"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/metrics"
	"winhouse-quote/internal/format"
)

type Service struct {
	config *Config
	logger logger.Logger
	mailer Mailer
	from   string
	sns    aws.SNSAPI
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	s := &Service{
		config: config,
		logger: deps.Logger,
		mailer: deps.Mailer,
		sns:    deps.SNS,
		now:    time.Now,
	}

	switch {
	case s.mailer != nil:
	case config.SESEnabled && deps.SES != nil:
		s.mailer = NewSESMailer(deps.SES)
	case config.smtpConfigured():
		s.mailer = NewSMTPMailer(config)
	}

	s.from = firstNonEmpty(config.SMTPFrom, config.SMTPUsername, config.Company.Email)
	if s.mailer != nil && s.mailer.Name() == "ses" {
		s.from = config.SESFromEmail
	}
	return s
}

// Execute renders the notification and tries to deliver it. Delivery
// failures are logged; the rendered preview is returned either way.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	html, err := Render(input.Data, s.config.Company, s.now())
	if err != nil {
		return nil, err
	}

	output := &Output{
		Success: true,
		Message: "Email processed",
		Preview: html,
	}

	if s.mailer == nil {
		s.logger.Info("email delivery not configured, notification rendered only", map[string]interface{}{
			"type": input.Type,
			"lead": input.Data.Email,
		})
	} else {
		msg := Message{
			FromName: s.config.FromName,
			From:     s.from,
			To:       firstNonEmpty(input.To, s.config.NotifyTo, s.config.Company.Email),
			Subject:  Subject(input.Data),
			HTML:     html,
		}

		start := time.Now()
		err := s.mailer.Send(ctx, msg)
		metrics.ObserveCollaborator("email_"+s.mailer.Name(), start, err)
		if err != nil {
			s.logger.Error("notification email failed", map[string]interface{}{
				"channel": s.mailer.Name(),
				"to":      msg.To,
				"error":   err.Error(),
			})
		} else {
			output.Delivered = true
			output.Channel = s.mailer.Name()
			s.logger.Info("notification email sent", map[string]interface{}{
				"channel": s.mailer.Name(),
				"to":      msg.To,
				"subject": msg.Subject,
			})
		}
	}

	if input.Type == TypeLeadNotification {
		output.SMSSent = s.sendSMSAlert(ctx, input)
	}
	return output, nil
}

func (s *Service) sendSMSAlert(ctx context.Context, input *Input) bool {
	if !s.config.SMSEnabled || s.sns == nil {
		return false
	}
	if input.Data.TotalAmount < s.config.SMSMinTotal {
		return false
	}

	params := &sns.PublishInput{
		PhoneNumber: awsv2.String(s.config.SMSPhoneNumber),
		Message:     awsv2.String(SMSText(input)),
	}
	if s.config.SMSSenderID != "" {
		params.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    awsv2.String("String"),
				StringValue: awsv2.String(s.config.SMSSenderID),
			},
		}
	}

	start := time.Now()
	_, err := s.sns.Publish(ctx, params)
	metrics.ObserveCollaborator("sms", start, err)
	if err != nil {
		s.logger.Error("lead SMS alert failed", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}
	return true
}

// SMSText is the short alert sent to the sales hotline.
func SMSText(input *Input) string {
	lead := input.Data
	return fmt.Sprintf("[Winhouse] Lead mới: %s - %s - %s", lead.Name, format.Phone(lead.Phone), format.Currency(lead.TotalAmount))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
