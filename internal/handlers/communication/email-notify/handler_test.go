package emailnotify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

type mockMailer struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *mockMailer) Name() string { return "mock" }

func (m *mockMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	return m.PublishFunc(ctx, params, optFns...)
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.NotifyTo = "sales@thewinhouse.com"
	return cfg
}

func createTestHandler(t *testing.T, cfg *Config, opts HandlerOptions) *Handler {
	t.Helper()
	opts.CustomConfig = cfg
	if opts.Logger == nil {
		opts.Logger = logger.NewTestLogger(t)
	}
	h, err := NewHandler(opts)
	require.NoError(t, err)
	return h
}

func TestRender(t *testing.T) {
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)
	company := DefaultConfig().Company

	t.Run("full lead", func(t *testing.T) {
		html, err := Render(SampleLead(), company, now)
		require.NoError(t, err)

		for _, want := range []string{
			"Khách hàng <strong style=\"color: #4464AA;\">Nguyễn Văn A</strong>",
			"mailto:test@example.com",
			"Công ty:",
			"Công ty ABC",
			"Bất động sản",
			"20 - 50 triệu",
			"Sang trọng",
			"21 ngày",
			"TÍNH NĂNG ĐÃ CHỌN (4)",
			"<li style=\"padding: 8px 0; border-bottom: 1px solid #edf2f7;\">SEO Optimization</li>",
			"35.000.000 ₫",
			"Phí duy trì/tháng:",
			"1.200.000 ₫",
			"📞 Gọi ngay: 0899 789 799",
			"MST: 0315125475",
			"&copy; 2024 Winhouse. All rights reserved.",
			"WH2412-DEMO",
		} {
			assert.Contains(t, html, want)
		}
	})

	t.Run("sparse lead falls back to dashes", func(t *testing.T) {
		html, err := Render(models.LeadNotification{
			Name:  "Trần B",
			Email: "b@example.com",
			Phone: "0912345678",
		}, company, now)
		require.NoError(t, err)

		assert.NotContains(t, html, "Công ty:")
		assert.NotContains(t, html, "TÍNH NĂNG ĐÃ CHỌN")
		assert.NotContains(t, html, "Phí duy trì/tháng:")
		assert.NotContains(t, html, "Mã báo giá")
		assert.GreaterOrEqual(t, strings.Count(html, ">---<"), 5)
	})

	t.Run("lead text is escaped", func(t *testing.T) {
		html, err := Render(models.LeadNotification{
			Name:  "<script>alert(1)</script>",
			Email: "x@example.com",
			Phone: "0912345678",
		}, company, now)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "[Quote Tool] Lead mới: An - Bất động sản",
		Subject(models.LeadNotification{Name: "An", Industry: "Bất động sản"}))
	assert.Equal(t, "[Quote Tool] Lead mới: An - Chưa xác định",
		Subject(models.LeadNotification{Name: "An"}))
}

func TestHandler_Execute(t *testing.T) {
	t.Run("delivers to the configured inbox", func(t *testing.T) {
		mailer := &mockMailer{}
		h := createTestHandler(t, testConfig(), HandlerOptions{Mailer: mailer})

		out, err := h.Execute(context.Background(), &Input{Data: SampleLead()})
		require.NoError(t, err)

		assert.True(t, out.Success)
		assert.Equal(t, "Email processed", out.Message)
		assert.True(t, out.Delivered)
		assert.Equal(t, "mock", out.Channel)
		require.Len(t, mailer.sent, 1)
		msg := mailer.sent[0]
		assert.Equal(t, "sales@thewinhouse.com", msg.To)
		assert.Equal(t, "Winhouse Quote Tool", msg.FromName)
		assert.Equal(t, "[Quote Tool] Lead mới: Nguyễn Văn A - Bất động sản", msg.Subject)
		assert.Equal(t, out.Preview, msg.HTML)
	})

	t.Run("explicit recipient wins", func(t *testing.T) {
		mailer := &mockMailer{}
		h := createTestHandler(t, testConfig(), HandlerOptions{Mailer: mailer})

		_, err := h.Execute(context.Background(), &Input{To: "boss@example.com", Data: SampleLead()})
		require.NoError(t, err)
		assert.Equal(t, "boss@example.com", mailer.sent[0].To)
	})

	t.Run("send failure is swallowed and logged", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		mailer := &mockMailer{err: errors.New("connection refused")}
		h := createTestHandler(t, testConfig(), HandlerOptions{
			Mailer: mailer,
			Logger: logger.NewZapAdapter(zap.New(core)),
		})

		out, err := h.Execute(context.Background(), &Input{Data: SampleLead()})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.False(t, out.Delivered)
		assert.NotEmpty(t, out.Preview)
		assert.Equal(t, 1, logs.FilterMessage("notification email failed").Len())
	})

	t.Run("no transport renders only", func(t *testing.T) {
		h := createTestHandler(t, testConfig(), HandlerOptions{})

		out, err := h.Execute(context.Background(), &Input{Data: SampleLead()})
		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.False(t, out.Delivered)
		assert.Contains(t, out.Preview, "Nguyễn Văn A")
	})

	t.Run("disabled handler still renders", func(t *testing.T) {
		cfg := testConfig()
		cfg.Enabled = false
		mailer := &mockMailer{}
		h := createTestHandler(t, cfg, HandlerOptions{Mailer: mailer})

		out, err := h.Execute(context.Background(), &Input{Data: SampleLead()})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Preview)
		assert.Empty(t, mailer.sent)
	})
}

func TestHandler_SES(t *testing.T) {
	var captured *ses.SendEmailInput
	client := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			captured = params
			return &ses.SendEmailOutput{}, nil
		},
	}

	cfg := testConfig()
	cfg.SESEnabled = true
	cfg.SESFromEmail = "noreply@thewinhouse.com"
	h := createTestHandler(t, cfg, HandlerOptions{SESClient: client})

	out, err := h.Execute(context.Background(), &Input{Data: SampleLead()})
	require.NoError(t, err)
	assert.Equal(t, "ses", out.Channel)

	require.NotNil(t, captured)
	assert.Equal(t, `"Winhouse Quote Tool" <noreply@thewinhouse.com>`, *captured.Source)
	assert.Equal(t, []string{"sales@thewinhouse.com"}, captured.Destination.ToAddresses)
	assert.Equal(t, "[Quote Tool] Lead mới: Nguyễn Văn A - Bất động sản", *captured.Message.Subject.Data)
	assert.Equal(t, "UTF-8", *captured.Message.Body.Html.Charset)
}

func TestHandler_SMSAlert(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		typ     NotificationType
		wantSMS bool
	}{
		{"above threshold", 35_000_000, TypeLeadNotification, true},
		{"at threshold", 20_000_000, TypeLeadNotification, true},
		{"below threshold", 9_500_000, TypeLeadNotification, false},
		{"not a lead notification", 35_000_000, TypeWelcome, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published []*sns.PublishInput
			client := &MockSNSService{
				PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
					published = append(published, params)
					return &sns.PublishOutput{}, nil
				},
			}

			cfg := testConfig()
			cfg.SMSEnabled = true
			cfg.SMSPhoneNumber = "+84899789799"
			cfg.SMSSenderID = "Winhouse"
			cfg.SMSMinTotal = 20_000_000
			h := createTestHandler(t, cfg, HandlerOptions{Mailer: &mockMailer{}, SNSClient: client})

			lead := SampleLead()
			lead.TotalAmount = tt.total
			out, err := h.Execute(context.Background(), &Input{Type: tt.typ, Data: lead})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSMS, out.SMSSent)

			if !tt.wantSMS {
				assert.Empty(t, published)
				return
			}
			require.Len(t, published, 1)
			assert.Equal(t, "+84899789799", *published[0].PhoneNumber)
			assert.Contains(t, *published[0].Message, "Nguyễn Văn A")
			assert.Equal(t, "Winhouse", *published[0].MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue)
		})
	}
}

func TestHandler_SMSFailureIsSwallowed(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	client := &MockSNSService{
		PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	cfg := testConfig()
	cfg.SMSEnabled = true
	cfg.SMSPhoneNumber = "+84899789799"
	h := createTestHandler(t, cfg, HandlerOptions{
		Mailer:    &mockMailer{},
		SNSClient: client,
		Logger:    logger.NewZapAdapter(zap.New(core)),
	})

	require.NoError(t, h.Notify(context.Background(), SampleLead()))
	assert.Equal(t, 1, logs.FilterMessage("lead SMS alert failed").Len())
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		check      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "preview",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), "Nguyễn Văn A")
				assert.Contains(t, rec.Body.String(), "TÍNH NĂNG ĐÃ CHỌN (4)")
			},
		},
		{
			name:       "notification",
			method:     http.MethodPost,
			body:       `{"type":"lead_notification","data":{"name":"Lê C","email":"c@example.com","phone":"0987654321","totalAmount":9500000,"modules":["Landing Page"]}}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Email processed", body["message"])
				assert.Contains(t, body["preview"], "9.500.000 ₫")
				assert.Contains(t, body["preview"], "Lê C")
			},
		},
		{
			name:       "missing data",
			method:     http.MethodPost,
			body:       `{"type":"lead_notification"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown type",
			method:     http.MethodPost,
			body:       `{"type":"spam","data":{"name":"A","email":"a@example.com","phone":"0987654321"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			method:     http.MethodPost,
			body:       `{"type":`,
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Failed to process email")
			},
		},
		{
			name:       "wrong method",
			method:     http.MethodDelete,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	h := createTestHandler(t, testConfig(), HandlerOptions{Mailer: &mockMailer{}})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/email", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestBuildMessage(t *testing.T) {
	raw := buildMessage(Message{
		FromName: "Winhouse Quote Tool",
		From:     "bot@thewinhouse.com",
		To:       "sales@thewinhouse.com",
		Subject:  "[Quote Tool] Lead mới: An - Chưa xác định",
		HTML:     "<p>hi</p>",
	})

	assert.Contains(t, raw, "From: \"Winhouse Quote Tool\" <bot@thewinhouse.com>\r\n")
	assert.Contains(t, raw, "Subject: =?utf-8?q?")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>hi</p>")
}

func TestConfig(t *testing.T) {
	t.Run("from app config", func(t *testing.T) {
		app := &config.Config{}
		app.Notifications.Email.Enabled = true
		app.Notifications.Email.To = "sales@thewinhouse.com"
		app.Notifications.SMS.Enabled = true
		app.Notifications.SMS.PhoneNumber = "+84899789799"
		app.Notifications.SMS.MinTotal = 50_000_000
		app.Integrations.AWS.SNS.Enabled = true
		app.Integrations.SMTP.Host = "smtp.example.com"
		app.Integrations.SMTP.Port = 465
		app.Integrations.SMTP.Username = "bot@thewinhouse.com"
		app.Integrations.SMTP.Password = "secret"
		app.Company.Name = "Winhouse Test"

		cfg := createConfigFromAppConfig(app, nil)
		require.NoError(t, cfg.Validate())
		assert.True(t, cfg.Enabled)
		assert.True(t, cfg.smtpConfigured())
		assert.Equal(t, 465, cfg.SMTPPort)
		assert.True(t, cfg.SMSEnabled)
		assert.Equal(t, int64(50_000_000), cfg.SMSMinTotal)
		assert.Equal(t, "Winhouse Test", cfg.Company.Name)
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SESEnabled = true
		_, err := NewHandler(HandlerOptions{CustomConfig: cfg, Logger: logger.NewNoOpLogger()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration for email-notify")
	})
}
