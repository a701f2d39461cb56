package leadsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"winhouse-quote/internal/common/config"
	commonerrors "winhouse-quote/internal/common/errors"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/zoho"
	"winhouse-quote/internal/models"
)

type MockCRMClient struct {
	mock.Mock
}

func (m *MockCRMClient) SearchLeads(ctx context.Context, email string) ([]zoho.Lead, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]zoho.Lead), args.Error(1)
}

func (m *MockCRMClient) CreateLead(ctx context.Context, lead *zoho.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockCRMClient) UpdateLead(ctx context.Context, leadID string, lead *zoho.Lead) error {
	args := m.Called(ctx, leadID, lead)
	return args.Error(0)
}

func enabledConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.OAuthToken = "tok"
	return cfg
}

func createTestHandler(t *testing.T, cfg *Config, client CRMClient) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		Logger:       logger.NewTestLogger(t),
		Client:       client,
	})
	require.NoError(t, err)
	return h
}

func sampleInput() *Input {
	return &Input{
		Lead: models.LeadFormData{
			Name:        "Nguyễn Văn A",
			Email:       "a@example.com",
			Phone:       "0901234567",
			Company:     "Công ty ABC",
			Role:        models.RoleOwner,
			Notes:       "Cần gấp",
			AcceptTerms: true,
		},
		QuoteNumber: "WH2412-K7Z0",
		Industry:    "Bất động sản",
		TotalAmount: 9_500_000,
		Modules:     []string{"Landing Page", "CMS"},
	}
}

func TestHandler_Execute(t *testing.T) {
	t.Run("creates a new lead", func(t *testing.T) {
		client := new(MockCRMClient)
		client.On("SearchLeads", mock.Anything, "a@example.com").Return([]zoho.Lead{}, nil)
		client.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *zoho.Lead) bool {
			return l.LastName == "Nguyễn" && l.FirstName == "Văn A" &&
				l.Designation == "Chủ doanh nghiệp / Giám đốc" && l.Source == "Quote Tool"
		})).Return("4150868000001", nil)

		h := createTestHandler(t, enabledConfig(), client)
		out, err := h.Execute(context.Background(), sampleInput())

		require.NoError(t, err)
		assert.True(t, out.Created)
		assert.Equal(t, "4150868000001", out.LeadID)
		assert.Equal(t, "zoho", out.CRMProvider)
		client.AssertExpectations(t)
	})

	t.Run("updates an existing lead", func(t *testing.T) {
		client := new(MockCRMClient)
		client.On("SearchLeads", mock.Anything, "a@example.com").Return([]zoho.Lead{{ID: "77"}}, nil)
		client.On("UpdateLead", mock.Anything, "77", mock.Anything).Return(nil)

		h := createTestHandler(t, enabledConfig(), client)
		out, err := h.Execute(context.Background(), sampleInput())

		require.NoError(t, err)
		assert.False(t, out.Created)
		assert.Equal(t, "77", out.LeadID)
		client.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
	})

	t.Run("search failure still creates", func(t *testing.T) {
		client := new(MockCRMClient)
		client.On("SearchLeads", mock.Anything, "a@example.com").Return(nil, errors.New("timeout"))
		client.On("CreateLead", mock.Anything, mock.Anything).Return("99", nil)

		h := createTestHandler(t, enabledConfig(), client)
		out, err := h.Execute(context.Background(), sampleInput())

		require.NoError(t, err)
		assert.Equal(t, "99", out.LeadID)
	})

	t.Run("create failure is retryable", func(t *testing.T) {
		client := new(MockCRMClient)
		client.On("SearchLeads", mock.Anything, mock.Anything).Return([]zoho.Lead{}, nil)
		client.On("CreateLead", mock.Anything, mock.Anything).Return("", errors.New("502"))

		h := createTestHandler(t, enabledConfig(), client)
		_, err := h.Execute(context.Background(), sampleInput())

		require.Error(t, err)
		stdErr := commonerrors.AsStandardError(err)
		assert.Equal(t, commonerrors.ErrCodeCRMSyncFailed, stdErr.Code)
		assert.True(t, stdErr.Retryable)
	})

	t.Run("disabled skips the CRM", func(t *testing.T) {
		client := new(MockCRMClient)
		h := createTestHandler(t, DefaultConfig(), client)

		out, err := h.Execute(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.Equal(t, "CRM sync disabled", out.Message)
		client.AssertNotCalled(t, "SearchLeads", mock.Anything, mock.Anything)
	})
}

func TestHandler_ExecuteAgainstZoho(t *testing.T) {
	var created zoho.Lead
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Zoho-oauthtoken tok", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			var body struct {
				Data []zoho.Lead `json:"data"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			created = body.Data[0]
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"data":[{"code":"SUCCESS","status":"success","details":{"id":"555"}}]}`))
		}
	}))
	defer server.Close()

	cfg := enabledConfig()
	cfg.BaseURL = server.URL
	cfg.Timeout = time.Second
	h := createTestHandler(t, cfg, nil)

	out, err := h.Execute(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "555", out.LeadID)
	assert.Equal(t, "a@example.com", created.Email)
	assert.Contains(t, created.Description, "Mã báo giá: WH2412-K7Z0")
	assert.Contains(t, created.Description, "Tổng chi phí: 9.500.000 ₫")
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		full, last, first string
	}{
		{"Nguyễn Văn A", "Nguyễn", "Văn A"},
		{"  Trần   Thị  Bích ", "Trần", "Thị Bích"},
		{"Madonna", "Madonna", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		last, first := SplitName(tt.full)
		assert.Equal(t, tt.last, last, tt.full)
		assert.Equal(t, tt.first, first, tt.full)
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t,
		"Mã báo giá: WH2412-K7Z0\nNgành nghề: Bất động sản\nTổng chi phí: 9.500.000 ₫\nTính năng (2): Landing Page, CMS\nGhi chú: Cần gấp",
		Description(sampleInput()))
	assert.Empty(t, Description(&Input{}))
}

func TestConfig(t *testing.T) {
	app := &config.Config{}
	app.Integrations.Zoho.Enabled = true
	app.Integrations.Zoho.AuthToken = "tok"
	app.Integrations.Zoho.Timeout = 5000

	cfg := createConfigFromAppConfig(app, nil)
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "https://www.zohoapis.com/crm/v2", cfg.BaseURL)

	app.Integrations.Zoho.AuthToken = ""
	_, err := NewHandler(HandlerOptions{AppConfig: app, Logger: logger.NewNoOpLogger()})
	assert.Error(t, err)
}
