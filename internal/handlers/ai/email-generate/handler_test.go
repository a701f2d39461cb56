package emailgenerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

type stubCompleter struct {
	content string
	err     error
	calls   int
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.calls++
	return s.content, s.err
}

func sampleInput() *Input {
	return &Input{
		IndustryName: "Bất động sản",
		Modules: []ModuleSummary{
			{Name: "Landing Page", Description: "Trang giới thiệu"},
			{Name: "CMS", Description: "Quản trị nội dung"},
			{Name: "Blog", Description: "Tin tức"},
			{Name: "SEO", Description: "Tối ưu tìm kiếm"},
			{Name: "Live Chat", Description: "Chat trực tuyến"},
			{Name: "Booking", Description: "Đặt lịch"},
		},
		TotalAmount: 9_500_000,
		LeadName:    "Nguyễn Văn A",
	}
}

func createTestHandler(t *testing.T, cfg *Config, completer Completer) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{
		CustomConfig: cfg,
		Logger:       logger.NewTestLogger(t),
		Completer:    completer,
	})
	require.NoError(t, err)
	return h
}

const generatedReply = "Đây là 3 email:\n```json\n" +
	`{"emails":[{"title":"Giới thiệu","type":"introduction","subject":"Báo giá","body":"Xin chào"},` +
	`{"title":"Theo dõi","type":"follow-up","subject":"Theo dõi","body":"Hỏi thăm"},` +
	`{"title":"Chốt","type":"closing","subject":"Ưu đãi","body":"Giảm giá"}]}` +
	"\n```"

func TestFallbackEmails(t *testing.T) {
	input := sampleInput()
	emails := FallbackEmails(input)

	require.Len(t, emails, 3)
	assert.Equal(t, []models.EmailType{models.EmailIntroduction, models.EmailFollowUp, models.EmailClosing},
		[]models.EmailType{emails[0].Type, emails[1].Type, emails[2].Type})

	for _, e := range emails {
		assert.Contains(t, e.Body, "Nguyễn Văn A", e.Title)
		assert.Contains(t, e.Body, "9.500.000 ₫", e.Title)
	}

	intro := emails[0]
	assert.Equal(t, "Email giới thiệu", intro.Title)
	assert.Equal(t, "[Winhouse] Báo giá website Bất động sản dành riêng cho Quý khách", intro.Subject)
	assert.Contains(t, intro.Body, "• Live Chat")
	assert.NotContains(t, intro.Body, "• Booking")

	assert.Equal(t, "[Theo dõi] Báo giá website - Nguyễn Văn A", emails[1].Subject)
	assert.Contains(t, emails[1].Body, "doanh nghiệp của Quý khách")

	closing := emails[2]
	assert.Equal(t, "[Ưu đãi cuối] Giảm 15% cho Nguyễn Văn A - Chỉ còn 3 ngày!", closing.Subject)
	assert.Contains(t, closing.Body, "Chi phí sau ưu đãi: 8.075.000 ₫")
	assert.Contains(t, closing.Body, "(Tiết kiệm: 1.425.000 ₫)")
	assert.Contains(t, closing.Body, "GIẢM 15% tổng chi phí")

	t.Run("company name replaces the generic greeting", func(t *testing.T) {
		withCompany := sampleInput()
		withCompany.CompanyName = "Công ty ABC"
		emails := FallbackEmails(withCompany)
		assert.Equal(t, "[Winhouse] Báo giá website Bất động sản dành riêng cho Công ty ABC", emails[0].Subject)
		assert.Equal(t, "[Theo dõi] Báo giá website - Công ty ABC", emails[1].Subject)
		assert.Contains(t, emails[2].Body, "để Công ty ABC sở hữu")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, FallbackEmails(sampleInput()), FallbackEmails(sampleInput()))
	})
}

func TestUserPrompt(t *testing.T) {
	input := sampleInput()
	prompt := UserPrompt(input)

	assert.Contains(t, prompt, "Tên khách hàng: Nguyễn Văn A\n")
	assert.Contains(t, prompt, "Tổng chi phí: 9.500.000 ₫")
	assert.Contains(t, prompt, "- Booking: Đặt lịch\n")
	assert.NotContains(t, prompt, "Công ty:")

	input.CompanyName = "Công ty ABC"
	assert.Contains(t, UserPrompt(input), "Công ty: Công ty ABC\n")
}

func TestParseEmails(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"fenced json", generatedReply, 3, false},
		{"bare json", `{"emails":[{"title":"a","type":"introduction","subject":"s","body":"b"}]}`, 1, false},
		{"prose only", "Xin lỗi, tôi không thể giúp.", 0, true},
		{"broken json", `{"emails":[{"title":}`, 0, true},
		{"no emails", `{"emails":[]}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emails, err := ParseEmails(tt.content)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnparsableContent))
				return
			}
			require.NoError(t, err)
			assert.Len(t, emails, tt.want)
		})
	}
}

func TestService_Execute(t *testing.T) {
	tests := []struct {
		name       string
		completer  *stubCompleter
		wantReason string
		wantTitle  string
	}{
		{
			name:      "generated",
			completer: &stubCompleter{content: generatedReply},
			wantTitle: "Giới thiệu",
		},
		{
			name:       "backend error",
			completer:  &stubCompleter{err: errors.New("503 Service Unavailable")},
			wantReason: reasonBackendError,
			wantTitle:  "Email giới thiệu",
		},
		{
			name:       "unparsable",
			completer:  &stubCompleter{content: "not json at all"},
			wantReason: reasonUnparsable,
			wantTitle:  "Email giới thiệu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t, DefaultConfig(), tt.completer)

			out, err := h.Execute(context.Background(), sampleInput())
			require.NoError(t, err)
			assert.True(t, out.Success)
			assert.Len(t, out.Emails, 3)
			assert.Equal(t, tt.wantReason, out.FallbackReason)
			assert.Equal(t, tt.wantTitle, out.Emails[0].Title)
			assert.Equal(t, 1, tt.completer.calls)
		})
	}

	t.Run("no api key", func(t *testing.T) {
		h := createTestHandler(t, DefaultConfig(), nil)
		out, err := h.Execute(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.Equal(t, reasonUnconfigured, out.FallbackReason)
		assert.Len(t, out.Emails, 3)
	})

	t.Run("disabled ignores completer", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Enabled = false
		stub := &stubCompleter{content: generatedReply}
		h := createTestHandler(t, cfg, stub)

		emails := h.Generate(context.Background(), *sampleInput())
		assert.Len(t, emails, 3)
		assert.Zero(t, stub.calls)
	})

	t.Run("backend error is logged", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		h, err := NewHandler(HandlerOptions{
			CustomConfig: DefaultConfig(),
			Logger:       logger.NewZapAdapter(zap.New(core)),
			Completer:    &stubCompleter{err: errors.New("boom")},
		})
		require.NoError(t, err)

		h.Generate(context.Background(), *sampleInput())
		entries := logs.FilterMessage("email generation failed, using canned emails").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "AI_GENERATION_FAILED", entries[0].ContextMap()["code"])
	})

	t.Run("deadline is logged as timeout", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		h, err := NewHandler(HandlerOptions{
			CustomConfig: DefaultConfig(),
			Logger:       logger.NewZapAdapter(zap.New(core)),
			Completer:    &stubCompleter{err: fmt.Errorf("chat completion: %w", context.DeadlineExceeded)},
		})
		require.NoError(t, err)

		out, err := h.Execute(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.Equal(t, reasonBackendError, out.FallbackReason)

		entries := logs.FilterMessage("email generation failed, using canned emails").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "AI_TIMEOUT", entries[0].ContextMap()["code"])
	})
}

func newOpenAIServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-3.5-turbo", body["model"])
		assert.Equal(t, 0.7, body["temperature"])
		assert.Equal(t, 2000.0, body["max_tokens"])
		messages, _ := body["messages"].([]interface{})
		assert.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"upstream unavailable","type":"server_error"}}`))
			return
		}
		reply, err := json.Marshal(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-3.5-turbo",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]interface{}{"role": "assistant", "content": content},
			}},
		})
		require.NoError(t, err)
		_, _ = w.Write(reply)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestOpenAICompleter(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := newOpenAIServer(t, http.StatusOK, generatedReply)
		cfg := DefaultConfig()
		cfg.APIKey = "sk-test"
		cfg.BaseURL = server.URL
		h := createTestHandler(t, cfg, nil)

		out, err := h.Execute(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.Empty(t, out.FallbackReason)
		require.Len(t, out.Emails, 3)
		assert.Equal(t, "Ưu đãi", out.Emails[2].Subject)
	})

	t.Run("http error falls back to canned emails", func(t *testing.T) {
		server := newOpenAIServer(t, http.StatusInternalServerError, "")
		cfg := DefaultConfig()
		cfg.APIKey = "sk-test"
		cfg.BaseURL = server.URL
		cfg.Timeout = 5 * time.Second
		h := createTestHandler(t, cfg, nil)

		out, err := h.Execute(context.Background(), sampleInput())
		require.NoError(t, err)
		assert.Equal(t, reasonBackendError, out.FallbackReason)
		require.Len(t, out.Emails, 3)
		for _, e := range out.Emails {
			assert.Contains(t, e.Body, "Nguyễn Văn A")
			assert.Contains(t, e.Body, "9.500.000 ₫")
		}
	})
}

func TestHandler_ServeHTTP(t *testing.T) {
	h := createTestHandler(t, DefaultConfig(), nil)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
		wantEmails int
	}{
		{
			name:       "canned emails",
			method:     http.MethodPost,
			body:       `{"industryName":"Giáo dục","modules":[{"name":"LMS","description":"Khoá học"}],"totalAmount":12000000,"leadName":"Trần B"}`,
			wantStatus: http.StatusOK,
			wantEmails: 3,
		},
		{
			name:       "missing lead name",
			method:     http.MethodPost,
			body:       `{"industryName":"Giáo dục","modules":[],"totalAmount":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed",
			method:     http.MethodPost,
			body:       `nope`,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/ai/generate", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantEmails > 0 {
				var out Output
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
				assert.True(t, out.Success)
				assert.Len(t, out.Emails, tt.wantEmails)
				assert.Contains(t, out.Emails[0].Body, "12.000.000 ₫")
			}
		})
	}
}

func TestConfig(t *testing.T) {
	app := &config.Config{}
	app.APIs.OpenAI.APIKey = "sk-live"
	app.APIs.OpenAI.Model = "gpt-4o-mini"
	app.APIs.OpenAI.Timeout = 20000

	cfg := createConfigFromAppConfig(app, nil)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sk-live", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 2000, cfg.MaxTokens)

	bad := DefaultConfig()
	bad.MaxTokens = 0
	_, err := NewHandler(HandlerOptions{CustomConfig: bad, Logger: logger.NewNoOpLogger()})
	assert.Error(t, err)
}
