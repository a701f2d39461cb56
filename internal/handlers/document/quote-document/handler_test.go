package quotedocument

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(HandlerOptions{Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	h.service.now = func() time.Time {
		return time.Date(2024, 12, 1, 3, 0, 0, 0, time.UTC)
	}
	return h
}

func sampleInput() *Input {
	return &Input{
		QuoteNumber: "WH2412-K7Z0",
		Industry:    "Bất động sản",
		Lead: Customer{
			Name:    "Nguyễn Văn A",
			Email:   "a@example.com",
			Phone:   "0901234567",
			Company: "Công ty ABC",
		},
		Modules: []LineItem{
			{NameVi: "Trang đích", DescriptionVi: "Giới thiệu dự án", BasePrice: 5_000_000, EstimatedDays: 5},
			{NameVi: "Bảo trì", DescriptionVi: "Hỗ trợ kỹ thuật", BasePrice: 0, MonthlyPrice: 1_500_000},
		},
		Calculation: models.QuoteCalculation{
			Subtotal:        10_000_000,
			MonthlyTotal:    1_500_000,
			Discount:        500_000,
			DiscountPercent: 5,
			Total:           9_500_000,
			EstimatedDays:   10,
			ModuleCount:     5,
		},
	}
}

func TestService_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.Equal(t, "Bao-gia-Winhouse-WH2412-K7Z0.html", out.Filename)
	for _, want := range []string{
		"<title>Báo giá WH2412-K7Z0</title>",
		"BÁO GIÁ #WH2412-K7Z0",
		"Ngày: 01/12/2024",
		"<strong>Công ty:</strong> Công ty ABC",
		"<strong>Ngành nghề:</strong> Bất động sản",
		"<td>5 ngày</td>",
		"5.000.000 ₫",
		`<td class="price">-</td>`,
		"Phí triển khai (5 tính năng):",
		"Giảm giá (5%):",
		"-500.000 ₫",
		"Phí duy trì hàng tháng:",
		"9.500.000 ₫",
		"Báo giá có hiệu lực đến: 31/12/2024",
		"Đặt cọc 50% khi ký hợp đồng",
		"50% còn lại khi nghiệm thu",
		"Chưa bao gồm VAT 10%",
		"📞 Hotline: 0899 789 799",
	} {
		assert.Contains(t, out.HTML, want)
	}
}

func TestService_ExecuteWithoutDiscount(t *testing.T) {
	h := createTestHandler(t)
	input := sampleInput()
	input.Lead.Company = ""
	input.Calculation.Discount = 0
	input.Calculation.DiscountPercent = 0
	input.Calculation.MonthlyTotal = 0

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.NotContains(t, out.HTML, "Giảm giá")
	assert.NotContains(t, out.HTML, "Phí duy trì hàng tháng:")
	assert.NotContains(t, out.HTML, "<strong>Công ty:</strong>")
}

func TestLineItems(t *testing.T) {
	items := LineItems([]models.SelectedModule{{
		Module: models.Module{ID: "cms", NameVi: "Quản trị nội dung", BasePrice: 3_000_000, EstimatedDays: 4},
	}})
	require.Len(t, items, 1)
	assert.Equal(t, LineItem{NameVi: "Quản trị nội dung", BasePrice: 3_000_000, EstimatedDays: 4}, items[0])
}

func TestHandler_ServeHTTP(t *testing.T) {
	h := createTestHandler(t)

	t.Run("attachment", func(t *testing.T) {
		body := `{"quoteNumber":"WH2412-K7Z0","industry":"Giáo dục","lead":{"name":"Trần B","email":"b@example.com","phone":"0912345678"},` +
			`"modules":[{"nameVi":"Khoá học","descriptionVi":"LMS","basePrice":12000000,"monthlyPrice":0,"estimatedDays":14}],` +
			`"calculation":{"subtotal":12000000,"monthlyTotal":0,"discount":0,"discountPercent":0,"total":12000000,"estimatedDays":14,"moduleCount":1}}`
		req := httptest.NewRequest(http.MethodPost, "/api/pdf", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="Bao-gia-Winhouse-WH2412-K7Z0.html"`, rec.Header().Get("Content-Disposition"))
		assert.Contains(t, rec.Body.String(), "Trần B")
		assert.Contains(t, rec.Body.String(), "12.000.000 ₫")
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/pdf", strings.NewReader(`{"quoteNumber":"WH2412-K7Z0"}`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/pdf", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to generate PDF")
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pdf", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestConfig(t *testing.T) {
	app := &config.Config{}
	app.Company = config.CompanyConfig{Name: "Winhouse", Hotline: "0901 234 567", Email: "contact@thewinhouse.com", Website: "thewinhouse.com"}

	cfg := createConfigFromAppConfig(app, nil)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0901 234 567", cfg.Company.Hotline)

	bad := DefaultConfig()
	bad.DepositPercent = 120
	_, err := NewHandler(HandlerOptions{CustomConfig: bad, Logger: logger.NewNoOpLogger()})
	assert.Error(t, err)
}
