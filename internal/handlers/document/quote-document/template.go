package quotedocument

import (
	"html/template"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/format"
)

type documentData struct {
	Input
	Company        config.CompanyConfig
	IssuedOn       string
	ValidUntil     string
	DepositPercent int
	BalancePercent int
	VATPercent     int
}

var documentTemplate = template.Must(template.New("quote").Funcs(template.FuncMap{
	"currency": format.Currency,
	"monthly": func(amount int64) string {
		if amount <= 0 {
			return "-"
		}
		return format.Currency(amount)
	},
}).Parse(documentHTML))

const documentHTML = `<!DOCTYPE html>
<html lang="vi">
<head>
  <meta charset="UTF-8">
  <title>Báo giá {{.QuoteNumber}}</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: 'Segoe UI', Arial, sans-serif; color: #334155; padding: 40px; max-width: 800px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; border-bottom: 3px solid #3b82f6; padding-bottom: 20px; margin-bottom: 30px; }
    .logo { font-size: 28px; font-weight: 700; color: #3b82f6; }
    .logo span { color: #1e293b; }
    .quote-info { text-align: right; }
    .quote-number { font-size: 24px; font-weight: 700; color: #1e293b; }
    .quote-date { color: #64748b; }
    .section { margin-bottom: 30px; }
    .section-title { font-size: 18px; font-weight: 600; color: #1e293b; margin-bottom: 15px; }
    .client-info { background: #f8fafc; padding: 20px; border-radius: 8px; }
    .client-info p { margin: 5px 0; }
    .client-info strong { color: #3b82f6; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 12px 15px; text-align: left; border-bottom: 1px solid #e2e8f0; }
    th { background: #f1f5f9; font-weight: 600; }
    td { font-size: 14px; }
    .price { text-align: right; font-weight: 500; }
    .module-name { font-weight: 500; color: #1e293b; }
    .module-desc { font-size: 12px; color: #64748b; }
    .summary { background: #1e293b; color: white; padding: 25px; border-radius: 8px; }
    .summary-row { display: flex; justify-content: space-between; padding: 6px 0; }
    .summary-row.total { font-size: 20px; font-weight: 700; border-top: 1px solid #475569; margin-top: 10px; padding-top: 15px; }
    .discount { color: #86efac; }
    .validity { background: #fef3c7; padding: 15px; border-radius: 8px; margin: 20px 0; text-align: center; }
    .footer { margin-top: 30px; color: #64748b; font-size: 14px; }
    .footer-grid { display: grid; grid-template-columns: 1fr 1fr; gap: 20px; }
    .footer-section h4 { color: #1e293b; margin-bottom: 10px; }
    @media print {
      body { padding: 20px; }
    }
  </style>
</head>
<body>
  <div class="header">
    <div>
      <div class="logo">Win<span>house</span></div>
    </div>
    <div class="quote-info">
      <div class="quote-number">BÁO GIÁ #{{.QuoteNumber}}</div>
      <div class="quote-date">Ngày: {{.IssuedOn}}</div>
    </div>
  </div>

  <div class="section">
    <div class="section-title">Thông tin khách hàng</div>
    <div class="client-info">
      <p><strong>Tên:</strong> {{.Lead.Name}}</p>
{{- if .Lead.Company}}
      <p><strong>Công ty:</strong> {{.Lead.Company}}</p>
{{- end}}
      <p><strong>Email:</strong> {{.Lead.Email}}</p>
      <p><strong>Điện thoại:</strong> {{.Lead.Phone}}</p>
      <p><strong>Ngành nghề:</strong> {{.Industry}}</p>
    </div>
  </div>

  <div class="section">
    <div class="section-title">Chi tiết dịch vụ</div>
    <table>
      <thead>
        <tr>
          <th style="width: 50%">Tính năng</th>
          <th>Thời gian</th>
          <th class="price">Triển khai</th>
          <th class="price">Duy trì/tháng</th>
        </tr>
      </thead>
      <tbody>
{{- range .Modules}}
        <tr>
          <td>
            <div class="module-name">{{.NameVi}}</div>
            <div class="module-desc">{{.DescriptionVi}}</div>
          </td>
          <td>{{.EstimatedDays}} ngày</td>
          <td class="price">{{currency .BasePrice}}</td>
          <td class="price">{{monthly .MonthlyPrice}}</td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </div>

  <div class="summary">
    <div class="summary-row">
      <span>Phí triển khai ({{.Calculation.ModuleCount}} tính năng):</span>
      <span>{{currency .Calculation.Subtotal}}</span>
    </div>
{{- if gt .Calculation.Discount 0}}
    <div class="summary-row discount">
      <span>Giảm giá ({{.Calculation.DiscountPercent}}%):</span>
      <span>-{{currency .Calculation.Discount}}</span>
    </div>
{{- end}}
{{- if gt .Calculation.MonthlyTotal 0}}
    <div class="summary-row">
      <span>Phí duy trì hàng tháng:</span>
      <span>{{currency .Calculation.MonthlyTotal}}</span>
    </div>
{{- end}}
    <div class="summary-row total">
      <span>TỔNG CỘNG:</span>
      <span>{{currency .Calculation.Total}}</span>
    </div>
  </div>

  <div class="validity">
    ⏰ Báo giá có hiệu lực đến: {{.ValidUntil}}
  </div>

  <div class="footer">
    <div class="footer-grid">
      <div class="footer-section">
        <h4>Điều khoản thanh toán</h4>
        <p>• Đặt cọc {{.DepositPercent}}% khi ký hợp đồng</p>
        <p>• {{.BalancePercent}}% còn lại khi nghiệm thu</p>
        <p>• Chưa bao gồm VAT {{.VATPercent}}%</p>
      </div>
      <div class="footer-section">
        <h4>Liên hệ Winhouse</h4>
        <p>📞 Hotline: {{.Company.Hotline}}</p>
        <p>📧 Email: {{.Company.Email}}</p>
        <p>🌐 Web: {{.Company.Website}}</p>
      </div>
    </div>
    <p style="margin-top: 20px; text-align: center;">
      Cảm ơn Quý khách đã tin tưởng Winhouse! 🙏
    </p>
  </div>
</body>
</html>
`
