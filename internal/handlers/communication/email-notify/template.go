package emailnotify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"winhouse-quote/internal/common/config"
	"winhouse-quote/internal/format"
	"winhouse-quote/internal/models"
)

type templateData struct {
	Lead    models.LeadNotification
	Company config.CompanyConfig
	Year    int
}

var funcs = template.FuncMap{
	"currency": format.Currency,
	"days":     format.Days,
	"orDash": func(s string) string {
		if s == "" {
			return "---"
		}
		return s
	},
}

var leadTemplate = template.Must(template.New("lead").Funcs(funcs).Parse(leadHTML))

// Render builds the lead notification HTML.
func Render(lead models.LeadNotification, company config.CompanyConfig, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := leadTemplate.Execute(&buf, templateData{
		Lead:    lead,
		Company: company,
		Year:    now.In(format.Vietnam).Year(),
	})
	if err != nil {
		return "", fmt.Errorf("render lead notification: %w", err)
	}
	return buf.String(), nil
}

// Subject is the subject line of the lead notification.
func Subject(lead models.LeadNotification) string {
	industry := lead.Industry
	if industry == "" {
		industry = "Chưa xác định"
	}
	return fmt.Sprintf("[Quote Tool] Lead mới: %s - %s", lead.Name, industry)
}

// SampleLead feeds the preview endpoint.
func SampleLead() models.LeadNotification {
	return models.LeadNotification{
		Name:          "Nguyễn Văn A",
		Email:         "test@example.com",
		Phone:         "0899 789 799",
		Company:       "Công ty ABC",
		Industry:      "Bất động sản",
		Budget:        "20 - 50 triệu",
		Style:         "Sang trọng",
		Modules:       []string{"Landing Page", "CMS", "SEO Optimization", "Live Chat"},
		TotalAmount:   35_000_000,
		MonthlyAmount: 1_200_000,
		EstimatedDays: 21,
		QuoteNumber:   "WH2412-DEMO",
	}
}

const leadHTML = `<!doctype html>
<html lang="vi">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>New Lead - Winhouse Quote Tool</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f0f4f8; font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;">
  <table border="0" cellpadding="0" cellspacing="0" width="100%" style="background-color: #f0f4f8; padding: 40px 0;">
    <tr>
      <td align="center">
        <table border="0" cellpadding="0" cellspacing="0" width="600" style="background-color: #ffffff; border-radius: 16px; overflow: hidden;">
          <tr>
            <td align="center" style="padding: 40px 40px 30px 40px; background: linear-gradient(135deg, #4464AA 0%, #6B8DD6 100%);">
              <div style="color: #ffffff; font-size: 36px; font-weight: 800;">Winhouse<span style="color: #E07038;">.</span></div>
              <div style="color: rgba(255,255,255,0.8); font-size: 14px; margin-top: 8px;">Quote Tool - New Lead Notification</div>
            </td>
          </tr>
          <tr>
            <td style="padding: 40px;">
              <div style="color: #2d3748; font-size: 20px; font-weight: 700; margin-bottom: 10px;">🎉 Lead mới từ Quote Tool!</div>
              <div style="color: #718096; font-size: 16px; line-height: 1.6; margin-bottom: 30px;">
                Khách hàng <strong style="color: #4464AA;">{{.Lead.Name}}</strong> vừa hoàn thành wizard và gửi yêu cầu báo giá.
              </div>
{{- if .Lead.QuoteNumber}}
              <div style="color: #718096; font-size: 14px; margin-bottom: 20px;">Mã báo giá: <strong>{{.Lead.QuoteNumber}}</strong></div>
{{- end}}

              <div style="background-color: #f8fafc; border-radius: 12px; padding: 25px; margin-bottom: 25px; border-left: 4px solid #4464AA;">
                <div style="color: #4464AA; font-size: 12px; font-weight: 700; letter-spacing: 1px; margin-bottom: 15px;">THÔNG TIN KHÁCH HÀNG</div>
                <table border="0" cellpadding="0" cellspacing="0" width="100%">
                  <tr>
                    <td width="35%" style="color: #718096; font-size: 14px; padding: 8px 0;">Họ và tên:</td>
                    <td style="color: #2d3748; font-size: 15px; font-weight: 600; padding: 8px 0;">{{.Lead.Name}}</td>
                  </tr>
                  <tr>
                    <td style="color: #718096; font-size: 14px; padding: 8px 0;">Email:</td>
                    <td style="padding: 8px 0;"><a href="mailto:{{.Lead.Email}}" style="color: #4464AA; font-weight: 600; text-decoration: none;">{{.Lead.Email}}</a></td>
                  </tr>
                  <tr>
                    <td style="color: #718096; font-size: 14px; padding: 8px 0;">Điện thoại:</td>
                    <td style="padding: 8px 0;"><a href="tel:{{.Lead.Phone}}" style="color: #1D6F41; font-weight: 600; text-decoration: none;">{{.Lead.Phone}}</a></td>
                  </tr>
{{- if .Lead.Company}}
                  <tr>
                    <td style="color: #718096; font-size: 14px; padding: 8px 0;">Công ty:</td>
                    <td style="color: #2d3748; font-size: 15px; font-weight: 600; padding: 8px 0;">{{.Lead.Company}}</td>
                  </tr>
{{- end}}
                </table>
              </div>

              <div style="margin-bottom: 25px;">
                <div style="color: #4464AA; font-size: 12px; font-weight: 700; letter-spacing: 1px; margin-bottom: 15px;">TỔNG QUAN DỰ ÁN</div>
                <table border="0" cellpadding="0" cellspacing="0" width="100%" style="border: 1px solid #e2e8f0;">
                  <tr>
                    <td style="padding: 15px 20px; width: 50%;">
                      <div style="color: #718096; font-size: 12px;">Ngành nghề</div>
                      <div style="color: #2d3748; font-weight: 700; font-size: 16px;">{{orDash .Lead.Industry}}</div>
                    </td>
                    <td style="padding: 15px 20px; width: 50%;">
                      <div style="color: #718096; font-size: 12px;">Ngân sách</div>
                      <div style="color: #2d3748; font-weight: 700; font-size: 16px;">{{orDash .Lead.Budget}}</div>
                    </td>
                  </tr>
                  <tr>
                    <td style="padding: 15px 20px;">
                      <div style="color: #718096; font-size: 12px;">Phong cách</div>
                      <div style="color: #2d3748; font-weight: 700; font-size: 16px;">{{orDash .Lead.Style}}</div>
                    </td>
                    <td style="padding: 15px 20px;">
                      <div style="color: #718096; font-size: 12px;">Thời gian dự kiến</div>
                      <div style="color: #2d3748; font-weight: 700; font-size: 16px;">{{days .Lead.EstimatedDays}}</div>
                    </td>
                  </tr>
                </table>
              </div>
{{- if .Lead.Modules}}

              <div style="margin-bottom: 25px;">
                <div style="color: #4464AA; font-size: 12px; font-weight: 700; letter-spacing: 1px; margin-bottom: 15px;">TÍNH NĂNG ĐÃ CHỌN ({{len .Lead.Modules}})</div>
                <div style="background-color: #fff9f5; border: 1px dashed #E07038; border-radius: 12px; padding: 20px;">
                  <ul style="margin: 0; padding-left: 20px; color: #2d3748; font-size: 14px; line-height: 1.8;">
{{- range .Lead.Modules}}
                    <li style="padding: 8px 0; border-bottom: 1px solid #edf2f7;">{{.}}</li>
{{- end}}
                  </ul>
                </div>
              </div>
{{- end}}

              <div style="background: #4464AA; border-radius: 12px; padding: 25px; color: white; margin-bottom: 25px;">
                <div style="margin-bottom: 15px;">
                  <span style="font-size: 14px;">Tổng phí triển khai:</span>
                  <span style="font-size: 18px; font-weight: 700;">{{if .Lead.TotalAmount}}{{currency .Lead.TotalAmount}}{{else}}---{{end}}</span>
                </div>
{{- if gt .Lead.MonthlyAmount 0}}
                <div style="padding-top: 15px; border-top: 1px solid rgba(255,255,255,0.2);">
                  <span style="font-size: 14px;">Phí duy trì/tháng:</span>
                  <span style="font-size: 16px; font-weight: 600;">{{currency .Lead.MonthlyAmount}}</span>
                </div>
{{- end}}
              </div>

              <table border="0" cellpadding="0" cellspacing="0" width="100%">
                <tr>
                  <td align="center" style="padding: 20px 0;">
                    <a href="tel:{{.Lead.Phone}}" style="display: inline-block; background: #1D6F41; color: white; padding: 14px 30px; border-radius: 8px; text-decoration: none; font-weight: 700;">📞 Gọi ngay: {{.Lead.Phone}}</a>
                  </td>
                </tr>
              </table>

              <table border="0" cellpadding="0" cellspacing="0" width="100%" style="margin-top: 30px;">
                <tr>
                  <td align="center">
                    <div style="color: #E07038; font-weight: 700; font-size: 18px;">Winhouse – Kết nối tạo dấu ấn</div>
                    <div style="color: #a0aec0; font-size: 13px; margin-top: 5px;">Hệ thống thông báo tự động từ Quote Tool</div>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
          <tr>
            <td align="center" style="background-color: #f8fafc; padding: 30px; color: #718096; font-size: 13px; line-height: 1.8;">
              <strong style="color: #4464AA; font-size: 14px;">{{.Company.Name}}</strong><br>
              {{.Company.Address}}<br>
              MST: {{.Company.TaxCode}}<br>
              Hotline/Zalo: <a href="tel:{{.Company.Hotline}}" style="color: #4464AA; text-decoration: none;">{{.Company.Hotline}}</a> |
              <a href="mailto:{{.Company.Email}}" style="color: #4464AA; text-decoration: none;">{{.Company.Email}}</a><br>
              <a href="https://{{.Company.Website}}" style="color: #4464AA; text-decoration: none; font-weight: 600;">{{.Company.Website}}</a>
              <br><br>
              <span style="color: #a0aec0;">&copy; {{.Year}} Winhouse. All rights reserved.</span>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`
