package emailgenerate

import (
	"fmt"
	"strings"

	"winhouse-quote/internal/format"
)

const systemPrompt = `Bạn là một chuyên gia tư vấn bán hàng website chuyên nghiệp tại Việt Nam.
Nhiệm vụ của bạn là tạo 3 mẫu email tiếng Việt chuyên nghiệp, thuyết phục và cá nhân hóa.
Sử dụng ngôn ngữ lịch sự, chuyên nghiệp phù hợp với văn hóa kinh doanh Việt Nam.
Mỗi email nên có độ dài vừa phải, không quá dài.`

const responseShape = `Trả về dưới dạng JSON với cấu trúc:
{
  "emails": [
    {
      "title": "Tên email",
      "type": "introduction|follow-up|closing",
      "subject": "Tiêu đề email",
      "body": "Nội dung email"
    }
  ]
}`

// UserPrompt describes the lead and the selected modules.
func UserPrompt(input *Input) string {
	var b strings.Builder
	b.WriteString("Tạo 3 mẫu email tiếng Việt cho khách hàng với thông tin sau:\n\n")
	fmt.Fprintf(&b, "Tên khách hàng: %s\n", input.LeadName)
	if input.CompanyName != "" {
		fmt.Fprintf(&b, "Công ty: %s\n", input.CompanyName)
	}
	fmt.Fprintf(&b, "Ngành nghề: %s\n", input.IndustryName)
	fmt.Fprintf(&b, "Tổng chi phí: %s\n\n", format.Currency(input.TotalAmount))

	b.WriteString("Các tính năng đã chọn:\n")
	for _, m := range input.Modules {
		fmt.Fprintf(&b, "- %s: %s\n", m.Name, m.Description)
	}

	b.WriteString("\nYêu cầu:\n")
	b.WriteString("1. Email giới thiệu (introduction): Gửi kèm báo giá, giới thiệu dịch vụ\n")
	b.WriteString("2. Email theo dõi (follow-up): Theo dõi sau 2-3 ngày, hỏi thăm và giải đáp thắc mắc\n")
	b.WriteString("3. Email chốt deal (closing): Đưa ra ưu đãi đặc biệt để thúc đẩy quyết định\n\n")
	b.WriteString(responseShape)
	return b.String()
}
