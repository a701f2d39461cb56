package emailgenerate

import (
	"fmt"
	"math"
	"strings"

	"winhouse-quote/internal/format"
	"winhouse-quote/internal/models"
)

const (
	closingDiscountPercent = 15
	introModuleLimit       = 5
)

// FallbackEmails is the canned introduction, follow-up and closing sequence.
// It depends only on input.
func FallbackEmails(input *Input) []models.EmailTemplate {
	return []models.EmailTemplate{
		introductionEmail(input),
		followUpEmail(input),
		closingEmail(input),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func introductionEmail(input *Input) models.EmailTemplate {
	var features strings.Builder
	for i, m := range input.Modules {
		if i == introModuleLimit {
			break
		}
		fmt.Fprintf(&features, "• %s\n", m.Name)
	}

	body := fmt.Sprintf(`Kính gửi %s,

Cảm ơn Quý khách đã quan tâm đến dịch vụ thiết kế website của Winhouse.

Dựa trên yêu cầu của Quý khách trong lĩnh vực %s, chúng tôi đã chuẩn bị một giải pháp website chuyên nghiệp với các tính năng:

%s
Tổng chi phí triển khai: %s

Báo giá chi tiết đã được đính kèm trong email này. Nếu Quý khách có bất kỳ thắc mắc nào, đừng ngần ngại liên hệ với chúng tôi.

Trân trọng,
Đội ngũ Winhouse
📞 Hotline: 0901 234 567
🌐 Website: thewinhouse.com`,
		input.LeadName, input.IndustryName, features.String(), format.Currency(input.TotalAmount))

	return models.EmailTemplate{
		Title:   "Email giới thiệu",
		Type:    models.EmailIntroduction,
		Subject: fmt.Sprintf("[Winhouse] Báo giá website %s dành riêng cho %s", input.IndustryName, orDefault(input.CompanyName, "Quý khách")),
		Body:    body,
	}
}

func followUpEmail(input *Input) models.EmailTemplate {
	body := fmt.Sprintf(`Kính gửi %s,

Tôi muốn theo dõi về bản báo giá website mà chúng tôi đã gửi trước đó (tổng chi phí %s).

Quý khách có thắc mắc gì về:
• Các tính năng trong gói dịch vụ?
• Thời gian triển khai?
• Phương thức thanh toán?

Chúng tôi hiểu rằng việc đầu tư vào website là quyết định quan trọng. Vì vậy, tôi rất sẵn lòng giải đáp mọi thắc mắc và tư vấn thêm về giải pháp phù hợp nhất với %s.

Quý khách có thể đặt lịch tư vấn miễn phí 30 phút để chúng ta thảo luận chi tiết hơn.

Trân trọng,
Đội ngũ Winhouse`,
		input.LeadName, format.Currency(input.TotalAmount), orDefault(input.CompanyName, "doanh nghiệp của Quý khách"))

	return models.EmailTemplate{
		Title:   "Email theo dõi",
		Type:    models.EmailFollowUp,
		Subject: fmt.Sprintf("[Theo dõi] Báo giá website - %s", orDefault(input.CompanyName, input.LeadName)),
		Body:    body,
	}
}

func closingEmail(input *Input) models.EmailTemplate {
	discounted := int64(math.Round(float64(input.TotalAmount) * (100 - closingDiscountPercent) / 100))
	saved := input.TotalAmount - discounted

	body := fmt.Sprintf(`Kính gửi %s,

🎁 ƯU ĐÃI ĐẶC BIỆT dành riêng cho Quý khách!

Để thể hiện sự trân trọng, Winhouse xin gửi tặng:

✨ GIẢM %d%% tổng chi phí triển khai
✨ MIỄN PHÍ 3 tháng hỗ trợ kỹ thuật
✨ TẶNG 1 năm hosting cao cấp

Chi phí gốc: %s
Chi phí sau ưu đãi: %s
(Tiết kiệm: %s)

⏰ Ưu đãi chỉ có hiệu lực trong 3 ngày tới!

Đây là cơ hội tuyệt vời để %s sở hữu website %s chuyên nghiệp với chi phí tối ưu nhất.

Đăng ký ngay:
📞 Gọi: 0901 234 567
💬 Đặt lịch: thewinhouse.com/booking

Trân trọng,
Đội ngũ Winhouse`,
		input.LeadName, closingDiscountPercent,
		format.Currency(input.TotalAmount), format.Currency(discounted), format.Currency(saved),
		orDefault(input.CompanyName, "Quý khách"), input.IndustryName)

	return models.EmailTemplate{
		Title:   "Email chốt deal",
		Type:    models.EmailClosing,
		Subject: fmt.Sprintf("[Ưu đãi cuối] Giảm %d%% cho %s - Chỉ còn 3 ngày!", closingDiscountPercent, orDefault(input.CompanyName, input.LeadName)),
		Body:    body,
	}
}
