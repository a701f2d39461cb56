package catalog

import "winhouse-quote/internal/models"

var allIndustries = []string{"real-estate", "business", "ecommerce", "education", "booking"}

func int64Ptr(v int64) *int64 { return &v }

// defaultData is the built-in catalog served when no override file is
// configured.
func defaultData() Data {
	return Data{
		Industries: []models.Industry{
			{ID: "real-estate", Slug: "real-estate", Name: "Real Estate", NameVi: "Bất động sản", Icon: "🏠",
				Description: "Website giới thiệu dự án, sàn giao dịch và môi giới bất động sản"},
			{ID: "business", Slug: "business", Name: "Business", NameVi: "Doanh nghiệp", Icon: "🏢",
				Description: "Website giới thiệu công ty, dịch vụ và năng lực doanh nghiệp"},
			{ID: "ecommerce", Slug: "ecommerce", Name: "E-commerce", NameVi: "Thương mại điện tử", Icon: "🛒",
				Description: "Cửa hàng trực tuyến với giỏ hàng và thanh toán"},
			{ID: "education", Slug: "education", Name: "Education", NameVi: "Giáo dục", Icon: "🎓",
				Description: "Trung tâm đào tạo, trường học và khóa học trực tuyến"},
			{ID: "booking", Slug: "booking", Name: "Booking & Services", NameVi: "Đặt lịch & Dịch vụ", Icon: "📅",
				Description: "Spa, phòng khám, nhà hàng và dịch vụ đặt lịch hẹn"},
		},

		Budgets: []models.BudgetOption{
			{
				ID: models.BudgetUnder20, Label: "Under 20M", LabelVi: "Dưới 20 triệu",
				MinPrice: 0, MaxPrice: int64Ptr(20_000_000),
				Description: "Phù hợp cho doanh nghiệp nhỏ, startup",
				Features: []string{
					"Website cơ bản 1-5 trang",
					"Thiết kế responsive",
					"Hosting 1 năm miễn phí",
					"Hỗ trợ kỹ thuật 3 tháng",
				},
			},
			{
				ID: models.Budget20To50, Label: "20M - 50M", LabelVi: "20 - 50 triệu",
				MinPrice: 20_000_000, MaxPrice: int64Ptr(50_000_000),
				Description: "Phù hợp cho doanh nghiệp vừa, cần nhiều tính năng",
				Features: []string{
					"Website đa chức năng",
					"CMS quản lý nội dung",
					"SEO cơ bản",
					"Tích hợp Analytics",
					"Hỗ trợ kỹ thuật 6 tháng",
				},
			},
			{
				ID: models.BudgetOver50, Label: "Over 50M", LabelVi: "Trên 50 triệu",
				MinPrice: 50_000_000, MaxPrice: nil,
				Description: "Giải pháp toàn diện cho doanh nghiệp lớn",
				Features: []string{
					"Giải pháp tùy chỉnh hoàn toàn",
					"Tích hợp AI & Automation",
					"Multi-platform support",
					"Dedicated Account Manager",
					"Hỗ trợ 24/7",
					"Training nhân viên",
				},
			},
		},

		Modules: defaultModules(),

		Styles: []models.StyleOption{
			{ID: "minimalist", Name: "Minimalist", NameVi: "Tối giản",
				Description:   "Clean, simple design with focus on content and whitespace",
				DescriptionVi: "Thiết kế sạch sẽ, đơn giản, tập trung vào nội dung và không gian trống",
				Icon:          "Minus", Colors: []string{"#ffffff", "#f8fafc", "#1e293b", "#64748b"},
				Gradient: "from-slate-100 to-white", Tags: []string{"Clean", "Simple", "Modern"}},
			{ID: "luxury", Name: "Luxury", NameVi: "Sang trọng",
				Description:   "Elegant and sophisticated design with premium feel",
				DescriptionVi: "Thiết kế thanh lịch, tinh tế với cảm giác cao cấp",
				Icon:          "Crown", Colors: []string{"#1a1a2e", "#d4af37", "#f5f5dc", "#2d2d44"},
				Gradient: "from-amber-200 via-yellow-300 to-amber-400", Tags: []string{"Premium", "Elegant", "Gold"}},
			{ID: "creative", Name: "Creative", NameVi: "Sáng tạo",
				Description:   "Bold, artistic design with unique visual elements",
				DescriptionVi: "Thiết kế táo bạo, nghệ thuật với các yếu tố hình ảnh độc đáo",
				Icon:          "Palette", Colors: []string{"#ff6b6b", "#4ecdc4", "#ffe66d", "#95e1d3"},
				Gradient: "from-pink-500 via-purple-500 to-indigo-500", Tags: []string{"Bold", "Artistic", "Colorful"}},
			{ID: "hightech", Name: "High-tech", NameVi: "Công nghệ",
				Description:   "Modern tech-inspired design with futuristic elements",
				DescriptionVi: "Thiết kế hiện đại, lấy cảm hứng từ công nghệ với yếu tố tương lai",
				Icon:          "Cpu", Colors: []string{"#0f0f23", "#00d9ff", "#7c3aed", "#10b981"},
				Gradient: "from-cyan-400 via-blue-500 to-purple-600", Tags: []string{"Futuristic", "Tech", "Neon"}},
			{ID: "corporate", Name: "Corporate", NameVi: "Doanh nghiệp",
				Description:   "Professional and trustworthy design for businesses",
				DescriptionVi: "Thiết kế chuyên nghiệp, đáng tin cậy cho doanh nghiệp",
				Icon:          "Building2", Colors: []string{"#1e40af", "#3b82f6", "#f1f5f9", "#1e293b"},
				Gradient: "from-blue-600 to-blue-800", Tags: []string{"Professional", "Trust", "Business"}},
			{ID: "organic", Name: "Organic", NameVi: "Tự nhiên",
				Description:   "Natural, eco-friendly design with earthy tones",
				DescriptionVi: "Thiết kế tự nhiên, thân thiện môi trường với tông màu đất",
				Icon:          "Leaf", Colors: []string{"#1D6F41", "#a7c957", "#f2e8cf", "#6b4423"},
				Gradient: "from-green-400 to-emerald-600", Tags: []string{"Natural", "Eco", "Earth"}},
		},

		Recommendations: map[string][]string{
			"real-estate": {"luxury", "minimalist", "corporate"},
			"business":    {"corporate", "minimalist", "hightech"},
			"ecommerce":   {"minimalist", "creative", "hightech"},
			"education":   {"organic", "minimalist", "corporate"},
			"booking":     {"minimalist", "luxury", "organic"},
		},
	}
}

func defaultModules() []models.Module {
	return []models.Module{
		// core
		{ID: "landing-page", Slug: "landing-page", Name: "Landing Page", NameVi: "Trang chủ & Landing Page",
			Description: "Conversion-focused home page", DescriptionVi: "Trang chủ tối ưu chuyển đổi, giới thiệu thương hiệu",
			Category: models.CategoryCore, IndustryIDs: allIndustries,
			BasePrice: 5_000_000, EstimatedDays: 5, IsPopular: true, IsRequired: true,
			Features: []string{"Thiết kế responsive", "Banner & CTA", "Tối ưu tốc độ tải trang"}},
		{ID: "cms", Slug: "cms", Name: "CMS", NameVi: "Hệ thống quản lý nội dung",
			Description: "Admin panel to manage pages and posts", DescriptionVi: "Trang quản trị để tự cập nhật nội dung, hình ảnh",
			Category: models.CategoryCore, IndustryIDs: allIndustries,
			BasePrice: 8_000_000, MonthlyPrice: 300_000, EstimatedDays: 7, IsPopular: true,
			Dependencies: []string{"landing-page"},
			Features:     []string{"Quản lý trang & bài viết", "Thư viện media", "Phân quyền biên tập"}},
		{ID: "contact-form", Slug: "contact-form", Name: "Contact Form", NameVi: "Form liên hệ",
			Description: "Lead form with email alerts", DescriptionVi: "Form thu thập thông tin khách hàng, báo qua email",
			Category: models.CategoryCore, IndustryIDs: allIndustries,
			BasePrice: 1_500_000, EstimatedDays: 1,
			Features: []string{"Chống spam", "Thông báo email", "Lưu lịch sử liên hệ"}},
		{ID: "company-profile", Slug: "company-profile", Name: "Company Profile", NameVi: "Hồ sơ năng lực",
			Description: "About, team and milestones pages", DescriptionVi: "Giới thiệu công ty, đội ngũ và dự án tiêu biểu",
			Category: models.CategoryCore, IndustryIDs: []string{"business", "real-estate"},
			BasePrice: 4_000_000, EstimatedDays: 3,
			Features: []string{"Trang giới thiệu", "Đội ngũ", "Dự án tiêu biểu"}},
		{ID: "property-listing", Slug: "property-listing", Name: "Property Listing", NameVi: "Danh sách bất động sản",
			Description: "Searchable property listings", DescriptionVi: "Đăng tin, lọc và tìm kiếm bất động sản theo khu vực, giá",
			Category: models.CategoryCore, IndustryIDs: []string{"real-estate"},
			BasePrice: 12_000_000, MonthlyPrice: 500_000, EstimatedDays: 10, IsPopular: true,
			Dependencies: []string{"cms"},
			Features:     []string{"Bộ lọc nâng cao", "Thư viện ảnh dự án", "So sánh căn hộ"}},
		{ID: "product-catalog", Slug: "product-catalog", Name: "Product Catalog", NameVi: "Danh mục sản phẩm",
			Description: "Product pages with variants", DescriptionVi: "Quản lý sản phẩm, biến thể, tồn kho",
			Category: models.CategoryCore, IndustryIDs: []string{"ecommerce"},
			BasePrice: 10_000_000, MonthlyPrice: 400_000, EstimatedDays: 8, IsPopular: true, IsRequired: true,
			Dependencies: []string{"cms"},
			Features:     []string{"Biến thể sản phẩm", "Quản lý tồn kho", "Đánh giá sản phẩm"}},
		{ID: "shopping-cart", Slug: "shopping-cart", Name: "Shopping Cart", NameVi: "Giỏ hàng & Đặt hàng",
			Description: "Cart and checkout flow", DescriptionVi: "Giỏ hàng, đặt hàng và quản lý đơn hàng",
			Category: models.CategoryCore, IndustryIDs: []string{"ecommerce"},
			BasePrice: 15_000_000, MonthlyPrice: 500_000, EstimatedDays: 12, IsPopular: true,
			Dependencies: []string{"product-catalog"},
			Features:     []string{"Giỏ hàng", "Mã giảm giá", "Theo dõi đơn hàng"}},
		{ID: "course-management", Slug: "course-management", Name: "Course Management", NameVi: "Quản lý khóa học",
			Description: "Courses, lessons and enrolments", DescriptionVi: "Quản lý khóa học, bài giảng và học viên",
			Category: models.CategoryCore, IndustryIDs: []string{"education"},
			BasePrice: 14_000_000, MonthlyPrice: 600_000, EstimatedDays: 12, IsPopular: true,
			Dependencies: []string{"cms"},
			Features:     []string{"Bài giảng video", "Bài kiểm tra", "Chứng chỉ hoàn thành"}},
		{ID: "booking-calendar", Slug: "booking-calendar", Name: "Booking Calendar", NameVi: "Lịch đặt hẹn",
			Description: "Online appointment scheduling", DescriptionVi: "Khách hàng tự đặt lịch hẹn, nhắc lịch tự động",
			Category: models.CategoryCore, IndustryIDs: []string{"booking", "education"},
			BasePrice: 9_000_000, MonthlyPrice: 300_000, EstimatedDays: 7, IsPopular: true, IsRequired: true,
			Features: []string{"Chọn khung giờ", "Nhắc lịch qua SMS/email", "Quản lý nhân viên"}},

		// marketing
		{ID: "seo", Slug: "seo", Name: "SEO Optimization", NameVi: "Tối ưu SEO",
			Description: "On-page SEO and sitemap", DescriptionVi: "Tối ưu SEO onpage, sitemap, schema markup",
			Category: models.CategoryMarketing, IndustryIDs: allIndustries,
			BasePrice: 6_000_000, MonthlyPrice: 1_000_000, EstimatedDays: 7, IsPopular: true,
			Features: []string{"Nghiên cứu từ khóa", "Schema markup", "Báo cáo thứ hạng hàng tháng"}},
		{ID: "blog", Slug: "blog", Name: "Blog", NameVi: "Blog tin tức",
			Description: "News and articles section", DescriptionVi: "Chuyên mục tin tức, bài viết chuẩn SEO",
			Category: models.CategoryMarketing, IndustryIDs: allIndustries,
			BasePrice: 3_000_000, EstimatedDays: 3,
			Dependencies: []string{"cms"},
			Features:     []string{"Chuyên mục & thẻ", "Bài viết liên quan", "Chia sẻ mạng xã hội"}},
		{ID: "email-marketing", Slug: "email-marketing", Name: "Email Marketing", NameVi: "Email Marketing",
			Description: "Newsletter capture and campaigns", DescriptionVi: "Thu thập email và gửi chiến dịch tự động",
			Category: models.CategoryMarketing, IndustryIDs: allIndustries,
			BasePrice: 4_000_000, MonthlyPrice: 500_000, EstimatedDays: 4,
			Features: []string{"Form đăng ký nhận tin", "Chiến dịch tự động", "Báo cáo tỷ lệ mở"}},
		{ID: "social-integration", Slug: "social-integration", Name: "Social Media Integration", NameVi: "Tích hợp mạng xã hội",
			Description: "Facebook, Zalo and TikTok widgets", DescriptionVi: "Kết nối Facebook, Zalo, TikTok và nút chia sẻ",
			Category: models.CategoryMarketing, IndustryIDs: allIndustries,
			BasePrice: 2_500_000, EstimatedDays: 2,
			Features: []string{"Facebook Pixel", "Zalo OA", "Nút chia sẻ"}},

		// integration
		{ID: "live-chat", Slug: "live-chat", Name: "Live Chat", NameVi: "Live Chat",
			Description: "Realtime chat with visitors", DescriptionVi: "Chat trực tuyến với khách truy cập",
			Category: models.CategoryIntegration, IndustryIDs: allIndustries,
			BasePrice: 2_000_000, MonthlyPrice: 200_000, EstimatedDays: 2, IsPopular: true,
			Features: []string{"Chat realtime", "Tin nhắn chờ", "Kết nối Messenger"}},
		{ID: "payment-gateway", Slug: "payment-gateway", Name: "Payment Gateway", NameVi: "Cổng thanh toán",
			Description: "VNPay, MoMo and bank transfer", DescriptionVi: "Thanh toán VNPay, MoMo, chuyển khoản QR",
			Category: models.CategoryIntegration, IndustryIDs: []string{"ecommerce", "booking", "education"},
			BasePrice: 7_000_000, EstimatedDays: 5,
			Features: []string{"VNPay", "MoMo", "QR chuyển khoản"}},
		{ID: "crm-integration", Slug: "crm-integration", Name: "CRM Integration", NameVi: "Tích hợp CRM",
			Description: "Push leads to your CRM", DescriptionVi: "Đồng bộ khách hàng tiềm năng sang CRM",
			Category: models.CategoryIntegration, IndustryIDs: []string{"business", "real-estate"},
			BasePrice: 8_000_000, MonthlyPrice: 500_000, EstimatedDays: 6,
			Dependencies: []string{"contact-form"},
			Features:     []string{"Đồng bộ lead", "Phân bổ sale", "Báo cáo nguồn khách"}},
		{ID: "google-maps", Slug: "google-maps", Name: "Google Maps", NameVi: "Bản đồ Google Maps",
			Description: "Location maps and directions", DescriptionVi: "Bản đồ vị trí và chỉ đường",
			Category: models.CategoryIntegration, IndustryIDs: []string{"real-estate", "booking", "business"},
			BasePrice: 1_500_000, EstimatedDays: 1,
			Features: []string{"Bản đồ vị trí", "Chỉ đường", "Tiện ích xung quanh"}},
		{ID: "analytics", Slug: "analytics", Name: "Analytics", NameVi: "Tích hợp Analytics",
			Description: "Google Analytics 4 and Tag Manager", DescriptionVi: "Google Analytics 4, Tag Manager và theo dõi chuyển đổi",
			Category: models.CategoryIntegration, IndustryIDs: allIndustries,
			BasePrice: 2_000_000, EstimatedDays: 1,
			Features: []string{"GA4", "Google Tag Manager", "Theo dõi chuyển đổi"}},

		// advanced
		{ID: "ai-chatbot", Slug: "ai-chatbot", Name: "AI Chatbot", NameVi: "Chatbot AI",
			Description: "AI assistant trained on your content", DescriptionVi: "Trợ lý AI tư vấn khách hàng 24/7",
			Category: models.CategoryAdvanced, IndustryIDs: allIndustries,
			BasePrice: 12_000_000, MonthlyPrice: 1_500_000, EstimatedDays: 10,
			Features: []string{"Huấn luyện theo dữ liệu riêng", "Tư vấn 24/7", "Chuyển tiếp cho nhân viên"}},
		{ID: "multilingual", Slug: "multilingual", Name: "Multilingual", NameVi: "Đa ngôn ngữ",
			Description: "Vietnamese and English versions", DescriptionVi: "Phiên bản tiếng Việt và tiếng Anh",
			Category: models.CategoryAdvanced, IndustryIDs: allIndustries,
			BasePrice: 5_000_000, EstimatedDays: 5,
			Features: []string{"Chuyển đổi ngôn ngữ", "URL riêng theo ngôn ngữ", "SEO đa ngôn ngữ"}},
		{ID: "virtual-tour", Slug: "virtual-tour", Name: "Virtual Tour 360", NameVi: "Tham quan ảo 360°",
			Description: "360 degree property tours", DescriptionVi: "Tham quan dự án, nhà mẫu với ảnh 360°",
			Category: models.CategoryAdvanced, IndustryIDs: []string{"real-estate"},
			BasePrice: 15_000_000, EstimatedDays: 10,
			Dependencies: []string{"property-listing"},
			Features:     []string{"Ảnh 360°", "Điểm nóng thông tin", "Xem trên di động"}},
		{ID: "membership", Slug: "membership", Name: "Membership", NameVi: "Hệ thống thành viên",
			Description: "Accounts, points and member pricing", DescriptionVi: "Tài khoản thành viên, tích điểm, ưu đãi riêng",
			Category: models.CategoryAdvanced, IndustryIDs: []string{"ecommerce", "education"},
			BasePrice: 9_000_000, MonthlyPrice: 300_000, EstimatedDays: 7,
			Features: []string{"Đăng ký/đăng nhập", "Tích điểm", "Hạng thành viên"}},

		// support
		{ID: "maintenance", Slug: "maintenance", Name: "Maintenance", NameVi: "Bảo trì & Hỗ trợ",
			Description: "Monthly updates, backups and support", DescriptionVi: "Cập nhật, sao lưu và hỗ trợ kỹ thuật hàng tháng",
			Category: models.CategorySupport, IndustryIDs: allIndustries,
			MonthlyPrice: 1_500_000,
			Features:     []string{"Sao lưu hằng tuần", "Cập nhật bảo mật", "Hỗ trợ trong giờ hành chính"}},
		{ID: "hosting", Slug: "hosting", Name: "Hosting & SSL", NameVi: "Hosting & SSL",
			Description: "Managed hosting with SSL", DescriptionVi: "Hosting tốc độ cao, chứng chỉ SSL, CDN",
			Category: models.CategorySupport, IndustryIDs: allIndustries,
			MonthlyPrice: 500_000, EstimatedDays: 1, IsPopular: true,
			Features: []string{"SSL miễn phí", "CDN", "Giám sát uptime"}},
	}
}
