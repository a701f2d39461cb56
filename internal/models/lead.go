// internal/models/lead.go
package models

import "time"

type LeadRole string

const (
	RoleOwner      LeadRole = "owner"
	RoleAdmin      LeadRole = "admin"
	RoleSEOer      LeadRole = "seoer"
	RoleAccountant LeadRole = "accountant"
	RoleOther      LeadRole = "other"
)

// LeadRoles lists the accepted roles in display order.
var LeadRoles = []LeadRole{RoleOwner, RoleAdmin, RoleSEOer, RoleAccountant, RoleOther}

var roleLabels = map[LeadRole]string{
	RoleOwner:      "Chủ doanh nghiệp / Giám đốc",
	RoleAdmin:      "Quản trị viên / IT",
	RoleSEOer:      "Marketing / SEO",
	RoleAccountant: "Kế toán / Tài chính",
	RoleOther:      "Khác",
}

// Label is the Vietnamese role name shown on the lead form.
func (r LeadRole) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// LeadFormData is the contact record captured at the lead-capture step.
type LeadFormData struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Company     string   `json:"company,omitempty"`
	Role        LeadRole `json:"role"`
	Notes       string   `json:"notes,omitempty"`
	AcceptTerms bool     `json:"acceptTerms"`
}

type LeadSource string

const (
	SourceQuoteTool LeadSource = "quote-tool"
	SourceDirect    LeadSource = "direct"
	SourceReferral  LeadSource = "referral"
)

// LeadRecord is a row of the leads table.
type LeadRecord struct {
	ID        string     `json:"id"`
	QuoteID   string     `json:"quoteId,omitempty"`
	SessionID string     `json:"sessionId"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Company   string     `json:"company,omitempty"`
	Role      LeadRole   `json:"role"`
	Notes     string     `json:"notes,omitempty"`
	Source    LeadSource `json:"source"`
	CreatedAt time.Time  `json:"createdAt"`
}
