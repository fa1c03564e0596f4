package models

import "time"

type MembershipStatus string

const (
	MembershipStatusActive    MembershipStatus = "active"
	MembershipStatusExpired   MembershipStatus = "expired"
	MembershipStatusCancelled MembershipStatus = "cancelled"
)

// KnowledgeClubMembership is a paid two-year subscription that grants
// store discounts and entry into the monthly prize draws.
type KnowledgeClubMembership struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     *string          `json:"user_id"` // nil when joined without an account
	Name       string           `gorm:"not null" json:"name"`
	Phone      string           `gorm:"not null" json:"phone"`
	Status     MembershipStatus `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	ReceiptURL string           `json:"receipt_url"`
	CreatedAt  time.Time        `json:"created_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
}
