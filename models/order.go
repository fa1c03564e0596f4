package models

import "time"

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation call
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed by the store
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusReturned  OrderStatus = "returned"
	OrderStatusCancelled OrderStatus = "cancelled"

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"

	// Manual payment only: the customer transfers the amount and uploads
	// a receipt, a staff member verifies it by phone within 24 hours.
	PaymentMethodWallet   PaymentMethod = "wallet_transfer"
	PaymentMethodInstapay PaymentMethod = "instapay"
)

type Order struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	OrderRef        string        `gorm:"uniqueIndex" json:"order_ref"`
	UserID          *string       `json:"user_id"` // nil for anonymous checkout
	User            *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items           []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     float64       `json:"total_amount"`
	CustomerName    string        `gorm:"not null" json:"customer_name"`
	CustomerPhone   string        `gorm:"not null" json:"customer_phone"`
	CustomerAddress string        `json:"customer_address"`
	PaymentMethod   PaymentMethod `gorm:"type:VARCHAR(20)" json:"payment_method"`
	ReceiptURL      string        `json:"receipt_url"`
	Status          OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt       time.Time     `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	BookID      uint    `json:"book_id"`
	BookETitle  string  `json:"book_etitle"`
	BookARTitle string  `json:"book_artitle"`
	BookAuthor  string  `json:"book_author"`
	BookCover   string  `json:"book_cover"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}
