package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartLine snapshots the book fields it was added with, so price
// changes never rewrite a cart under the customer.
type CartLine struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CartID      uint      `gorm:"index" json:"cart_id"`
	BookID      uint      `json:"book_id"`
	BookETitle  string    `json:"book_etitle"`
	BookARTitle string    `json:"book_artitle"`
	BookAuthor  string    `json:"book_author"`
	BookCover   string    `json:"book_cover"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Position    int       `json:"position"` // insertion order within the cart
	AddedAt     time.Time `json:"added_at"`
}
