package models

import "time"

// GuestUser is a short-lived anonymous identity backing a guest cart.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
