package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`
	Name         string    `json:"name"`
	Email        string    `json:"-"` // synthesized placeholder (<phone>@temp.com) for pre-confirmed accounts
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Cart         Cart      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Orders       []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile mirrors the public part of a user record. Profile writes are
// best-effort: a failed upsert never fails the signup that triggered it.
type Profile struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      Role      `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
