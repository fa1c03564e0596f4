package models

import (
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID            uint    `gorm:"primaryKey;autoIncrement"`
	ETitle        string  // English title
	ARTitle       string  `gorm:"not null"` // Arabic title
	Author        string  `gorm:"not null"`
	EDescription  string
	ARDescription string
	Price         float64 `gorm:"not null"`
	CoverImage    string
	Categories    []Category `gorm:"many2many:book_categories;"`
	Stock         int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
