package models

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// Receipt is an uploaded proof-of-payment file (image or PDF) attached
// to an order or a knowledge-club membership request.
type Receipt struct {
	ID        uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName  string         `json:"file_name" gorm:"not null"`
	FileURL   string         `json:"file_url" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func SaveReceipt(db *gorm.DB, fileName, fileURL string) (*Receipt, error) {
	receipt := &Receipt{
		FileName: fileName,
		FileURL:  fileURL,
	}
	if err := db.Create(receipt).Error; err != nil {
		return nil, err
	}

	log.Printf("📁 Saved receipt in DB: %s -> %s", fileName, fileURL)
	return receipt, nil
}

func GetAllReceipts(db *gorm.DB) ([]Receipt, error) {
	var receipts []Receipt
	if err := db.Order("created_at DESC").Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}
