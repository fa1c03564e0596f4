package models

import (
	"encoding/json"
	"time"
)

// DrawWinner is a published monthly draw result. Winners never re-enter
// later draws; remaining subscriptions of a multi-entry member still count.
type DrawWinner struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `gorm:"not null" json:"-"`
	Sponsor  string    `json:"sponsor"`
	Prize    string    `gorm:"not null" json:"prize"`
	DrawDate time.Time `json:"draw_date"`
}

// MarshalJSON publishes the phone masked, e.g. "010****7890".
func (w DrawWinner) MarshalJSON() ([]byte, error) {
	type alias DrawWinner
	return json.Marshal(struct {
		alias
		MaskedPhone string `json:"phone"`
	}{alias(w), MaskPhone(w.Phone)})
}

// MaskPhone hides the middle digits of an 11-digit number. Shorter
// values are fully masked.
func MaskPhone(phone string) string {
	if len(phone) != 11 {
		return "***"
	}
	return phone[:3] + "****" + phone[7:]
}
