package models

import (
	"time"
)

// ContactMessage is a storefront contact-form submission. IsRead flips from
// false to true on first view and never back.
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
