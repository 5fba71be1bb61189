package models

import (
	"time"
)

// Product carries the trilingual catalog fields. Empty en/ru values are
// stored and returned as empty strings, not omitted.
type Product struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	NameUz        string    `gorm:"type:varchar(255);not null" json:"name_uz"`
	NameEn        string    `gorm:"type:varchar(255)" json:"name_en"`
	NameRu        string    `gorm:"type:varchar(255)" json:"name_ru"`
	DescriptionUz string    `gorm:"type:text" json:"description_uz"`
	DescriptionEn string    `gorm:"type:text" json:"description_en"`
	DescriptionRu string    `gorm:"type:text" json:"description_ru"`
	Price         float64   `gorm:"type:decimal(12,2)" json:"price"`
	Size          string    `gorm:"type:varchar(50)" json:"size,omitempty"`
	CategoryID    string    `gorm:"type:varchar(36);index" json:"categoryId,omitempty"`
	Image         string    `gorm:"type:varchar(512)" json:"image,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

func (Product) TableName() string {
	return "products"
}
