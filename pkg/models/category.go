package models

import (
	"time"
)

type Category struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	NameUz    string    `gorm:"type:varchar(255);not null" json:"name_uz"`
	NameEn    string    `gorm:"type:varchar(255)" json:"name_en"`
	NameRu    string    `gorm:"type:varchar(255)" json:"name_ru"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
