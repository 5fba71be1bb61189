package models

import (
	"time"
)

// OrderStatus values are the Uzbek labels the storefront and dashboard
// exchange on the wire. Any-to-any transitions are allowed.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "Yangi"
	OrderStatusInProgress OrderStatus = "Jarayonda"
	OrderStatusCompleted  OrderStatus = "Yakunlangan"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusCompleted:
		return true
	}
	return false
}

type Order struct {
	ID         string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FullName   string      `gorm:"type:varchar(255);not null" json:"fullName"`
	Phone      string      `gorm:"type:varchar(32);not null" json:"phone"`
	Address    string      `gorm:"type:varchar(512)" json:"address"`
	Email      string      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Oferta     bool        `json:"oferta"`
	TotalPrice float64     `gorm:"type:decimal(14,2)" json:"totalPrice"`
	Status     OrderStatus `gorm:"type:varchar(20);default:'Yangi'" json:"status"`
	Items      []OrderItem `gorm:"type:text;serializer:json" json:"items"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem lines are immutable once the order is placed. There is no
// update path and no reconciliation against the stored order total.
type OrderItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
}
