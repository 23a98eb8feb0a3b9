package model

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusProcessed OrderStatus = "PROCESSED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ステータス文字列を検証する（大文字小文字は区別しない）。
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case OrderStatusPending, OrderStatusProcessed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	default:
		return "", false
	}
}

// 注文。TotalAmountは作成時に確定し、以後のカタログ価格変更の影響を受けない。
type Order struct {
	ID              int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	CustomerID      int64       `gorm:"not null;index" json:"customer_id"`
	OrderDate       time.Time   `gorm:"not null" json:"order_date"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	ShippingAddress string      `gorm:"type:varchar(500)" json:"shipping_address"`
	Notes           string      `gorm:"type:varchar(1000)" json:"notes"`
	ProcessedDate   *time.Time  `json:"processed_date"`
	ProcessedBy     *int64      `json:"processed_by"`

	Customer  *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	Processor *User     `gorm:"foreignKey:ProcessedBy;constraint:OnDelete:RESTRICT" json:"-"`
}
