package model

import "time"

// カート明細。
// ProductIDはTable Storage側のRowKey（文字列）。
// 同一商品は1行で、追加時は数量を加算する。
type CartItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID      int64     `gorm:"not null;index:idx_cart_product,unique" json:"cart_id"`
	ProductID   string    `gorm:"type:varchar(100);not null;index:idx_cart_product,unique" json:"product_id"`
	ProductName string    `gorm:"type:varchar(100);not null" json:"product_name"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	AddedDate   time.Time `gorm:"not null" json:"added_date"`

	Cart *Cart `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"-"`
}

// 明細の小計
func (ci CartItem) Subtotal() float64 {
	return ci.Price * float64(ci.Quantity)
}
