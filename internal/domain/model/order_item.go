package model

// 注文明細。注文作成時点のカート明細のスナップショットで、以後変更しない。
type OrderItem struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64   `gorm:"not null;index" json:"order_id"`
	ProductID   string  `gorm:"type:varchar(100);not null" json:"product_id"`
	ProductName string  `gorm:"type:varchar(100);not null" json:"product_name"`
	Price       float64 `gorm:"not null" json:"price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	Subtotal    float64 `gorm:"not null" json:"subtotal"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
