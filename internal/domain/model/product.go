package model

import "time"

// カタログ商品（Table Storage側）。
// IDはRowKey。PartitionKeyは常に"Product"。
type Product struct {
	ID            string    `json:"id"`
	ProductName   string    `json:"product_name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	IsAvailable   bool      `json:"is_available"`
	CreatedDate   time.Time `json:"created_date"`
}
