package model

import "time"

// キューに流すメッセージ。JSONでシリアライズする。

// order-processingキュー用
type OrderMessage struct {
	OrderID     string    `json:"orderId"`
	CustomerID  string    `json:"customerId"`
	ProductIDs  []string  `json:"productIds"`
	TotalAmount float64   `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
}

// inventory-managementキュー用
// Actionは"UPDATE_STOCK"・"LOW_STOCK_ALERT"・"REORDER"など。
type InventoryMessage struct {
	ProductID string    `json:"productId"`
	Action    string    `json:"action"`
	Quantity  int       `json:"quantity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// image-processingキュー用
// ProcessingTypeは"RESIZE"・"COMPRESS"・"WATERMARK"など。
type ImageProcessingMessage struct {
	ImageName      string    `json:"imageName"`
	ImageURL       string    `json:"imageUrl"`
	ProcessingType string    `json:"processingType"`
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}
