package model

import "time"

// 顧客プロフィール（Table Storage側）。
// リレーショナル側のCustomerとは独立した別ストア（意図的な二重管理）。
// IDはRowKey。PartitionKeyは常に"Customer"。
type CustomerProfile struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Address     string    `json:"address"`
	IsActive    bool      `json:"is_active"`
	CreatedDate time.Time `json:"created_date"`
}
