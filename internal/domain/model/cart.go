package model

import "time"

// 1顧客につきカートは1つ。初回アクセス時に作成し、削除はしない。
type Cart struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	CreatedDate time.Time `gorm:"not null" json:"created_date"`
	UpdatedDate time.Time `gorm:"not null" json:"updated_date"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}
