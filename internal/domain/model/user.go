package model

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ログインアカウント。roleは作成時に固定。
type User struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"column:password_hash;not null" json:"-"`
	Role          Role       `gorm:"type:varchar(20);not null;default:'CUSTOMER'" json:"role"`
	IsActive      bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedDate   time.Time  `gorm:"not null;autoCreateTime" json:"created_date"`
	LastLoginDate *time.Time `json:"last_login_date"`
}
