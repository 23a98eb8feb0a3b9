package model

// 顧客（リレーショナル側）。Userと1:1。
type Customer struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;uniqueIndex" json:"user_id"`

	FirstName string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(50);not null" json:"last_name"`

	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Address     string `gorm:"type:varchar(500)" json:"address"`
	City        string `gorm:"type:varchar(100)" json:"city"`
	PostalCode  string `gorm:"type:varchar(20)" json:"postal_code"`
	Country     string `gorm:"type:varchar(100)" json:"country"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
