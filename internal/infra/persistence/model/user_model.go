package model

import (
	"time"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	UUIDKey
	Name         string       `gorm:"type:varchar(100);not null"`
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string       `gorm:"type:varchar(255);not null"`
	Role         string       `gorm:"type:varchar(16);index;not null"`
	Phone        string       `gorm:"type:varchar(32)"`
	ProfileImage string       `gorm:"type:varchar(512)"`
	Address      AddressModel `gorm:"embedded;embeddedPrefix:address_"`
	IsActive     bool         `gorm:"not null"`
	CreatedAt    time.Time    `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// AddressModel is the postal address embedded in the users table.
type AddressModel struct {
	Line1      string `gorm:"type:varchar(255)"`
	Line2      string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(100)"`
	Country    string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(20)"`
}
