package models

import "time"

// User owns accounts and the transactions posted against them. The password
// is stored only as a bcrypt hash and never serialized.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	FirstName      string    `gorm:"size:128;not null" json:"firstName"`
	LastName       string    `gorm:"size:128;not null" json:"lastName"`
	Phone          string    `gorm:"size:64" json:"phone"`
	Address        string    `gorm:"size:512" json:"address"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`

	Accounts     []Account     `json:"-"`
	Transactions []Transaction `json:"-"`
}
