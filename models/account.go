package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account statuses as stored. Anything else is rejected at the boundary.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// ValidAccountStatus reports whether s is one of the closed status values.
func ValidAccountStatus(s string) bool {
	return s == AccountActive || s == AccountInactive
}

// Account holds a user's balance. The balance column is only ever written by
// the posting workflow; account updates never touch it.
type Account struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
	Name        string          `gorm:"size:255;not null;uniqueIndex:idx_user_account_name" json:"name"`
	AccountType string          `gorm:"size:64;not null" json:"accountType"`
	Balance     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"balance"`
	Status      string          `gorm:"size:16;not null;default:active" json:"status"`
	UserID      uint            `gorm:"index;not null;uniqueIndex:idx_user_account_name" json:"userId"`
	User        User            `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
