package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger row. There is no update or delete
// path: once posted, the amount has been reflected exactly once in the
// owning account's balance.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"-"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Description string          `gorm:"size:512" json:"description"`
	CategoryID  uint            `gorm:"index;not null" json:"categoryId"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	AccountID   uint            `gorm:"index;not null" json:"accountId"`
	TypeID      uint            `gorm:"not null" json:"typeId"`

	Category Category        `gorm:"foreignKey:CategoryID" json:"-"`
	Account  Account         `gorm:"foreignKey:AccountID" json:"-"`
	Type     TransactionType `gorm:"foreignKey:TypeID" json:"-"`
}
