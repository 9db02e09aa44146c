// Package reports contains the read-only projections: filtered transaction
// listings, category breakdowns and the period statistics. Everything here
// is recomputed per request; nothing writes.
package reports

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionFilter narrows a listing. Nil/zero fields add no constraint.
// Each constraint renders as a parameterized predicate; user input never
// reaches the SQL text itself.
type TransactionFilter struct {
	UserID     uint
	DateFrom   *time.Time
	DateTo     *time.Time
	CategoryID uint
	TypeID     uint
	AccountID  uint
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
}

func (f TransactionFilter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("transactions.user_id = ?", f.UserID)
	if f.DateFrom != nil {
		q = q.Where("transactions.date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("transactions.date <= ?", *f.DateTo)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if f.TypeID != 0 {
		q = q.Where("transactions.type_id = ?", f.TypeID)
	}
	if f.AccountID != 0 {
		q = q.Where("transactions.account_id = ?", f.AccountID)
	}
	if f.AmountMin != nil {
		q = q.Where("transactions.amount >= ?", *f.AmountMin)
	}
	if f.AmountMax != nil {
		q = q.Where("transactions.amount <= ?", *f.AmountMax)
	}
	return q
}

// sortColumns is the allow-list of sortable fields. Keys are the wire names;
// values are the underlying columns in the joined listing query.
var sortColumns = map[string]string{
	"date":     "transactions.date",
	"amount":   "transactions.amount",
	"category": "categories.name",
	"type":     "transaction_types.description",
	"account":  "accounts.name",
}

// OrderClause renders an ORDER BY expression for the listing. Unknown fields
// and directions silently fall back to date descending. Transaction id
// breaks ties so same-day entries list newest insert first.
func OrderClause(field, direction string) string {
	column, ok := sortColumns[field]
	if !ok {
		column = sortColumns["date"]
	}
	dir := strings.ToUpper(direction)
	if dir != "ASC" && dir != "DESC" {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, transactions.id DESC", column, dir)
}
