package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finanzas/models"
	"finanzas/pkg/ledger"
)

// Aggregator computes the read-only projections over the ledger.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// TransactionRow is one joined listing entry.
type TransactionRow struct {
	ID          uint            `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CategoryID  uint            `json:"categoryId"`
	Category    string          `json:"category"`
	TypeID      uint            `json:"typeId"`
	Type        string          `json:"type"`
	AccountID   uint            `json:"accountId"`
	Account     string          `json:"account"`
}

// Pagination describes the page window of a listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int   `json:"limit"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

// FilterTotals aggregates the full filtered set, not just the current page.
type FilterTotals struct {
	Count    int64           `json:"totalTransactions"`
	Income   decimal.Decimal `json:"totalIncome"`
	Expenses decimal.Decimal `json:"totalExpenses"`
	Net      decimal.Decimal `json:"net"`
}

// ListResult is the filtered listing payload.
type ListResult struct {
	Transactions []TransactionRow `json:"transactions"`
	Pagination   Pagination       `json:"pagination"`
	Totals       FilterTotals     `json:"totals"`
}

const listSelect = `transactions.id, transactions.amount, transactions.date,
	transactions.description,
	transactions.category_id, categories.name AS category,
	transactions.type_id, transaction_types.description AS type,
	transactions.account_id, accounts.name AS account`

// joined builds a fresh filtered query with the three reference joins. A new
// chain per use keeps gorm's clause state from leaking between the row,
// count and totals queries.
func (a *Aggregator) joined(ctx context.Context, f TransactionFilter) *gorm.DB {
	q := a.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("INNER JOIN categories ON categories.id = transactions.category_id").
		Joins("INNER JOIN transaction_types ON transaction_types.id = transactions.type_id").
		Joins("INNER JOIN accounts ON accounts.id = transactions.account_id")
	return f.apply(q)
}

// List returns one page of the filtered listing, the pagination window and
// the totals of the whole filtered set.
func (a *Aggregator) List(ctx context.Context, f TransactionFilter, page, limit int, orderBy, orderDir string) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := a.joined(ctx, f).Count(&total).Error; err != nil {
		return nil, err
	}

	rows := []TransactionRow{}
	if err := a.joined(ctx, f).
		Select(listSelect).
		Order(OrderClause(orderBy, orderDir)).
		Limit(limit).Offset((page - 1) * limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Count    int64
		Income   decimal.Decimal
		Expenses decimal.Decimal
	}
	if err := a.joined(ctx, f).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN transaction_types.description = ? THEN transactions.amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN transaction_types.description = ? THEN transactions.amount ELSE 0 END), 0) AS expenses`,
			ledger.DescriptionIncome, ledger.DescriptionExpense).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ListResult{
		Transactions: rows,
		Pagination: Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalRecords: total,
			Limit:        limit,
			HasNext:      page < totalPages,
			HasPrev:      page > 1,
		},
		Totals: FilterTotals{
			Count:    totals.Count,
			Income:   totals.Income,
			Expenses: totals.Expenses,
			Net:      totals.Income.Sub(totals.Expenses),
		},
	}, nil
}

// Recent returns the newest transactions for the user, date descending with
// the row id as tie-break so same-day entries surface newest insert first.
func (a *Aggregator) Recent(ctx context.Context, userID uint, limit int) ([]TransactionRow, error) {
	if limit < 1 {
		limit = 5
	}
	rows := []TransactionRow{}
	err := a.joined(ctx, TransactionFilter{UserID: userID}).
		Select(listSelect).
		Order("transactions.date DESC, transactions.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// UsedCategory is a category the user has posted against, with its usage.
// LastUsed is the driver's timestamp text: MIN/MAX over a date column comes
// back untyped, so it is passed through rather than re-parsed.
type UsedCategory struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TimesUsed   int64  `json:"timesUsed"`
	LastUsed    string `json:"lastUsed"`
}

// UsedCategories lists the categories referenced by the user's transactions,
// most used first.
func (a *Aggregator) UsedCategories(ctx context.Context, userID uint) ([]UsedCategory, error) {
	out := []UsedCategory{}
	err := a.db.WithContext(ctx).Model(&models.Category{}).
		Joins("INNER JOIN transactions ON transactions.category_id = categories.id").
		Where("transactions.user_id = ?", userID).
		Select(`categories.id, categories.name, categories.description,
			COUNT(transactions.id) AS times_used,
			MAX(transactions.date) AS last_used`).
		Group("categories.id, categories.name, categories.description").
		Order("times_used DESC, categories.name ASC").
		Scan(&out).Error
	return out, err
}

// CategoryBreakdown aggregates one category and kind combination.
type CategoryBreakdown struct {
	CategoryID uint            `json:"categoryId"`
	Category   string          `json:"category"`
	Type       string          `json:"type"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Average    decimal.Decimal `json:"average"`
	Min        decimal.Decimal `json:"min"`
	Max        decimal.Decimal `json:"max"`
	FirstDate  string          `json:"firstDate"`
	LastDate   string          `json:"lastDate"`
}

// CategorySummary groups the user's transactions by category and kind,
// optionally bounded by date range and type, largest total first.
func (a *Aggregator) CategorySummary(ctx context.Context, f TransactionFilter) ([]CategoryBreakdown, error) {
	out := []CategoryBreakdown{}
	err := a.joined(ctx, f).
		Select(`transactions.category_id, categories.name AS category,
			transaction_types.description AS type,
			COUNT(transactions.id) AS count,
			SUM(transactions.amount) AS total,
			AVG(transactions.amount) AS average,
			MIN(transactions.amount) AS min,
			MAX(transactions.amount) AS max,
			MIN(transactions.date) AS first_date,
			MAX(transactions.date) AS last_date`).
		Group("transactions.category_id, categories.name, transaction_types.description").
		Order("total DESC").
		Scan(&out).Error
	return out, err
}
