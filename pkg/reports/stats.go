package reports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finanzas/models"
	"finanzas/pkg/ledger"
)

// Period selects the date window of the financial summary.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
	PeriodTotal   Period = "total"
)

// ParsePeriod falls back to monthly for anything unrecognized.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodYearly:
		return PeriodYearly
	case PeriodTotal:
		return PeriodTotal
	}
	return PeriodMonthly
}

// Range returns the half-open [from, to) window of the period containing
// now. A total period has no bounds and returns zero times.
func (p Period) Range(now time.Time) (from, to time.Time) {
	switch p {
	case PeriodMonthly:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0)
	case PeriodYearly:
		from = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(1, 0, 0)
	}
	return time.Time{}, time.Time{}
}

// PreviousRange returns the window immediately before Range. For a total
// period there is no predecessor; the same unbounded window is returned so
// the comparison degenerates to zero change.
func (p Period) PreviousRange(now time.Time) (from, to time.Time) {
	switch p {
	case PeriodMonthly:
		to = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return to.AddDate(0, -1, 0), to
	case PeriodYearly:
		to = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return to.AddDate(-1, 0, 0), to
	}
	return time.Time{}, time.Time{}
}

// PeriodTotals carries a period total next to its predecessor and the signed
// change percentage between them.
type PeriodTotals struct {
	Total         decimal.Decimal `json:"total"`
	Previous      decimal.Decimal `json:"previous"`
	ChangePercent float64         `json:"changePercent"`
}

// CategoryTotal is one entry of the top-expense-categories list.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// FinancialSummary is the period statistics payload.
type FinancialSummary struct {
	Period               Period           `json:"period"`
	From                 *time.Time       `json:"from,omitempty"`
	To                   *time.Time       `json:"to,omitempty"`
	Income               PeriodTotals     `json:"income"`
	Expenses             PeriodTotals     `json:"expenses"`
	Net                  decimal.Decimal  `json:"net"`
	ActiveBalance        decimal.Decimal  `json:"activeBalance"`
	RecentTransactions   []TransactionRow `json:"recentTransactions"`
	TopExpenseCategories []CategoryTotal  `json:"topExpenseCategories"`
}

// kindTotal sums the user's transactions of one kind inside [from, to).
// Zero bounds are open ends.
func (a *Aggregator) kindTotal(ctx context.Context, userID uint, kindDescription string, from, to time.Time) (decimal.Decimal, error) {
	q := a.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("INNER JOIN transaction_types ON transaction_types.id = transactions.type_id").
		Where("transactions.user_id = ? AND transaction_types.description = ?", userID, kindDescription)
	if !from.IsZero() {
		q = q.Where("transactions.date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("transactions.date < ?", to)
	}
	var out struct{ Total decimal.Decimal }
	err := q.Select("COALESCE(SUM(transactions.amount), 0) AS total").Scan(&out).Error
	return out.Total, err
}

// FinancialSummary computes the period income/expense totals with the
// prior-period comparison, the active balance, the five most recent
// transactions and the five largest expense categories of the period.
func (a *Aggregator) FinancialSummary(ctx context.Context, userID uint, period Period, now time.Time) (*FinancialSummary, error) {
	from, to := period.Range(now)
	prevFrom, prevTo := period.PreviousRange(now)

	income, err := a.kindTotal(ctx, userID, ledger.DescriptionIncome, from, to)
	if err != nil {
		return nil, err
	}
	expenses, err := a.kindTotal(ctx, userID, ledger.DescriptionExpense, from, to)
	if err != nil {
		return nil, err
	}
	prevIncome, err := a.kindTotal(ctx, userID, ledger.DescriptionIncome, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}
	prevExpenses, err := a.kindTotal(ctx, userID, ledger.DescriptionExpense, prevFrom, prevTo)
	if err != nil {
		return nil, err
	}

	var balance struct{ Total decimal.Decimal }
	if err := a.db.WithContext(ctx).Model(&models.Account{}).
		Where("user_id = ? AND status = ?", userID, models.AccountActive).
		Select("COALESCE(SUM(balance), 0) AS total").
		Scan(&balance).Error; err != nil {
		return nil, err
	}

	recent, err := a.Recent(ctx, userID, 5)
	if err != nil {
		return nil, err
	}

	topQ := a.db.WithContext(ctx).Model(&models.Transaction{}).
		Joins("INNER JOIN categories ON categories.id = transactions.category_id").
		Joins("INNER JOIN transaction_types ON transaction_types.id = transactions.type_id").
		Where("transactions.user_id = ? AND transaction_types.description = ?", userID, ledger.DescriptionExpense)
	if !from.IsZero() {
		topQ = topQ.Where("transactions.date >= ?", from)
	}
	if !to.IsZero() {
		topQ = topQ.Where("transactions.date < ?", to)
	}
	topCategories := []CategoryTotal{}
	if err := topQ.
		Select(`categories.name AS category, SUM(transactions.amount) AS total, COUNT(transactions.id) AS count`).
		Group("transactions.category_id, categories.name").
		Order("total DESC").
		Limit(5).
		Scan(&topCategories).Error; err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		Period: period,
		Income: PeriodTotals{
			Total:         income,
			Previous:      prevIncome,
			ChangePercent: ledger.ChangePercent(income, prevIncome),
		},
		Expenses: PeriodTotals{
			Total:         expenses,
			Previous:      prevExpenses,
			ChangePercent: ledger.ChangePercent(expenses, prevExpenses),
		},
		Net:                  income.Sub(expenses),
		ActiveBalance:        balance.Total,
		RecentTransactions:   recent,
		TopExpenseCategories: topCategories,
	}
	if !from.IsZero() {
		summary.From = &from
		summary.To = &to
	}
	return summary, nil
}

// AccountBalance names an account and its balance for the extremes listing.
type AccountBalance struct {
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountSummary aggregates the user's accounts.
type AccountSummary struct {
	TotalAccounts        int64           `json:"totalAccounts"`
	ActiveAccounts       int64           `json:"activeAccounts"`
	InactiveAccounts     int64           `json:"inactiveAccounts"`
	ActiveBalance        decimal.Decimal `json:"activeBalance"`
	TotalBalance         decimal.Decimal `json:"totalBalance"`
	AverageActiveBalance decimal.Decimal `json:"averageActiveBalance"`
	HighestBalance       *AccountBalance `json:"highestBalance"`
	LowestBalance        *AccountBalance `json:"lowestBalance"`
}

// AccountSummary computes counts, balance sums and the active accounts with
// the highest and lowest balances. The extremes are nil when the user has no
// active accounts.
func (a *Aggregator) AccountSummary(ctx context.Context, userID uint) (*AccountSummary, error) {
	var agg struct {
		TotalAccounts        int64
		ActiveAccounts       int64
		InactiveAccounts     int64
		ActiveBalance        decimal.Decimal
		TotalBalance         decimal.Decimal
		AverageActiveBalance decimal.Decimal
	}
	err := a.db.WithContext(ctx).Model(&models.Account{}).
		Where("user_id = ?", userID).
		Select(`COUNT(*) AS total_accounts,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active_accounts,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS inactive_accounts,
			COALESCE(SUM(CASE WHEN status = ? THEN balance ELSE 0 END), 0) AS active_balance,
			COALESCE(SUM(balance), 0) AS total_balance,
			COALESCE(AVG(CASE WHEN status = ? THEN balance END), 0) AS average_active_balance`,
			models.AccountActive, models.AccountInactive,
			models.AccountActive, models.AccountActive).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	summary := &AccountSummary{
		TotalAccounts:        agg.TotalAccounts,
		ActiveAccounts:       agg.ActiveAccounts,
		InactiveAccounts:     agg.InactiveAccounts,
		ActiveBalance:        agg.ActiveBalance,
		TotalBalance:         agg.TotalBalance,
		AverageActiveBalance: agg.AverageActiveBalance,
	}

	highest, err := a.extremeAccount(ctx, userID, "balance DESC")
	if err != nil {
		return nil, err
	}
	lowest, err := a.extremeAccount(ctx, userID, "balance ASC")
	if err != nil {
		return nil, err
	}
	summary.HighestBalance = highest
	summary.LowestBalance = lowest
	return summary, nil
}

func (a *Aggregator) extremeAccount(ctx context.Context, userID uint, order string) (*AccountBalance, error) {
	var account models.Account
	err := a.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.AccountActive).
		Order(order).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &AccountBalance{
		Name:        account.Name,
		AccountType: account.AccountType,
		Balance:     account.Balance,
	}, nil
}
