package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/models"
)

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodMonthly, ParsePeriod("monthly"))
	assert.Equal(t, PeriodYearly, ParsePeriod("yearly"))
	assert.Equal(t, PeriodTotal, ParsePeriod("total"))
	assert.Equal(t, PeriodMonthly, ParsePeriod(""))
	assert.Equal(t, PeriodMonthly, ParsePeriod("weekly"))
}

func TestPeriodRanges(t *testing.T) {
	now := time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

	from, to := PeriodMonthly.Range(now)
	assert.Equal(t, date(2025, 3, 1), from)
	assert.Equal(t, date(2025, 4, 1), to)

	from, to = PeriodMonthly.PreviousRange(now)
	assert.Equal(t, date(2025, 2, 1), from)
	assert.Equal(t, date(2025, 3, 1), to)

	from, to = PeriodYearly.Range(now)
	assert.Equal(t, date(2025, 1, 1), from)
	assert.Equal(t, date(2026, 1, 1), to)

	from, to = PeriodYearly.PreviousRange(now)
	assert.Equal(t, date(2024, 1, 1), from)
	assert.Equal(t, date(2025, 1, 1), to)

	from, to = PeriodTotal.Range(now)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}

func TestPeriodRangeCrossesYearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	from, to := PeriodMonthly.Range(now)
	assert.Equal(t, date(2025, 1, 1), from)
	assert.Equal(t, date(2025, 2, 1), to)

	from, to = PeriodMonthly.PreviousRange(now)
	assert.Equal(t, date(2024, 12, 1), from)
	assert.Equal(t, date(2025, 1, 1), to)
}

func TestFinancialSummaryMonthly(t *testing.T) {
	f := newReportFixture(t)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	s, err := f.agg.FinancialSummary(context.Background(), f.user.ID, PeriodMonthly, now)
	require.NoError(t, err)

	assert.Equal(t, PeriodMonthly, s.Period)
	require.NotNil(t, s.From)
	assert.Equal(t, date(2025, 3, 1), *s.From)

	assert.True(t, s.Income.Total.Equal(d("100")), "income %s", s.Income.Total)
	assert.True(t, s.Income.Previous.Equal(d("50")))
	assert.InDelta(t, 100, s.Income.ChangePercent, 1e-9)

	assert.True(t, s.Expenses.Total.Equal(d("60")), "expenses %s", s.Expenses.Total)
	assert.True(t, s.Expenses.Previous.IsZero())
	// No prior-period expenses: the change is pinned at 100, never a division
	// by zero.
	assert.Equal(t, float64(100), s.Expenses.ChangePercent)

	assert.True(t, s.Net.Equal(d("40")))
	// Only active accounts count toward the balance.
	assert.True(t, s.ActiveBalance.Equal(d("70")), "active balance %s", s.ActiveBalance)

	require.Len(t, s.RecentTransactions, 5)
	assert.Equal(t, "storage unit", s.RecentTransactions[0].Description)

	require.Len(t, s.TopExpenseCategories, 2)
	assert.Equal(t, "Groceries", s.TopExpenseCategories[0].Category)
	assert.True(t, s.TopExpenseCategories[0].Total.Equal(d("50")))
	assert.EqualValues(t, 2, s.TopExpenseCategories[0].Count)
	assert.Equal(t, "Rent", s.TopExpenseCategories[1].Category)
}

func TestFinancialSummaryTotalPeriod(t *testing.T) {
	f := newReportFixture(t)
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)

	s, err := f.agg.FinancialSummary(context.Background(), f.user.ID, PeriodTotal, now)
	require.NoError(t, err)

	assert.Nil(t, s.From)
	assert.Nil(t, s.To)
	assert.True(t, s.Income.Total.Equal(d("150")))
	assert.True(t, s.Expenses.Total.Equal(d("60")))
	// The unbounded period compares against itself, so change is zero.
	assert.Equal(t, float64(0), s.Income.ChangePercent)
	assert.Equal(t, float64(0), s.Expenses.ChangePercent)
}

func TestFinancialSummaryEmptyUser(t *testing.T) {
	f := newReportFixture(t)
	fresh := models.User{FirstName: "New", LastName: "User", Email: "empty@example.com", HashedPassword: []byte("x")}
	require.NoError(t, f.db.Create(&fresh).Error)

	s, err := f.agg.FinancialSummary(context.Background(), fresh.ID, PeriodMonthly, time.Now())
	require.NoError(t, err)
	assert.True(t, s.Income.Total.IsZero())
	assert.Equal(t, float64(0), s.Income.ChangePercent)
	assert.True(t, s.ActiveBalance.IsZero())
	assert.Empty(t, s.RecentTransactions)
	assert.Empty(t, s.TopExpenseCategories)
}

func TestAccountSummary(t *testing.T) {
	f := newReportFixture(t)

	s, err := f.agg.AccountSummary(context.Background(), f.user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, s.TotalAccounts)
	assert.EqualValues(t, 2, s.ActiveAccounts)
	assert.EqualValues(t, 1, s.InactiveAccounts)
	assert.True(t, s.ActiveBalance.Equal(d("70")), "active %s", s.ActiveBalance)
	assert.True(t, s.TotalBalance.Equal(d("570")), "total %s", s.TotalBalance)
	assert.True(t, s.AverageActiveBalance.Equal(d("35")), "avg %s", s.AverageActiveBalance)

	// Extremes consider active accounts only: the closed 500 never wins.
	require.NotNil(t, s.HighestBalance)
	assert.Equal(t, "Checking", s.HighestBalance.Name)
	assert.True(t, s.HighestBalance.Balance.Equal(d("40")))
	require.NotNil(t, s.LowestBalance)
	assert.Equal(t, "Savings", s.LowestBalance.Name)
	assert.True(t, s.LowestBalance.Balance.Equal(d("30")))
}

func TestAccountSummaryNoActiveAccounts(t *testing.T) {
	f := newReportFixture(t)
	fresh := models.User{FirstName: "New", LastName: "User", Email: "none@example.com", HashedPassword: []byte("x")}
	require.NoError(t, f.db.Create(&fresh).Error)

	s, err := f.agg.AccountSummary(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, s.TotalAccounts)
	assert.True(t, s.TotalBalance.IsZero())
	assert.Nil(t, s.HighestBalance)
	assert.Nil(t, s.LowestBalance)
}
