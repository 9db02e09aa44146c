package ledger

import "github.com/shopspring/decimal"

// significantDropThreshold is the percent change at or above which an
// expense is flagged for alerting.
const significantDropThreshold = 50

// BalanceChange is the outcome of applying one transaction to a balance.
// Delta is signed: negative for expenses, positive for income.
type BalanceChange struct {
	Previous        decimal.Decimal
	New             decimal.Decimal
	Delta           decimal.Decimal
	PercentChange   float64
	SignificantDrop bool
}

// Apply computes the balance after posting amount with the given kind.
// Expenses larger than the current balance fail with ErrInsufficientFunds;
// income is added unconditionally. Pure: no storage involved.
func Apply(current decimal.Decimal, kind Kind, amount decimal.Decimal) (BalanceChange, error) {
	var newBalance, delta decimal.Decimal
	switch kind {
	case KindIncome:
		newBalance = current.Add(amount)
		delta = amount
	case KindExpense:
		if amount.GreaterThan(current) {
			return BalanceChange{}, ErrInsufficientFunds
		}
		newBalance = current.Sub(amount)
		delta = amount.Neg()
	default:
		return BalanceChange{}, ErrInvalidType
	}
	pct := magnitudePercent(current, newBalance)
	return BalanceChange{
		Previous:        current,
		New:             newBalance,
		Delta:           delta,
		PercentChange:   pct,
		SignificantDrop: kind == KindExpense && pct >= significantDropThreshold,
	}, nil
}

// magnitudePercent is |new-current| / current * 100. A zero current balance
// is defined as 100 when the new balance is positive and 0 otherwise, so the
// signal never divides by zero.
func magnitudePercent(current, newBalance decimal.Decimal) float64 {
	if current.IsZero() {
		if newBalance.IsPositive() {
			return 100
		}
		return 0
	}
	return newBalance.Sub(current).Div(current).Abs().
		Mul(decimal.NewFromInt(100)).InexactFloat64()
}

// ChangePercent is the signed period-over-period change used by the
// statistics projections, with the same zero guard as magnitudePercent.
func ChangePercent(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	return current.Sub(previous).Div(previous).
		Mul(decimal.NewFromInt(100)).InexactFloat64()
}
