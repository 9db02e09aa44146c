// Package ledger implements the transaction posting workflow: resolving the
// transaction kind, computing the resulting balance and recording the
// transaction together with the balance update as one atomic unit.
package ledger

// Kind is the closed classification of a transaction type. Types are stored
// as free-text descriptions; anything that does not map onto a Kind is
// treated as invalid for posting.
type Kind int

const (
	KindInvalid Kind = iota
	KindIncome
	KindExpense
)

// Stored descriptions for the two seeded kinds.
const (
	DescriptionIncome  = "Income"
	DescriptionExpense = "Expense"
)

// ParseKind maps a stored type description onto a Kind.
func ParseKind(stored string) (Kind, bool) {
	switch stored {
	case DescriptionIncome:
		return KindIncome, true
	case DescriptionExpense:
		return KindExpense, true
	}
	return KindInvalid, false
}

func (k Kind) String() string {
	switch k {
	case KindIncome:
		return DescriptionIncome
	case KindExpense:
		return DescriptionExpense
	}
	return "Invalid"
}
