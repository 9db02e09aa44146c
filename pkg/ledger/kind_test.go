package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Income")
	assert.True(t, ok)
	assert.Equal(t, KindIncome, k)

	k, ok = ParseKind("Expense")
	assert.True(t, ok)
	assert.Equal(t, KindExpense, k)
}

func TestParseKindRejectsUnknownDescriptions(t *testing.T) {
	// The mapping is exact: case variants and other stored descriptions are
	// configuration errors, equivalent to invalid.
	for _, s := range []string{"", "income", "EXPENSE", "Transfer", "Ingreso"} {
		k, ok := ParseKind(s)
		assert.False(t, ok, "%q should not parse", s)
		assert.Equal(t, KindInvalid, k)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Income", KindIncome.String())
	assert.Equal(t, "Expense", KindExpense.String())
	assert.Equal(t, "Invalid", KindInvalid.String())
}
