package main

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupIntegrationServer wires the server against a real Postgres. The
// integration tests are opt-in: set DB_DSN_TEST=1 and DB_DSN to run them.
func setupIntegrationServer(t *testing.T) *gin.Engine {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}
	gin.SetMode(gin.TestMode)
	db, err := openDB(dsn)
	require.NoError(t, err)
	autoMigrate(db)
	seedDB(db)
	return NewServer(db, []byte("integration-test-secret")).Routes()
}

func TestFullFlow(t *testing.T) {
	r := setupIntegrationServer(t)

	// Fresh identity per run so reruns never collide on the unique email.
	email := fmt.Sprintf("flow-%d@example.com", time.Now().UnixNano())

	// 1. Register and log in
	w := perform(t, r, http.MethodPost, "/users", "", gin.H{
		"firstName": "Flow", "lastName": "Tester",
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = perform(t, r, http.MethodPost, "/login", "", gin.H{
		"email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["accessToken"].(string)
	require.NotEmpty(t, token)

	// 2. Create an account and a category
	accountName := fmt.Sprintf("Checking %d", time.Now().UnixNano())
	accountID := createAccount(t, r, token, accountName, 100)
	categoryName := fmt.Sprintf("Integration %d", time.Now().UnixNano())
	categoryID := createCategory(t, r, token, categoryName)
	incomeID, expenseID := typeIDs(t, r)

	// 3. Post income then an expense against the updated balance
	w = postTransaction(t, r, token, accountID, categoryID, incomeID, 50, "2025-03-01")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertAmount(t, "150", dataOf(t, w)["newBalance"])

	w = postTransaction(t, r, token, accountID, categoryID, expenseID, 120, "2025-03-02")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := dataOf(t, w)
	assertAmount(t, "30", data["newBalance"])
	assert.Equal(t, true, data["significantDrop"])

	// 4. Overdraw attempt fails and moves nothing
	w = postTransaction(t, r, token, accountID, categoryID, expenseID, 31, "2025-03-03")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, codeInsufficientFunds, decode(t, w)["code"])

	// 5. The listing and statistics see both postings
	w = perform(t, r, http.MethodGet,
		fmt.Sprintf("/transactions?accountId=%d", accountID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	listData := dataOf(t, w)
	assert.Len(t, listData["transactions"].([]any), 2)
	totals := listData["totals"].(map[string]any)
	assertAmount(t, "50", totals["totalIncome"])
	assertAmount(t, "120", totals["totalExpenses"])

	w = perform(t, r, http.MethodGet, "/statistics/accounts", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	stats := dataOf(t, w)
	assert.Equal(t, float64(1), stats["totalAccounts"])
	assertAmount(t, "30", stats["totalBalance"])

	// 6. The account is referenced by the ledger and refuses deletion
	w = perform(t, r, http.MethodDelete,
		fmt.Sprintf("/accounts/%d", accountID), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
