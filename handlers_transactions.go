package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finanzas/pkg/ledger"
	"finanzas/pkg/reports"
)

// postTransactionHandler is the posting endpoint. The owner comes from the
// token subject, never from the body.
func (s *Server) postTransactionHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		Date        string          `json:"date" binding:"required"`
		Description string          `json:"description"`
		CategoryID  uint            `json:"categoryId" binding:"required"`
		AccountID   uint            `json:"accountId" binding:"required"`
		TypeID      uint            `json:"typeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "date must be YYYY-MM-DD or RFC3339")
		return
	}

	receipt, err := s.ledger.Post(c.Request.Context(), ledger.PostingInput{
		UserID:      userID,
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		TypeID:      req.TypeID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		respondLedgerError(c, err)
		return
	}
	respondOK(c, receipt.Kind.String()+" recorded successfully", gin.H{
		"transaction":     receipt.Transaction,
		"previousBalance": receipt.PreviousBalance,
		"newBalance":      receipt.NewBalance,
		"delta":           receipt.Delta,
		"percentChange":   receipt.PercentChange,
		"significantDrop": receipt.SignificantDrop,
	})
}

func (s *Server) listTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	filter, err := parseTransactionFilter(c, userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)

	result, err := s.reports.List(c.Request.Context(), filter, page, limit,
		c.Query("orderBy"), c.Query("orderDirection"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, strconv.Itoa(len(result.Transactions))+" transactions found", result)
}

func (s *Server) recentTransactionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	limit := intQuery(c, "limit", 5)
	rows, err := s.reports.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "recent transactions", rows)
}

func (s *Server) categorySummaryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	filter, err := parseTransactionFilter(c, userID)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	breakdown, err := s.reports.CategorySummary(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "category summary", breakdown)
}

// parseTransactionFilter reads the optional listing filters from the query
// string into a typed filter. Malformed values are rejected, not ignored.
func parseTransactionFilter(c *gin.Context, userID uint) (reports.TransactionFilter, error) {
	f := reports.TransactionFilter{UserID: userID}
	if v := c.Query("dateFrom"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errBadQuery("dateFrom")
		}
		f.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return f, errBadQuery("dateTo")
		}
		f.DateTo = &t
	}
	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, errBadQuery("categoryId")
		}
		f.CategoryID = uint(id)
	}
	if v := c.Query("typeId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, errBadQuery("typeId")
		}
		f.TypeID = uint(id)
	}
	if v := c.Query("accountId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return f, errBadQuery("accountId")
		}
		f.AccountID = uint(id)
	}
	if v := c.Query("amountMin"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errBadQuery("amountMin")
		}
		f.AmountMin = &d
	}
	if v := c.Query("amountMax"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, errBadQuery("amountMax")
		}
		f.AmountMax = &d
	}
	return f, nil
}

type badQueryError string

func errBadQuery(param string) error { return badQueryError(param) }

func (e badQueryError) Error() string { return "malformed query parameter: " + string(e) }

// parseDate accepts a plain date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
