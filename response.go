package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"finanzas/pkg/ledger"
)

// Stable failure codes carried in every error response so clients can
// distinguish outcomes without parsing prose.
const (
	codeUnauthorized      = "unauthorized"
	codeValidation        = "validation_error"
	codeNotFound          = "not_found"
	codeAccountInactive   = "account_inactive"
	codeInvalidType       = "invalid_type"
	codeInsufficientFunds = "insufficient_funds"
	codeConflict          = "conflict"
	codePersistence       = "persistence_error"
	codeInternal          = "internal_error"
)

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "data": data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"success": false, "code": code, "message": message})
}

// respondLedgerError maps posting failures onto the response taxonomy.
// Business-rule failures keep their message; storage faults are logged and
// surfaced opaquely.
func respondLedgerError(c *gin.Context, err error) {
	var validation *ledger.ValidationError
	var persistence *ledger.PersistenceError
	switch {
	case errors.As(err, &validation):
		respondError(c, http.StatusBadRequest, codeValidation, validation.Error())
	case errors.Is(err, ledger.ErrAccountNotOwned):
		respondError(c, http.StatusNotFound, codeNotFound, "account does not exist or is not owned by you")
	case errors.Is(err, ledger.ErrAccountInactive):
		respondError(c, http.StatusBadRequest, codeAccountInactive, "cannot post transactions against an inactive account")
	case errors.Is(err, ledger.ErrInvalidType):
		respondError(c, http.StatusBadRequest, codeInvalidType, "invalid transaction type")
	case errors.Is(err, ledger.ErrInsufficientFunds):
		respondError(c, http.StatusBadRequest, codeInsufficientFunds, "insufficient funds for this expense")
	case errors.As(err, &persistence):
		log.Printf("posting aborted, unit rolled back: %v", persistence.Err)
		respondError(c, http.StatusInternalServerError, codePersistence, "storage failure, nothing was recorded")
	default:
		log.Printf("unexpected posting error: %v", err)
		respondError(c, http.StatusInternalServerError, codeInternal, "internal error")
	}
}
