package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finanzas/models"
)

func (s *Server) listAccountsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&accounts).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "accounts listed", accounts)
}

func (s *Server) createAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		Name        string           `json:"name" binding:"required"`
		AccountType string           `json:"accountType" binding:"required"`
		Balance     *decimal.Decimal `json:"balance"`
		Status      string           `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	status := req.Status
	if status == "" {
		status = models.AccountActive
	}
	if !models.ValidAccountStatus(status) {
		respondError(c, http.StatusBadRequest, codeValidation, "status must be active or inactive")
		return
	}
	balance := decimal.Zero
	if req.Balance != nil {
		balance = *req.Balance
	}

	name := strings.TrimSpace(req.Name)
	var existing models.Account
	if err := s.db.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, codeConflict, "an account with that name already exists")
		return
	}
	account := models.Account{
		Name:        name,
		AccountType: strings.TrimSpace(req.AccountType),
		Balance:     balance,
		Status:      status,
		UserID:      userID,
	}
	if err := s.db.Create(&account).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, http.StatusConflict, codeConflict, "an account with that name already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, codePersistence, "create failed")
		return
	}
	respondOK(c, "account registered", account)
}

// updateAccountHandler changes name, type and status. The balance is owned
// by the posting workflow: a request that carries one is rejected instead of
// silently dropped.
func (s *Server) updateAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	accountID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || accountID == 0 {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid account id")
		return
	}
	var req struct {
		Name        string           `json:"name" binding:"required"`
		AccountType string           `json:"accountType" binding:"required"`
		Status      string           `json:"status" binding:"required"`
		Balance     *decimal.Decimal `json:"balance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	if req.Balance != nil {
		respondError(c, http.StatusBadRequest, codeValidation, "balance cannot be set directly; post a transaction instead")
		return
	}
	if !models.ValidAccountStatus(req.Status) {
		respondError(c, http.StatusBadRequest, codeValidation, "status must be active or inactive")
		return
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		respondError(c, http.StatusNotFound, codeNotFound, "account not found")
		return
	}
	name := strings.TrimSpace(req.Name)
	var clash models.Account
	if err := s.db.Where("user_id = ? AND name = ? AND id <> ?", userID, name, account.ID).
		First(&clash).Error; err == nil {
		respondError(c, http.StatusConflict, codeConflict, "another account already uses that name")
		return
	}
	account.Name = name
	account.AccountType = strings.TrimSpace(req.AccountType)
	account.Status = req.Status
	if err := s.db.Save(&account).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "update failed")
		return
	}
	respondOK(c, "account updated", account)
}

// deleteAccountHandler refuses while the ledger still references the
// account; the ledger is append-only so those rows never go away.
func (s *Server) deleteAccountHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	accountID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || accountID == 0 {
		respondError(c, http.StatusBadRequest, codeValidation, "invalid account id")
		return
	}
	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error; err != nil {
		respondError(c, http.StatusNotFound, codeNotFound, "account not found")
		return
	}
	var referenced int64
	s.db.Model(&models.Transaction{}).Where("account_id = ?", account.ID).Count(&referenced)
	if referenced > 0 {
		respondError(c, http.StatusConflict, codeConflict, "account has transactions and cannot be deleted")
		return
	}
	if err := s.db.Delete(&account).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "delete failed")
		return
	}
	respondOK(c, "account deleted", account)
}
