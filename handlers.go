package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finanzas/models"
	"finanzas/pkg/ledger"
	"finanzas/pkg/reports"
)

// Server bundles the injected DB handle and the services built on it.
// Handlers are methods so nothing depends on package-level state.
type Server struct {
	db        *gorm.DB
	jwtSecret []byte
	ledger    *ledger.Service
	reports   *reports.Aggregator
}

func NewServer(db *gorm.DB, jwtSecret []byte) *Server {
	return &Server{
		db:        db,
		jwtSecret: jwtSecret,
		ledger:    ledger.NewService(db),
		reports:   reports.NewAggregator(db),
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.Default()

	r.POST("/login", s.loginHandler)
	r.POST("/users", s.registerUserHandler)
	r.GET("/categories", s.listCategoriesHandler)
	r.GET("/transaction-types", s.listTransactionTypesHandler)

	auth := r.Group("")
	auth.Use(s.jwtAuthMiddleware())
	auth.GET("/users", s.listUsersHandler)
	auth.PUT("/users", s.updateUserHandler)
	auth.DELETE("/users", s.deleteUserHandler)

	auth.GET("/accounts", s.listAccountsHandler)
	auth.POST("/accounts", s.createAccountHandler)
	auth.PUT("/accounts/:id", s.updateAccountHandler)
	auth.DELETE("/accounts/:id", s.deleteAccountHandler)

	auth.GET("/categories/mine", s.myCategoriesHandler)
	auth.GET("/categories/permissions", s.categoryPermissionsHandler)
	auth.POST("/categories", s.createCategoryHandler)
	auth.PUT("/categories", s.updateCategoryHandler)
	auth.DELETE("/categories", s.deleteCategoryHandler)

	auth.POST("/transactions", s.postTransactionHandler)
	auth.GET("/transactions", s.listTransactionsHandler)
	auth.GET("/transactions/recent", s.recentTransactionsHandler)
	auth.GET("/transactions/summary", s.categorySummaryHandler)

	auth.GET("/statistics/financial", s.financialStatisticsHandler)
	auth.GET("/statistics/accounts", s.accountStatisticsHandler)

	return r
}

func (s *Server) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	user, err := s.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
		return
	}
	token, err := s.mintToken(user.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codeInternal, "failed to generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": token,
		"userId":      user.ID,
		"userInfo":    user,
	})
}

func (s *Server) registerUserHandler(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	user, err := s.RegisterUser(models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		respondError(c, http.StatusConflict, codeConflict, err.Error())
		return
	}
	respondOK(c, "user registered successfully", user)
}

func (s *Server) listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "users listed", users)
}

// updateUserHandler updates the authenticated user's own profile. The target
// id comes from the token, never from the body.
func (s *Server) updateUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "missing subject")
		return
	}
	var req struct {
		FirstName string `json:"firstName" binding:"required"`
		LastName  string `json:"lastName" binding:"required"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		Email     string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, codeNotFound, "user not found")
		return
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Address = req.Address
	user.Email = req.Email
	if err := s.db.Save(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, http.StatusConflict, codeConflict, "email already in use")
			return
		}
		respondError(c, http.StatusInternalServerError, codePersistence, "update failed")
		return
	}
	respondOK(c, "user updated", user)
}

// deleteUserHandler removes the authenticated user. Users with accounts or
// posted transactions cannot be deleted.
func (s *Server) deleteUserHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "missing subject")
		return
	}
	var accounts int64
	s.db.Model(&models.Account{}).Where("user_id = ?", userID).Count(&accounts)
	var transactions int64
	s.db.Model(&models.Transaction{}).Where("user_id = ?", userID).Count(&transactions)
	if accounts > 0 || transactions > 0 {
		respondError(c, http.StatusConflict, codeConflict, "user still owns accounts or transactions")
		return
	}
	if err := s.db.Delete(&models.User{}, userID).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "delete failed")
		return
	}
	respondOK(c, "user deleted", nil)
}

func (s *Server) listTransactionTypesHandler(c *gin.Context) {
	var types []models.TransactionType
	if err := s.db.Order("description").Find(&types).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "transaction types listed", types)
}
