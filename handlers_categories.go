package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"finanzas/models"
)

func (s *Server) listCategoriesHandler(c *gin.Context) {
	var categories []models.Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "categories available for use", categories)
}

func (s *Server) myCategoriesHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	used, err := s.reports.UsedCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "categories in use", used)
}

// createCategoryHandler is a hybrid create: categories are global, so a name
// that already exists (case/whitespace-insensitively) is returned as a
// success instead of a duplicate error.
func (s *Server) createCategoryHandler(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	var existing models.Category
	if err := s.db.Where("LOWER(TRIM(name)) = ?", normalizeCategoryName(req.Name)).
		First(&existing).Error; err == nil {
		respondOK(c, "category already existed, you can use it now", existing)
		return
	}
	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(&category).Error; err != nil {
		if isUniqueConstraintError(err) {
			// lost the race; return the winner
			if err2 := s.db.Where("LOWER(TRIM(name)) = ?", normalizeCategoryName(req.Name)).
				First(&existing).Error; err2 == nil {
				respondOK(c, "category already existed, you can use it now", existing)
				return
			}
		}
		respondError(c, http.StatusInternalServerError, codePersistence, "create failed")
		return
	}
	respondOK(c, "new category created and available for everyone", category)
}

func (s *Server) updateCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		CategoryID  uint   `json:"categoryId" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, codeNotFound, "category does not exist")
		return
	}
	perm, err := s.categoryPermission(category.ID, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "permission check failed")
		return
	}
	if !perm.CanEdit {
		respondError(c, http.StatusConflict, codeConflict, perm.Reason)
		return
	}
	var clash models.Category
	if err := s.db.Where("LOWER(TRIM(name)) = ? AND id <> ?", normalizeCategoryName(req.Name), category.ID).
		First(&clash).Error; err == nil {
		respondError(c, http.StatusConflict, codeConflict, "another category already uses that name")
		return
	}
	category.Name = strings.TrimSpace(req.Name)
	category.Description = strings.TrimSpace(req.Description)
	if err := s.db.Save(&category).Error; err != nil {
		if isUniqueConstraintError(err) {
			respondError(c, http.StatusConflict, codeConflict, "another category already uses that name")
			return
		}
		respondError(c, http.StatusInternalServerError, codePersistence, "update failed")
		return
	}
	respondOK(c, "category updated", category)
}

// deleteCategoryHandler removes a category only when nothing in the ledger
// references it, no matter who asks.
func (s *Server) deleteCategoryHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	var req struct {
		CategoryID uint `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	var category models.Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		respondError(c, http.StatusNotFound, codeNotFound, "category does not exist")
		return
	}
	perm, err := s.categoryPermission(category.ID, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "permission check failed")
		return
	}
	if !perm.CanDelete {
		respondError(c, http.StatusConflict, codeConflict, perm.Reason)
		return
	}
	if err := s.db.Delete(&category).Error; err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "delete failed")
		return
	}
	respondOK(c, "category deleted", category)
}

func (s *Server) categoryPermissionsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	categoryID, err := strconv.ParseUint(c.Query("categoryId"), 10, 64)
	if err != nil || categoryID == 0 {
		respondError(c, http.StatusBadRequest, codeValidation, "categoryId is required")
		return
	}
	perm, err := s.categoryPermission(uint(categoryID), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "permission check failed")
		return
	}
	respondOK(c, "permissions checked", perm)
}
