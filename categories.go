package main

import (
	"strings"

	"finanzas/models"
)

// categoryUsage counts how the ledger references a category: the caller's
// own transactions and the number of other distinct users. Re-derived on
// every check, never stored.
type categoryUsage struct {
	Mine   int64
	Others int64
	Total  int64
}

func (s *Server) categoryUsage(categoryID, userID uint) (categoryUsage, error) {
	var u categoryUsage
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ? AND user_id = ?", categoryID, userID).
		Count(&u.Mine).Error; err != nil {
		return u, err
	}
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ? AND user_id <> ?", categoryID, userID).
		Distinct("user_id").
		Count(&u.Others).Error; err != nil {
		return u, err
	}
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&u.Total).Error; err != nil {
		return u, err
	}
	return u, nil
}

// categoryPermission is the soft "ownership by exclusive usage" verdict:
// editing requires being the only user who ever posted against the category;
// deletion additionally requires that no transaction references it at all,
// since the ledger is append-only.
type categoryPermission struct {
	CanEdit   bool   `json:"canEdit"`
	CanDelete bool   `json:"canDelete"`
	Reason    string `json:"reason"`
}

func (s *Server) categoryPermission(categoryID, userID uint) (categoryPermission, error) {
	u, err := s.categoryUsage(categoryID, userID)
	if err != nil {
		return categoryPermission{}, err
	}
	switch {
	case u.Others > 0:
		return categoryPermission{Reason: "other users also use this category"}, nil
	case u.Mine == 0 && u.Total == 0:
		return categoryPermission{CanDelete: true, Reason: "category is unused"}, nil
	case u.Mine == 0:
		return categoryPermission{Reason: "you have not used this category"}, nil
	default:
		return categoryPermission{CanEdit: true, Reason: "you can edit but not delete (transactions reference it)"}, nil
	}
}

// normalizeCategoryName is the comparison form for the global uniqueness
// rule: lowercased, surrounding whitespace stripped.
func normalizeCategoryName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
