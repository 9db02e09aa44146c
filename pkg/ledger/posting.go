package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finanzas/models"
)

// Service records transactions. It holds the injected DB handle; every Post
// call runs inside its own database transaction.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// PostingInput is the fully-validated command for one posting. All ids are
// required; Amount must be positive.
type PostingInput struct {
	UserID      uint
	AccountID   uint
	CategoryID  uint
	TypeID      uint
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

func (in PostingInput) validate() error {
	switch {
	case in.UserID == 0:
		return &ValidationError{Field: "userId", Reason: "required"}
	case in.AccountID == 0:
		return &ValidationError{Field: "accountId", Reason: "required"}
	case in.CategoryID == 0:
		return &ValidationError{Field: "categoryId", Reason: "required"}
	case in.TypeID == 0:
		return &ValidationError{Field: "typeId", Reason: "required"}
	case !in.Amount.IsPositive():
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	case in.Date.IsZero():
		return &ValidationError{Field: "date", Reason: "required"}
	}
	return nil
}

// Receipt is returned on a successful posting: the inserted row plus the
// balance movement it caused.
type Receipt struct {
	Transaction     models.Transaction
	Kind            Kind
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Delta           decimal.Decimal
	PercentChange   float64
	SignificantDrop bool
}

// Post runs the full posting workflow: validate input, check the account,
// resolve the type, compute the new balance, then insert the transaction and
// update the balance as one atomic unit. On any failure nothing is written.
//
// The account row is read under SELECT ... FOR UPDATE so a concurrent poster
// against the same account blocks until this unit commits and then sees the
// updated balance.
func (s *Service) Post(ctx context.Context, in PostingInput) (*Receipt, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var receipt *Receipt
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			// sqlite has no FOR UPDATE; its single-writer transaction
			// lock serializes posters the same way.
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var account models.Account
		if err := q.Where("id = ? AND user_id = ?", in.AccountID, in.UserID).
			First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotOwned
			}
			return &PersistenceError{Err: err}
		}
		if account.Status != models.AccountActive {
			return ErrAccountInactive
		}

		var transactionType models.TransactionType
		if err := tx.First(&transactionType, in.TypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidType
			}
			return &PersistenceError{Err: err}
		}
		kind, ok := ParseKind(transactionType.Description)
		if !ok {
			return ErrInvalidType
		}

		change, err := Apply(account.Balance, kind, in.Amount)
		if err != nil {
			return err
		}

		row := models.Transaction{
			Amount:      in.Amount,
			Date:        in.Date,
			Description: in.Description,
			CategoryID:  in.CategoryID,
			UserID:      in.UserID,
			AccountID:   in.AccountID,
			TypeID:      in.TypeID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return &PersistenceError{Err: err}
		}

		// Scoped by owner as well: if the account was reassigned between
		// the lock and this write, zero rows match and the unit aborts.
		res := tx.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", in.AccountID, in.UserID).
			Update("balance", change.New)
		if res.Error != nil {
			return &PersistenceError{Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return &PersistenceError{Err: errors.New("balance update matched no rows")}
		}

		receipt = &Receipt{
			Transaction:     row,
			Kind:            kind,
			PreviousBalance: change.Previous,
			NewBalance:      change.New,
			Delta:           change.Delta,
			PercentChange:   change.PercentChange,
			SignificantDrop: change.SignificantDrop,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
