package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

const (
	// DuplicateWindow is how far back CreateExpense looks for an identical
	// submission from the same owner.
	DuplicateWindow = 10 * time.Second

	maxDescriptionLength = 200
)

// expenseCommandService handles expense mutations.
type expenseCommandService struct {
	db         *gorm.DB
	categories CategoryServicer
	now        func() time.Time
}

// NewExpenseCommandService creates a new ExpenseCommandServicer.
func NewExpenseCommandService(db *gorm.DB, categories CategoryServicer) ExpenseCommandServicer {
	return &expenseCommandService{
		db:         db,
		categories: categories,
		now:        time.Now,
	}
}

// CreateExpense records a new expense for ownerID and returns its id.
//
// The duplicate guard rejects a create when the owner already has an active
// expense with the same amount, description and category dated within the
// last DuplicateWindow. The check and insert share a transaction but are not
// serialized: two truly concurrent submissions can both pass. That is
// accepted; the guard exists for double clicks, not correctness.
func (s *expenseCommandService) CreateExpense(
	ctx context.Context,
	ownerID uint,
	description string,
	amount decimal.Decimal,
	date time.Time,
	categoryID uint,
) (uint, error) {
	if err := validateExpenseFields(ownerID, description, amount); err != nil {
		return 0, err
	}

	exists, err := s.categories.Exists(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrInvalidReference
	}

	expense := &models.Expense{
		Description: description,
		Amount:      models.NewMoney(amount),
		Date:        date.UTC(),
		CategoryID:  categoryID,
		UserID:      ownerID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		duplicate, err := s.hasRecentDuplicate(tx, expense)
		if err != nil {
			return err
		}
		if duplicate {
			return apperrors.ErrDuplicateExpense
		}

		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return expense.ID, nil
}

// hasRecentDuplicate looks for an active expense matching candidate dated in
// [now-DuplicateWindow, now]. Future-dated rows never match. Amounts are
// compared as decimals in Go so the result does not depend on how the driver
// round-trips numeric columns.
func (s *expenseCommandService) hasRecentDuplicate(tx *gorm.DB, candidate *models.Expense) (bool, error) {
	now := s.now().UTC()
	since := now.Add(-DuplicateWindow)

	var recent []models.Expense
	if err := tx.Model(&models.Expense{}).
		Scopes(ownedBy(candidate.UserID), activeOnly).
		Where("expenses.description = ? AND expenses.category_id = ?", candidate.Description, candidate.CategoryID).
		Where("expenses.date >= ? AND expenses.date <= ?", since, now).
		Find(&recent).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, e := range recent {
		if e.Amount.Equal(candidate.Amount.Decimal) {
			return true, nil
		}
	}
	return false, nil
}

// UpdateExpense rewrites description, amount and date of an active expense.
// Category and owner cannot change through this path.
func (s *expenseCommandService) UpdateExpense(
	ctx context.Context,
	expenseID uint,
	ownerID uint,
	description string,
	amount decimal.Decimal,
	date time.Time,
) error {
	if err := validateExpenseFields(ownerID, description, amount); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)

	var expense models.Expense
	if err := db.Scopes(ownedBy(ownerID), activeOnly).
		Where("expenses.id = ?", expenseID).
		Take(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// A delete committed since the lookup leaves nothing to update.
	result := db.Model(&models.Expense{}).
		Where("id = ? AND is_deleted = ?", expense.ID, false).
		Updates(map[string]interface{}{
			"description": description,
			"amount":      models.NewMoney(amount),
			"date":        date.UTC(),
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// DeleteExpense soft-deletes an expense. The lookup includes deleted rows so
// that deleting twice succeeds; only an id the owner never had is NotFound.
func (s *expenseCommandService) DeleteExpense(ctx context.Context, expenseID, ownerID uint) error {
	db := s.db.WithContext(ctx)

	var expense models.Expense
	if err := db.Scopes(ownedBy(ownerID)).
		Where("expenses.id = ?", expenseID).
		Take(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExpenseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if expense.IsDeleted {
		return nil
	}

	deletedAt := s.now().UTC()
	if err := db.Model(&models.Expense{}).
		Where("id = ? AND is_deleted = ?", expense.ID, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": deletedAt,
		}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateExpenseFields(ownerID uint, description string, amount decimal.Decimal) error {
	if ownerID == 0 {
		return apperrors.ErrUnauthorized
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description cannot exceed 200 characters")
	}
	if !amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be greater than zero")
	}
	if !amount.Equal(amount.Round(models.MoneyScale)) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount cannot have more than two decimal places")
	}
	if amount.GreaterThan(models.MaxMoney) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount exceeds the maximum allowed value")
	}
	return nil
}
