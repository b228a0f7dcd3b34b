package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

const expenseViewColumns = "expenses.id, expenses.description, expenses.amount, expenses.date, " +
	"expenses.category_id, categories.name AS category_name"

// expenseQueryService handles expense reads and the summary report.
type expenseQueryService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewExpenseQueryService creates a new ExpenseQueryServicer.
func NewExpenseQueryService(db *gorm.DB, categories CategoryServicer) ExpenseQueryServicer {
	return &expenseQueryService{db: db, categories: categories}
}

// visible is the base query for everything a caller may read: the owner's
// active expenses joined to their category.
func (s *expenseQueryService) visible(ctx context.Context, ownerID uint) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Joins("JOIN categories ON categories.id = expenses.category_id").
		Scopes(ownedBy(ownerID), activeOnly)
}

// GetExpenseByID returns one active expense owned by ownerID.
func (s *expenseQueryService) GetExpenseByID(ctx context.Context, expenseID, ownerID uint) (*models.ExpenseView, error) {
	var view models.ExpenseView
	if err := s.visible(ctx, ownerID).
		Select(expenseViewColumns).
		Where("expenses.id = ?", expenseID).
		Take(&view).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &view, nil
}

// GetExpenses returns one page of the owner's active expenses, newest first.
// Rows sharing a date are ordered by id so pages never overlap.
func (s *expenseQueryService) GetExpenses(
	ctx context.Context,
	ownerID uint,
	page pagination.PageRequest,
) (*pagination.PagedResult[models.ExpenseView], error) {
	page.Defaults()

	var total int64
	if err := s.visible(ctx, ownerID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := []models.ExpenseView{}
	if total > 0 {
		if err := s.visible(ctx, ownerID).
			Select(expenseViewColumns).
			Order("expenses.date DESC").
			Order("expenses.id DESC").
			Scopes(pagination.Paginate(page)).
			Find(&views).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	result := pagination.NewPagedResult(views, total, page.PageNumber, page.PageSize)
	return &result, nil
}

// GetSummary totals the owner's active expenses dated within
// [startDate, endDate], both bounds inclusive, grouped by category.
func (s *expenseQueryService) GetSummary(ctx context.Context, ownerID uint, startDate, endDate time.Time) (*ExpenseSummary, error) {
	start, end := startDate.UTC(), endDate.UTC()
	if start.After(end) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Start date must be before end date")
	}

	var rows []summaryRow
	if err := s.visible(ctx, ownerID).
		Select("expenses.category_id, categories.name AS category_name, expenses.amount").
		Where("expenses.date >= ? AND expenses.date <= ?", start, end).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := summarize(rows)
	return &summary, nil
}

// GetCategories exposes the catalog to read-side callers.
func (s *expenseQueryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetCategories(ctx)
}
