package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryServicer is the read-only category catalog. Every call reads
// through to the store; nothing is cached in process.
type CategoryServicer interface {
	Exists(ctx context.Context, categoryID uint) (bool, error)
	GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// ExpenseCommandServicer mutates expenses. Every operation is scoped to
// ownerID, which always comes from the authenticated caller.
type ExpenseCommandServicer interface {
	CreateExpense(ctx context.Context, ownerID uint, description string, amount decimal.Decimal, date time.Time, categoryID uint) (uint, error)
	UpdateExpense(ctx context.Context, expenseID, ownerID uint, description string, amount decimal.Decimal, date time.Time) error
	DeleteExpense(ctx context.Context, expenseID, ownerID uint) error
}

// CategorySummary is one category's share of an ExpenseSummary.
type CategorySummary struct {
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
	Percentage   float64         `json:"percentage"`
}

// ExpenseSummary aggregates an owner's expenses over a date range.
type ExpenseSummary struct {
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Categories  []CategorySummary `json:"categories"`
}

// ExpenseQueryServicer reads expenses. Soft-deleted rows are never returned.
type ExpenseQueryServicer interface {
	GetExpenseByID(ctx context.Context, expenseID, ownerID uint) (*models.ExpenseView, error)
	GetExpenses(ctx context.Context, ownerID uint, page pagination.PageRequest) (*pagination.PagedResult[models.ExpenseView], error)
	GetSummary(ctx context.Context, ownerID uint, startDate, endDate time.Time) (*ExpenseSummary, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
