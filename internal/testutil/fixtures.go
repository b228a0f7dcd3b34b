package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expensetracker/internal/models"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Seeded category ids, see models.DefaultCategories.
const (
	CategoryGroceries uint = 1
	CategoryLeisure   uint = 2
	CategoryUtilities uint = 4
)

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense inserts an expense row directly, bypassing the service
// rules. amount is a decimal string such as "12.50".
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID uint, amount string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      models.NewMoney(decimal.RequireFromString(amount)),
		Date:        date.UTC(),
		CategoryID:  categoryID,
		UserID:      userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// SoftDeleteTestExpense marks an expense deleted without going through the service.
func SoftDeleteTestExpense(t *testing.T, db *gorm.DB, expense *models.Expense) {
	t.Helper()

	now := time.Now().UTC()
	if err := db.Model(expense).Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now}).Error; err != nil {
		t.Fatalf("failed to soft-delete test expense: %v", err)
	}
}
