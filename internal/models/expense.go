package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record owned by one user. Deletion is a state
// transition on the same row: IsDeleted flips to true and DeletedAt records
// when, so every query has to say which states it includes.
type Expense struct {
	Base
	Description string     `gorm:"size:200;not null" json:"description"`
	Amount      Money      `gorm:"not null" json:"amount"`
	Date        time.Time  `gorm:"not null;index:idx_expenses_user_date,priority:2" json:"date"`
	CategoryID  uint       `gorm:"not null" json:"categoryId"`
	UserID      uint       `gorm:"not null;index:idx_expenses_user_date,priority:1" json:"userId"`
	IsDeleted   bool       `gorm:"not null;default:false;index" json:"isDeleted"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// ExpenseView is the read projection returned to callers: the expense plus the
// resolved category name.
type ExpenseView struct {
	ID           uint            `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
}
