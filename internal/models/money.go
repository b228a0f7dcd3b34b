package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// MoneyScale is the number of fractional digits a stored amount may carry.
const MoneyScale = 2

// MaxMoney is the largest amount that fits a DECIMAL(18,2) column.
var MaxMoney = decimal.RequireFromString("9999999999999999.99")

// Money is an exact amount column. SQLite gives DECIMAL columns NUMERIC
// affinity and would coerce values to REAL, so there the digits are kept as
// TEXT. Postgres gets a fixed-point DECIMAL(18,2).
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d as a Money value.
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// GormDBDataType picks the column type per dialect during AutoMigrate.
func (Money) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "decimal(18,2)"
}
