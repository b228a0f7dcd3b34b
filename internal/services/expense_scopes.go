package services

import "gorm.io/gorm"

// ownedBy restricts a query to one owner's rows, in any lifecycle state.
func ownedBy(ownerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expenses.user_id = ?", ownerID)
	}
}

// activeOnly excludes soft-deleted rows.
func activeOnly(db *gorm.DB) *gorm.DB {
	return db.Where("expenses.is_deleted = ?", false)
}
