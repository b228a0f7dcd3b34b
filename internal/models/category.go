package models

// Category is an entry of the seeded expense category catalog. Ids are fixed
// at seed time and never generated.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// DefaultCategories is the catalog every store is seeded with.
var DefaultCategories = []Category{
	{ID: 1, Name: "Groceries"},
	{ID: 2, Name: "Leisure"},
	{ID: 3, Name: "Electronics"},
	{ID: 4, Name: "Utilities"},
	{ID: 5, Name: "Clothing"},
	{ID: 6, Name: "Health"},
	{ID: 7, Name: "Others"},
}
