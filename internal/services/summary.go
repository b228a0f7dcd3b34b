package services

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// summaryRow is one expense reduced to what the summary needs.
type summaryRow struct {
	CategoryID   uint
	CategoryName string
	Amount       decimal.Decimal
}

// summarize groups rows by category. Sums stay exact; only the percentage is
// rounded, to two places, half away from zero. Groups are ordered by amount
// descending, then by category id.
func summarize(rows []summaryRow) ExpenseSummary {
	total := decimal.Zero
	groups := make(map[uint]*CategorySummary)

	for _, row := range rows {
		total = total.Add(row.Amount)

		group, ok := groups[row.CategoryID]
		if !ok {
			group = &CategorySummary{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
				Amount:       decimal.Zero,
			}
			groups[row.CategoryID] = group
		}
		group.Amount = group.Amount.Add(row.Amount)
	}

	categories := make([]CategorySummary, 0, len(groups))
	for _, group := range groups {
		group.Percentage = percentageOf(group.Amount, total)
		categories = append(categories, *group)
	}

	sort.Slice(categories, func(i, j int) bool {
		if cmp := categories[i].Amount.Cmp(categories[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return categories[i].CategoryID < categories[j].CategoryID
	})

	return ExpenseSummary{TotalAmount: total, Categories: categories}
}

func percentageOf(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(total).Round(2).InexactFloat64()
}
