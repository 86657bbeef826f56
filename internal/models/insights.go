package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/credtrack/backend/internal/types"
)

// The derived views are pure aggregations over the current collections.
// They are recomputed on every read, there is no caching to invalidate.

// Balance calculates the net balance of the category: the sum of all its
// spend amounts, paid or not. Paid negative adjustments naturally reduce
// it.
func (c Category) Balance(db *gorm.DB) (decimal.Decimal, error) {
	spends, err := c.Spends(db)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, spend := range spends {
		balance = balance.Add(spend.Amount)
	}

	return balance, nil
}

// PendingBalance calculates the sum of the category's unpaid spends.
func (c Category) PendingBalance(db *gorm.DB) (decimal.Decimal, error) {
	var spends []Spend
	err := db.
		Where("category_id = ?", c.ID).
		Where("is_paid = ?", false).
		Find(&spends).Error
	if err != nil {
		return decimal.Zero, err
	}

	pending := decimal.Zero
	for _, spend := range spends {
		pending = pending.Add(spend.Amount)
	}

	return pending, nil
}

// MonthlyTotal calculates the spent and pending sums over all spends
// whose date falls into the month.
func MonthlyTotal(db *gorm.DB, month types.Month) (spent, pending decimal.Decimal, err error) {
	var spends []Spend
	err = db.Find(&spends).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	for _, spend := range spends {
		if !month.Contains(spend.Date) {
			continue
		}

		spent = spent.Add(spend.Amount)
		if !spend.IsPaid {
			pending = pending.Add(spend.Amount)
		}
	}

	return spent, pending, nil
}

// CategoryTotal is the aggregated amount for a single category in a
// breakdown.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Total      decimal.Decimal
}

// CategoryBreakdown groups spends by category and sums their amounts.
// Categories with a zero or negative total are dropped, the rest is
// sorted by descending total. A zero month aggregates over all spends.
//
// The category IDs are taken from the spends, so the breakdown can
// contain IDs of deleted categories.
func CategoryBreakdown(db *gorm.DB, month types.Month) ([]CategoryTotal, error) {
	var spends []Spend
	err := db.Find(&spends).Error
	if err != nil {
		return nil, err
	}

	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, spend := range spends {
		if !month.IsZero() && !month.Contains(spend.Date) {
			continue
		}

		sums[spend.CategoryID] = sums[spend.CategoryID].Add(spend.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for id, total := range sums {
		if !total.IsPositive() {
			continue
		}

		totals = append(totals, CategoryTotal{CategoryID: id, Total: total})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total.Equal(totals[j].Total) {
			// Stable output for equal totals
			return totals[i].CategoryID.String() < totals[j].CategoryID.String()
		}
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	return totals, nil
}

// UpcomingType discriminates the two kinds of upcoming items.
type UpcomingType string

const (
	UpcomingBill UpcomingType = "BILL" // A category statement, due on its next bill date
	UpcomingEMI  UpcomingType = "EMI"  // An unpaid recurring spend, due on its due date
)

// UpcomingItem is a bill or EMI that is due within the requested window.
type UpcomingItem struct {
	Type       UpcomingType
	Date       time.Time
	CategoryID uuid.UUID
	Category   *Category // Set for bills
	Spend      *Spend    // Set for EMIs
}

// UpcomingWithin returns the union of categories whose next bill date
// falls within [today, today+days] and unpaid recurring spends whose due
// date falls in that window and whose EMI end date, if any, has not
// passed. The comparison is day granular: a bill due later today is
// still upcoming.
func UpcomingWithin(db *gorm.DB, today time.Time, days int) ([]UpcomingItem, error) {
	windowStart := startOfDay(today)
	windowEnd := startOfDay(today).AddDate(0, 0, days+1)

	inWindow := func(t time.Time) bool {
		d := startOfDay(t)
		return !d.Before(windowStart) && d.Before(windowEnd)
	}

	var items []UpcomingItem

	var categories []Category
	err := db.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	for _, category := range categories {
		if category.NextBillDate == nil || !inWindow(*category.NextBillDate) {
			continue
		}

		category := category
		items = append(items, UpcomingItem{
			Type:       UpcomingBill,
			Date:       *category.NextBillDate,
			CategoryID: category.ID,
			Category:   &category,
		})
	}

	var spends []Spend
	err = db.
		Where("is_paid = ?", false).
		Where("is_recurring = ?", true).
		Find(&spends).Error
	if err != nil {
		return nil, err
	}

	for _, spend := range spends {
		if spend.DueDate == nil || !inWindow(*spend.DueDate) {
			continue
		}

		if spend.EMIEndDate != nil && startOfDay(*spend.EMIEndDate).Before(windowStart) {
			continue
		}

		spend := spend
		items = append(items, UpcomingItem{
			Type:       UpcomingEMI,
			Date:       *spend.DueDate,
			CategoryID: spend.CategoryID,
			Spend:      &spend,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Date.Before(items[j].Date)
	})

	return items, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.In(time.UTC).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
