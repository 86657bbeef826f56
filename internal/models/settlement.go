package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Epsilon is the tolerance for amount comparisons during settlement.
// Clients that compute amounts with binary floating point can be off by
// fractions of the smallest currency unit, which must not produce
// spurious adjustment records.
var Epsilon = decimal.NewFromFloat(0.01)

// Descriptions for adjustment spends written by MarkAllPaid.
const (
	DescriptionPartialPayment = "Partial Payment / Credit"
	DescriptionBillAdjustment = "Bill Adjustment / Fees"
)

// SettlementResult describes what a settlement operation changed.
type SettlementResult struct {
	Settled    []Spend   // Spends that were marked paid
	Generated  []Spend   // Next occurrences created for recurring spends
	Adjustment *Spend    // The adjustment/credit record, if one was written
	Category   *Category // The category, when its next bill date was advanced
}

// MarkAllPaid settles the outstanding balance of a category.
//
// Unpaid spends are walked oldest first so that the oldest debts are
// cleared first, mirroring real statement behavior. When paidAmount is
// nil the full outstanding balance is settled. When it is set, a spend is
// only marked paid if its full amount still fits into the remaining
// payment; spends are never split. A remainder that exceeds Epsilon is
// written as a single adjustment spend with the negated remainder as
// amount: a credit when the category was overpaid, a remaining-owed
// record when it was underpaid.
//
// Settling a recurring spend generates its next occurrence, and when the
// category carries a next bill date, settling at least one recurring
// spend advances it by one month. The advance is a fixed monthly cadence
// tied to credit card statements, independent of the spend's own
// frequency.
//
// A categoryID with no unpaid spends is a complete no-op, not an error,
// so the operation is safe against stale IDs.
//
// All writes happen in a single transaction.
func MarkAllPaid(db *gorm.DB, categoryID uuid.UUID, paidAmount *decimal.Decimal) (SettlementResult, error) {
	if paidAmount != nil && paidAmount.IsNegative() {
		return SettlementResult{}, ErrPaidAmountNegative
	}

	var result SettlementResult

	err := db.Transaction(func(tx *gorm.DB) error {
		// The condition must be explicit: a struct condition is dropped
		// for a zero-valued ID and would select every category's spends.
		var unpaid []Spend
		err := tx.
			Where("category_id = ?", categoryID).
			Where("is_paid = ?", false).
			Order("datetime(spends.date) ASC, datetime(spends.created_at) ASC").
			Find(&unpaid).Error
		if err != nil {
			return err
		}

		if len(unpaid) == 0 {
			return nil
		}

		totalUnpaid := decimal.Zero
		for _, spend := range unpaid {
			totalUnpaid = totalUnpaid.Add(spend.Amount)
		}

		fullSettle := paidAmount == nil
		remaining := totalUnpaid
		if !fullSettle {
			remaining = *paidAmount
		}

		now := time.Now().In(time.UTC)

		var accepted []Spend
		var generated []Spend
		for _, spend := range unpaid {
			if !fullSettle {
				if spend.Amount.GreaterThan(remaining.Add(Epsilon)) {
					// Does not fit into the remaining payment, leave unpaid
					continue
				}
				remaining = remaining.Sub(spend.Amount)
			}

			accepted = append(accepted, spend)

			if spend.IsRecurring {
				if next, ok := spend.NextOccurrence(now); ok {
					generated = append(generated, next)
				}
			}
		}

		var adjustment *Spend
		if !fullSettle && remaining.Abs().GreaterThan(Epsilon) {
			allSettled := len(accepted) == len(unpaid)

			adjustment = &Spend{
				Description: DescriptionPartialPayment,
				Amount:      remaining.Neg(),
				Date:        now,
				CategoryID:  categoryID,
				IsPaid:      allSettled,
			}
			if allSettled {
				adjustment.Description = DescriptionBillAdjustment
				adjustment.PaidDate = &now
			}
		}

		for i := range accepted {
			accepted[i].IsPaid = true
			accepted[i].PaidDate = &now

			err := tx.Save(&accepted[i]).Error
			if err != nil {
				return err
			}
		}

		for i := range generated {
			err := tx.Create(&generated[i]).Error
			if err != nil {
				return err
			}
			recurrenceCount.Inc()
		}

		if adjustment != nil {
			err := tx.Create(adjustment).Error
			if err != nil {
				return err
			}
			adjustmentCount.Inc()
		}

		category, err := advanceNextBillDate(tx, categoryID, accepted)
		if err != nil {
			return err
		}

		result = SettlementResult{
			Settled:    accepted,
			Generated:  generated,
			Adjustment: adjustment,
			Category:   category,
		}
		return nil
	})
	if err != nil {
		return SettlementResult{}, err
	}

	if len(result.Settled) > 0 {
		settlementCount.Inc()
	}
	return result, nil
}

// ToggleSpendPaid sets the paid state of a single spend.
//
// Transitioning unpaid to paid on a recurring spend generates its next
// occurrence and advances the owning category's next bill date by one
// month. Transitioning back to unpaid never retracts an occurrence that
// was already generated, so toggling a recurring spend back and forth
// creates duplicates. This matches the product behavior of the billing
// flow and must not be changed without a product decision.
//
// A missing spend is a no-op, not an error.
func ToggleSpendPaid(db *gorm.DB, id uuid.UUID, paid bool) (SettlementResult, error) {
	var result SettlementResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var spends []Spend
		err := tx.Limit(1).Find(&spends, id).Error
		if err != nil {
			return err
		}

		if len(spends) == 0 {
			return nil
		}

		spend := spends[0]
		wasPaid := spend.IsPaid
		now := time.Now().In(time.UTC)

		spend.IsPaid = paid
		if paid {
			spend.PaidDate = &now
		} else {
			spend.PaidDate = nil
		}

		err = tx.Save(&spend).Error
		if err != nil {
			return err
		}

		result = SettlementResult{Settled: []Spend{spend}}
		if !paid || wasPaid {
			return nil
		}

		if spend.IsRecurring {
			if next, ok := spend.NextOccurrence(now); ok {
				err = tx.Create(&next).Error
				if err != nil {
					return err
				}
				recurrenceCount.Inc()
				result.Generated = []Spend{next}
			}

			category, err := advanceNextBillDate(tx, spend.CategoryID, []Spend{spend})
			if err != nil {
				return err
			}
			result.Category = category
		}

		return nil
	})
	if err != nil {
		return SettlementResult{}, err
	}

	if paid && len(result.Settled) > 0 {
		settlementCount.Inc()
	}
	return result, nil
}

// advanceNextBillDate moves the category's next bill date one month
// forward when at least one of the settled spends is recurring. A
// category without a next bill date, or one that no longer exists, is
// left untouched.
func advanceNextBillDate(tx *gorm.DB, categoryID uuid.UUID, settled []Spend) (*Category, error) {
	anyRecurring := false
	for _, spend := range settled {
		if spend.IsRecurring {
			anyRecurring = true
			break
		}
	}

	if !anyRecurring {
		return nil, nil
	}

	var categories []Category
	err := tx.Limit(1).Find(&categories, categoryID).Error
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 || categories[0].NextBillDate == nil {
		return nil, nil
	}

	category := categories[0]
	next := addCalendarPeriod(*category.NextBillDate, 0, 1)
	category.NextBillDate = &next

	err = tx.Save(&category).Error
	if err != nil {
		return nil, err
	}

	return &category, nil
}
