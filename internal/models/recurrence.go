package models

import (
	"time"

	"github.com/google/uuid"
)

// NextOccurrence computes the spend for the next billing cycle of a
// recurring spend.
//
// The next date is one period after the current date, where the period is
// one year for YEARLY spends and one month otherwise. The due date, if
// set, is shifted by the same offset independently of the date.
//
// The second return value is false when the spend is terminal: the next
// date would exceed the EMI end date and no further occurrence exists.
// Callers must treat this as absence, the zero Spend is not usable.
//
// The function is free of side effects. The returned record copies all
// recurrence fields from the current spend, is unpaid and carries a fresh
// ID and creation time.
func (s Spend) NextOccurrence(now time.Time) (Spend, bool) {
	years, months := 0, 1
	if s.RecurringFrequency == FrequencyYearly {
		years, months = 1, 0
	}

	nextDate := addCalendarPeriod(s.Date, years, months)

	if s.EMIEndDate != nil && nextDate.After(*s.EMIEndDate) {
		return Spend{}, false
	}

	var nextDue *time.Time
	if s.DueDate != nil {
		due := addCalendarPeriod(*s.DueDate, years, months)
		nextDue = &due
	}

	next := Spend{
		DefaultModel: DefaultModel{
			ID: uuid.New(),
			Timestamps: Timestamps{
				CreatedAt: now.In(time.UTC),
			},
		},
		Description:        s.Description,
		Subcategory:        s.Subcategory,
		Amount:             s.Amount,
		Date:               nextDate,
		CategoryID:         s.CategoryID,
		IsPaid:             false,
		IsRecurring:        true,
		RecurringFrequency: s.RecurringFrequency,
		DueDate:            nextDue,
		EMIEndDate:         s.EMIEndDate,
	}

	return next, true
}

// addCalendarPeriod adds years and months to a time, preserving the day
// of month where possible and clamping to the length of the target month.
// Plain time.AddDate would normalize Jan 31 + 1 month to Mar 3.
func addCalendarPeriod(t time.Time, years, months int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	firstOfTarget := time.Date(year+years, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, second, t.Nanosecond(), t.Location())
}
