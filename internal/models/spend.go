package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the interval in which a recurring spend repeats.
type Frequency string

const (
	FrequencyMonthly Frequency = "MONTHLY"
	FrequencyYearly  Frequency = "YEARLY"
)

// Spend represents a single transaction record on a category.
//
// A negative amount is an adjustment or credit written by the settlement
// engine, not a physical expense.
type Spend struct {
	DefaultModel
	Description string          `json:"description" example:"Groceries" default:""`                  // Description of the spend
	Subcategory string          `json:"subcategory" example:"Food" default:""`                       // Optional subcategory
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"271.50"`           // Amount of the spend, negative for credits
	Date        time.Time       `json:"date" example:"2024-03-05T00:00:00Z"`                         // Date of the spend

	// CategoryID references the owning category. There is no foreign key
	// constraint: deleting a category leaves its spends in place with a
	// dangling reference, which views render as "Unknown".
	CategoryID uuid.UUID `json:"categoryId" gorm:"index" example:"d4f4f95a-14a7-432e-afbd-b01c1eb942a2"`

	IsPaid   bool       `json:"isPaid" example:"true" default:"false"`    // Has the spend been settled?
	PaidDate *time.Time `json:"paidDate" example:"2024-03-31T18:14:01Z"`  // Time the spend was settled, unset while unpaid

	IsRecurring        bool       `json:"isRecurring" example:"true" default:"false"`       // Does the spend repeat?
	RecurringFrequency Frequency  `json:"recurringFrequency" example:"MONTHLY" default:""`  // MONTHLY or YEARLY
	DueDate            *time.Time `json:"dueDate" example:"2024-03-20T00:00:00Z"`           // Due date for bills
	EMIEndDate         *time.Time `json:"emiEndDate" example:"2024-12-15T00:00:00Z"`        // Last date an installment may be generated for
}

// AfterFind updates the date fields to use UTC as timezone.
func (s *Spend) AfterFind(_ *gorm.DB) (err error) {
	s.Date = s.Date.In(time.UTC)
	s.PaidDate = utcTime(s.PaidDate)
	s.DueDate = utcTime(s.DueDate)
	s.EMIEndDate = utcTime(s.EMIEndDate)
	return nil
}

// BeforeSave enforces the store boundary invariants for a spend:
// timestamps in UTC, IsPaid and PaidDate always consistent, a valid
// frequency on recurring spends and trimmed strings.
func (s *Spend) BeforeSave(_ *gorm.DB) error {
	s.Description = strings.TrimSpace(s.Description)
	s.Subcategory = strings.TrimSpace(s.Subcategory)

	if s.Date.IsZero() {
		s.Date = time.Now().In(time.UTC)
	} else {
		s.Date = s.Date.In(time.UTC)
	}
	s.DueDate = utcTime(s.DueDate)
	s.EMIEndDate = utcTime(s.EMIEndDate)

	// isPaid == true <=> paidDate is set
	if s.IsPaid {
		if s.PaidDate == nil {
			now := time.Now().In(time.UTC)
			s.PaidDate = &now
		} else {
			s.PaidDate = utcTime(s.PaidDate)
		}
	} else {
		s.PaidDate = nil
	}

	if s.IsRecurring && s.RecurringFrequency == "" {
		s.RecurringFrequency = FrequencyMonthly
	}

	if s.RecurringFrequency != "" && s.RecurringFrequency != FrequencyMonthly && s.RecurringFrequency != FrequencyYearly {
		return ErrFrequencyInvalid
	}

	return nil
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	utc := t.In(time.UTC)
	return &utc
}

// Returns all spends on this instance for export
func (Spend) Export() (json.RawMessage, error) {
	var spends []Spend
	err := DB.Unscoped().Where(&Spend{}).Find(&spends).Error
	if err != nil {
		return nil, err
	}

	j, err := json.Marshal(&spends)
	if err != nil {
		return json.RawMessage{}, err
	}
	return json.RawMessage(j), nil
}
