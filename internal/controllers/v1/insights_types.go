package v1

import (
	"fmt"
	"time"

	"github.com/credtrack/backend/internal/models"
	"github.com/credtrack/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// displaySymbol is the currency symbol included in computed views. It is
// display metadata only, amounts are never converted.
var displaySymbol string

// RegisterCurrency sets the display currency from a BCP 47 locale,
// e.g. "en-IN". An empty or unparseable locale disables the symbol.
func RegisterCurrency(locale string) {
	displaySymbol = ""

	if locale == "" {
		return
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return
	}

	cur, conf := currency.FromTag(tag)
	if conf == language.No {
		return
	}

	displaySymbol = fmt.Sprintf("%s", currency.Symbol(cur))
}

// Month is the spending summary for a single calendar month.
type Month struct {
	Month    types.Month     `json:"month" example:"2024-03"`   // The month the summary is for
	Spent    decimal.Decimal `json:"spent" example:"1204.31"`   // Sum of all spends in the month
	Pending  decimal.Decimal `json:"pending" example:"150.00"`  // Sum of unpaid spends in the month
	Currency string          `json:"currency" example:"₹"`      // Display currency symbol, if configured
}

type MonthResponse struct {
	Data  *Month  `json:"data"`                                               // Data for the month
	Error *string `json:"error" example:"parsing time \"moo\" as \"2006-01\""` // The error, if any occurred
}

// CategoryBalance is the computed balance pair for a single category.
type CategoryBalance struct {
	Balance  decimal.Decimal `json:"balance" example:"1323.52"` // Net balance over all spends of the category
	Pending  decimal.Decimal `json:"pending" example:"150.00"`  // Sum over the unpaid spends of the category
	Currency string          `json:"currency" example:"₹"`      // Display currency symbol, if configured
}

type CategoryBalanceResponse struct {
	Data  *CategoryBalance `json:"data"`                                                          // The balances
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BreakdownEntry is the spending total of one category.
type BreakdownEntry struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"d4f4f95a-14a7-432e-afbd-b01c1eb942a2"` // ID the spends reference, can belong to a deleted category
	Name       string          `json:"name" example:"Sapphire Card"`                              // Name of the category, "Unknown" if it was deleted
	Color      string          `json:"color" example:"#2196F3"`                                   // Display color of the category, empty if it was deleted
	Total      decimal.Decimal `json:"total" example:"482.23"`                                    // Sum of spend amounts
}

type BreakdownListResponse struct {
	Data     []BreakdownEntry `json:"data"`                                                          // Per category totals, sorted by descending total
	Currency string           `json:"currency" example:"₹"`                                          // Display currency symbol, if configured
	Error    *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// Upcoming is a bill or EMI due within the requested window.
type Upcoming struct {
	Type       models.UpcomingType `json:"type" example:"BILL"`                                       // BILL or EMI
	Date       time.Time           `json:"date" example:"2024-04-01T00:00:00Z"`                       // The date the item is due
	CategoryID uuid.UUID           `json:"categoryId" example:"d4f4f95a-14a7-432e-afbd-b01c1eb942a2"` // ID of the category the item belongs to
	Category   *Category           `json:"category"`                                                  // The category, set for bills
	Spend      *Spend              `json:"spend"`                                                     // The spend, set for EMIs
}

type UpcomingListResponse struct {
	Data  []Upcoming `json:"data"`                                                          // Upcoming items, sorted by date
	Error *string    `json:"error" example:"the days parameter must not be negative"`       // The error, if any occurred
}

type UpcomingQueryFilter struct {
	Days        int    `form:"days"`        // Size of the window in days. Defaults to 7
	Description string `form:"description"` // Glob pattern matched against spend descriptions, e.g. "Netflix*"
}

type BreakdownQueryFilter struct {
	Month time.Time `form:"month" time_format:"2006-01" time_utc:"1" example:"2024-03"` // Limit the breakdown to this month. Defaults to all time
}
