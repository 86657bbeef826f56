package v1

import (
	"fmt"
	"time"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SpendEditable struct {
	Description string `json:"description" example:"Groceries" default:""` // Description of the spend
	Subcategory string `json:"subcategory" example:"Food" default:""`      // Optional subcategory

	// A negative amount records a credit or refund
	Amount decimal.Decimal `json:"amount" example:"271.50" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the spend

	Date       time.Time `json:"date" example:"2024-03-05T00:00:00Z"`                          // Date of the spend. Defaults to the current time
	CategoryID uuid.UUID `json:"categoryId" example:"d4f4f95a-14a7-432e-afbd-b01c1eb942a2"`    // ID of the category the spend belongs to
	IsPaid     bool      `json:"isPaid" example:"false" default:"false"`                       // Has the spend been settled?

	IsRecurring        bool             `json:"isRecurring" example:"true" default:"false"`      // Does the spend repeat?
	RecurringFrequency models.Frequency `json:"recurringFrequency" example:"MONTHLY" default:""` // MONTHLY or YEARLY
	DueDate            *time.Time       `json:"dueDate" example:"2024-03-20T00:00:00Z"`          // Due date for bill type spends
	EMIEndDate         *time.Time       `json:"emiEndDate" example:"2024-12-15T00:00:00Z"`       // Last date an installment may be generated for
}

// model returns the database resource for the API representation of the editable fields
func (editable SpendEditable) model() models.Spend {
	return models.Spend{
		Description:        editable.Description,
		Subcategory:        editable.Subcategory,
		Amount:             editable.Amount,
		Date:               editable.Date,
		CategoryID:         editable.CategoryID,
		IsPaid:             editable.IsPaid,
		IsRecurring:        editable.IsRecurring,
		RecurringFrequency: editable.RecurringFrequency,
		DueDate:            editable.DueDate,
		EMIEndDate:         editable.EMIEndDate,
	}
}

type SpendLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/spends/d430d7c3-d14c-4712-9336-ee56965a6673"`      // The spend itself
	Paid string `json:"paid" example:"https://example.com/api/v1/spends/d430d7c3-d14c-4712-9336-ee56965a6673/paid"` // Toggle the paid state
}

// Spend is the representation of a Spend in API v1.
type Spend struct {
	models.DefaultModel
	SpendEditable
	Links SpendLinks `json:"links"`

	// PaidDate is set by the settlement engine, not by clients
	PaidDate *time.Time `json:"paidDate" example:"2024-03-31T18:14:01Z"` // Time the spend was settled, unset while unpaid
}

// newSpend returns the API v1 representation of the resource
func newSpend(c *gin.Context, model models.Spend) Spend {
	url := c.GetString(string(models.ContextURL))

	return Spend{
		DefaultModel: model.DefaultModel,
		SpendEditable: SpendEditable{
			Description:        model.Description,
			Subcategory:        model.Subcategory,
			Amount:             model.Amount,
			Date:               model.Date,
			CategoryID:         model.CategoryID,
			IsPaid:             model.IsPaid,
			IsRecurring:        model.IsRecurring,
			RecurringFrequency: model.RecurringFrequency,
			DueDate:            model.DueDate,
			EMIEndDate:         model.EMIEndDate,
		},
		Links: SpendLinks{
			Self: fmt.Sprintf("%s/v1/spends/%s", url, model.ID),
			Paid: fmt.Sprintf("%s/v1/spends/%s/paid", url, model.ID),
		},
		PaidDate: model.PaidDate,
	}
}

type SpendListResponse struct {
	Data       []Spend     `json:"data"`                                                          // List of spends
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type SpendCreateResponse struct {
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []SpendResponse `json:"data"`                                                          // List of created Spends
}

func (t *SpendCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, SpendResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SpendResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this spend
	Data  *Spend  `json:"data"`                                                          // The Spend data, if creation was successful
}

type SpendQueryFilter struct {
	Date               time.Time       `form:"date" filterField:"false"`              // Exact date. Time is ignored.
	FromDate           time.Time       `form:"fromDate" filterField:"false"`          // From this date. Time is ignored.
	UntilDate          time.Time       `form:"untilDate" filterField:"false"`         // Until this date. Time is ignored.
	Amount             decimal.Decimal `form:"amount"`                                // Exact amount
	AmountLessOrEqual  decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount less than or equal to this
	AmountMoreOrEqual  decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount more than or equal to this
	Description        string          `form:"description" filterField:"false"`       // Description contains this string
	Subcategory        string          `form:"subcategory"`                           // Exact subcategory
	CategoryID         string          `form:"category"`                              // ID of the category
	IsPaid             bool            `form:"isPaid"`                                // Has the spend been settled?
	IsRecurring        bool            `form:"isRecurring"`                           // Does the spend repeat?
	RecurringFrequency string          `form:"recurringFrequency" filterField:"false"` // MONTHLY or YEARLY
	Offset             uint            `form:"offset" filterField:"false"`            // The offset of the first Spend returned. Defaults to 0.
	Limit              int             `form:"limit" filterField:"false"`             // Maximum number of spends to return. Defaults to 50.
}

func (f SpendQueryFilter) model() (models.Spend, error) {
	categoryID, err := httputil.UUIDFromString(f.CategoryID)
	if err != nil {
		return models.Spend{}, err
	}

	// This does not set the string or date fields since they are
	// handled in the controller function
	return models.Spend{
		Amount:      f.Amount,
		Subcategory: f.Subcategory,
		CategoryID:  categoryID,
		IsPaid:      f.IsPaid,
		IsRecurring: f.IsRecurring,
	}, nil
}
