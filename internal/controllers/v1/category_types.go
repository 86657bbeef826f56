package v1

import (
	"fmt"
	"time"

	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name         string     `json:"name" example:"HDFC Credit Card" default:""`  // Name of the category
	Color        string     `json:"color" example:"#6366f1" default:""`          // Display color
	Group        string     `json:"group" example:"Cards" default:""`            // Optional group for the category
	CardNumber   string     `json:"cardNumber" example:"4321" default:""`        // Last digits of the card, for display only
	Icon         string     `json:"icon" example:"credit-card" default:""`       // Icon name
	NextBillDate *time.Time `json:"nextBillDate" example:"2024-04-05T00:00:00Z"` // The next expected statement date
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:         editable.Name,
		Color:        editable.Color,
		Group:        editable.Group,
		CardNumber:   editable.CardNumber,
		Icon:         editable.Icon,
		NextBillDate: editable.NextBillDate,
	}
}

type CategoryLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The category itself
	Spends     string `json:"spends" example:"https://example.com/api/v1/spends?category=3b1ea324-d438-4419-882a-2fc91d71772f"`     // Spends for this category
	Balance    string `json:"balance" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f/balance"` // Balances for this category
	Settlement string `json:"settlement" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f/settlement"` // Settle outstanding spends
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`

	// These fields are computed
	Balance decimal.Decimal `json:"balance" example:"1323.52"` // Net balance over all spends of the category
	Pending decimal.Decimal `json:"pending" example:"150.00"`  // Sum over the unpaid spends of the category
}

func newCategory(c *gin.Context, db *gorm.DB, model models.Category) (Category, error) {
	url := c.GetString(string(models.ContextURL))

	balance, err := model.Balance(db)
	if err != nil {
		return Category{}, err
	}

	pending, err := model.PendingBalance(db)
	if err != nil {
		return Category{}, err
	}

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:         model.Name,
			Color:        model.Color,
			Group:        model.Group,
			CardNumber:   model.CardNumber,
			Icon:         model.Icon,
			NextBillDate: model.NextBillDate,
		},
		Links: CategoryLinks{
			Self:       fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Spends:     fmt.Sprintf("%s/v1/spends?category=%s", url, model.ID),
			Balance:    fmt.Sprintf("%s/v1/categories/%s/balance", url, model.ID),
			Settlement: fmt.Sprintf("%s/v1/categories/%s/settlement", url, model.ID),
		},
		Balance: balance,
		Pending: pending,
	}, nil
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Group  string `form:"group"`                      // By group
	Search string `form:"search" filterField:"false"` // By string in name or group
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Group: f.Group,
	}
}
