package v1

import (
	"errors"
	"net/http"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettlementEditable is the request body for a settlement. An empty body
// settles the full outstanding balance.
type SettlementEditable struct {
	PaidAmount *decimal.Decimal `json:"paidAmount" example:"150.00" minimum:"0"` // The amount that was paid. Omit to settle everything
}

// Settlement is the representation of a settlement result in API v1.
type Settlement struct {
	Settled    []Spend   `json:"settled"`    // Spends that were marked paid
	Generated  []Spend   `json:"generated"`  // Next occurrences created for recurring spends
	Adjustment *Spend    `json:"adjustment"` // The adjustment/credit record, if one was written
	Category   *Category `json:"category"`   // The category, when its next bill date was advanced
}

// newSettlement returns the API v1 representation of a settlement result
func newSettlement(c *gin.Context, db *gorm.DB, result models.SettlementResult) (Settlement, error) {
	settled := make([]Spend, 0, len(result.Settled))
	for _, spend := range result.Settled {
		settled = append(settled, newSpend(c, spend))
	}

	generated := make([]Spend, 0, len(result.Generated))
	for _, spend := range result.Generated {
		generated = append(generated, newSpend(c, spend))
	}

	settlement := Settlement{
		Settled:   settled,
		Generated: generated,
	}

	if result.Adjustment != nil {
		adjustment := newSpend(c, *result.Adjustment)
		settlement.Adjustment = &adjustment
	}

	if result.Category != nil {
		category, err := newCategory(c, db, *result.Category)
		if err != nil {
			return Settlement{}, err
		}
		settlement.Category = &category
	}

	return settlement, nil
}

type SettlementResponse struct {
	Data  *Settlement `json:"data"`                                                          // The settlement result
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// SpendPaidEditable is the request body for the paid state toggle.
type SpendPaidEditable struct {
	IsPaid bool `json:"isPaid" example:"true"` // The new paid state
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/settlement [options]
func OptionsCategorySettlement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Category{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Settle category
// @Description	Marks unpaid spends of the category as paid, oldest first. With a paidAmount, spends are only settled while they fully fit into the remaining payment and the remainder is written as an adjustment spend. Settled recurring spends generate their next occurrence.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettlementResponse
// @Failure		400			{object}	SettlementResponse
// @Failure		500			{object}	SettlementResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			settlement	body		SettlementEditable	false	"Settlement"
// @Router			/v1/categories/{id}/settlement [post]
func CreateCategorySettlement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	// An empty body is allowed and settles the full balance
	var editable SettlementEditable
	err = httputil.BindData(c, &editable)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	result, err := models.MarkAllPaid(models.DB, uri.ID.UUID, editable.PaidAmount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	data, err := newSettlement(c, models.DB, result)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	pushMirror()
	c.JSON(http.StatusOK, SettlementResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spends
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id}/paid [options]
func OptionsSpendPaid(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&models.Spend{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Set spend paid state
// @Description	Sets the paid state of a single spend. Marking a recurring spend as paid generates its next occurrence. Marking it unpaid again does not remove the generated occurrence.
// @Tags			Spends
// @Accept			json
// @Produce		json
// @Success		200		{object}	SettlementResponse
// @Failure		400		{object}	SettlementResponse
// @Failure		500		{object}	SettlementResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			paid	body		SpendPaidEditable	true	"Paid state"
// @Router			/v1/spends/{id}/paid [patch]
func UpdateSpendPaid(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	var editable SpendPaidEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	result, err := models.ToggleSpendPaid(models.DB, uri.ID.UUID, editable.IsPaid)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	data, err := newSettlement(c, models.DB, result)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SettlementResponse{
			Error: &e,
		})
		return
	}

	pushMirror()
	c.JSON(http.StatusOK, SettlementResponse{Data: &data})
}
