package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterSpendRoutes registers the routes for spends with
// the RouterGroup that is passed.
func RegisterSpendRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSpendList)
		r.GET("", GetSpends)
		r.POST("", CreateSpends)
	}

	// Spend with ID
	{
		r.OPTIONS("/:id", OptionsSpendDetail)
		r.GET("/:id", GetSpend)
		r.PATCH("/:id", UpdateSpend)
		r.DELETE("/:id", DeleteSpend)
	}

	// Paid state toggle
	{
		r.OPTIONS("/:id/paid", OptionsSpendPaid)
		r.PATCH("/:id/paid", UpdateSpendPaid)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spends
// @Success		204
// @Router			/v1/spends [options]
func OptionsSpendList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spends
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [options]
func OptionsSpendDetail(c *gin.Context) {
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

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Get spend
// @Description	Returns a specific spend
// @Tags			Spends
// @Produce		json
// @Success		200	{object}	SpendResponse
// @Failure		400	{object}	SpendResponse
// @Failure		404	{object}	SpendResponse
// @Failure		500	{object}	SpendResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [get]
func GetSpend(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	var spend models.Spend
	err = models.DB.First(&spend, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	data := newSpend(c, spend)
	c.JSON(http.StatusOK, SpendResponse{Data: &data})
}

// @Summary		Get spends
// @Description	Returns a list of spends
// @Tags			Spends
// @Produce		json
// @Success		200	{object}	SpendListResponse
// @Failure		400	{object}	SpendListResponse
// @Failure		500	{object}	SpendListResponse
// @Router			/v1/spends [get]
// @Param			date				query	string	false	"Date of the spend. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			fromDate			query	string	false	"Spends at and after this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			untilDate			query	string	false	"Spends before and at this date. Ignores exact time, matches on the day of the RFC3339 timestamp provided."
// @Param			amount				query	string	false	"Filter by amount"
// @Param			amountLessOrEqual	query	string	false	"Amount less than or equal to this"
// @Param			amountMoreOrEqual	query	string	false	"Amount more than or equal to this"
// @Param			description			query	string	false	"Description contains this string"
// @Param			subcategory			query	string	false	"Filter by subcategory"
// @Param			category			query	string	false	"Filter by category ID"
// @Param			isPaid				query	bool	false	"Filter by paid state"
// @Param			isRecurring			query	bool	false	"Filter by recurrence"
// @Param			recurringFrequency	query	string	false	"Filter by recurrence frequency, MONTHLY or YEARLY"
// @Param			offset				query	uint	false	"The offset of the first Spend returned. Defaults to 0."
// @Param			limit				query	int		false	"Maximum number of Spends to return. Defaults to 50."
func GetSpends(c *gin.Context) {
	var filter SpendQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SpendListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a model struct
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	var q *gorm.DB
	q = models.DB.Order("datetime(spends.date) DESC, datetime(spends.created_at) DESC").Where(&model, queryFields...)

	// Filter for the spend being at the same date
	if !filter.Date.IsZero() {
		date := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		q = q.Where("spends.date >= date(?)", date).Where("spends.date < date(?)", date.AddDate(0, 0, 1))
	}

	if !filter.FromDate.IsZero() {
		q = q.Where("spends.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("spends.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if !filter.AmountLessOrEqual.IsZero() {
		q = q.Where("spends.amount <= ?", filter.AmountLessOrEqual)
	}

	if !filter.AmountMoreOrEqual.IsZero() {
		q = q.Where("spends.amount >= ?", filter.AmountMoreOrEqual)
	}

	if filter.Description != "" {
		q = q.Where("spends.description LIKE ?", fmt.Sprintf("%%%s%%", filter.Description))
	} else if slices.Contains(setFields, "Description") {
		q = q.Where("spends.description = ''")
	}

	if filter.RecurringFrequency != "" {
		frequency := models.Frequency(filter.RecurringFrequency)
		if frequency != models.FrequencyMonthly && frequency != models.FrequencyYearly {
			s := errFrequencyUnsupported.Error()
			c.JSON(http.StatusBadRequest, SpendListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("spends.recurring_frequency = ?", frequency)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 spends and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var spends []models.Spend
	err = q.Find(&spends).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Spend, 0)
	for _, spend := range spends {
		data = append(data, newSpend(c, spend))
	}

	c.JSON(http.StatusOK, SpendListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Create spends
// @Description	Creates spends from the list of submitted spend data. The response code is the highest response code number that a single spend creation would have caused. If it is not equal to 201, at least one spend has an error.
// @Tags			Spends
// @Produce		json
// @Success		201		{object}	SpendCreateResponse
// @Failure		400		{object}	SpendCreateResponse
// @Failure		404		{object}	SpendCreateResponse
// @Failure		500		{object}	SpendCreateResponse
// @Param			spends	body		[]SpendEditable	true	"Spends"
// @Router			/v1/spends [post]
func CreateSpends(c *gin.Context) {
	var editables []SpendEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SpendCreateResponse{}

	for _, editable := range editables {
		spend := editable.model()
		err := models.DB.Create(&spend).Error
		// Append the error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSpend(c, spend)
		r.Data = append(r.Data, SpendResponse{Data: &data})
	}

	if status == http.StatusCreated {
		pushMirror()
	}

	c.JSON(status, r)
}

// @Summary		Update spend
// @Description	Updates an existing spend. Only values to be updated need to be specified.
// @Tags			Spends
// @Accept			json
// @Produce		json
// @Success		200		{object}	SpendResponse
// @Failure		400		{object}	SpendResponse
// @Failure		404		{object}	SpendResponse
// @Failure		500		{object}	SpendResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spend	body		SpendEditable	true	"Spend"
// @Router			/v1/spends/{id} [patch]
func UpdateSpend(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	// Get the spend resource
	var spend models.Spend
	err = models.DB.First(&spend, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	// Get the fields that are set to be updated
	updateFields, err := httputil.GetBodyFields(c, SpendEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	// Bind the update for the patch
	var update SpendEditable
	err = httputil.BindData(c, &update)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	// If the amount set via the API request is not existent or
	// is 0, we use the old amount
	if update.Amount.IsZero() {
		update.Amount = spend.Amount
	}

	err = models.DB.Model(&spend).Select("", updateFields...).Updates(update.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendResponse{
			Error: &e,
		})
		return
	}

	pushMirror()
	data := newSpend(c, spend)
	c.JSON(http.StatusOK, SpendResponse{Data: &data})
}

// @Summary		Delete spend
// @Description	Deletes a spend
// @Tags			Spends
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spends/{id} [delete]
func DeleteSpend(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var spend models.Spend
	err = models.DB.First(&spend, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&spend).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	pushMirror()
	c.JSON(http.StatusNoContent, nil)
}
