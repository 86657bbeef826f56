package v1

import (
	"net/http"
	"time"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/credtrack/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterMonthRoutes registers the routes for monthly summaries with
// the RouterGroup that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsMonth)
	r.GET("/:month", GetMonth)
}

// RegisterBreakdownRoutes registers the routes for the category
// breakdown with the RouterGroup that is passed.
func RegisterBreakdownRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBreakdown)
	r.GET("", GetBreakdown)
}

// RegisterUpcomingRoutes registers the routes for upcoming bills and
// EMIs with the RouterGroup that is passed.
func RegisterUpcomingRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsUpcoming)
	r.GET("", GetUpcoming)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Months
// @Success		204
// @Failure		400	{object}	httpError
// @Param			month	path	URIMonth	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/months/{month} [options]
func OptionsMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get month summary
// @Description	Returns the paid and pending totals for a calendar month
// @Tags			Months
// @Produce		json
// @Success		200	{object}	MonthResponse
// @Failure		400	{object}	MonthResponse
// @Failure		500	{object}	MonthResponse
// @Param			month	path	URIMonth	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/months/{month} [get]
func GetMonth(c *gin.Context) {
	var uri URIMonth
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}

	month := types.MonthOf(uri.Month)

	spent, pending, err := models.MonthlyTotal(models.DB, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MonthResponse{Data: &Month{
		Month:    month,
		Spent:    spent,
		Pending:  pending,
		Currency: displaySymbol,
	}})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Categories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/balance [options]
func OptionsCategoryBalance(c *gin.Context) {
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

	httputil.OptionsGet(c)
}

// @Summary		Get category balance
// @Description	Returns the net and pending balance of a category
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	CategoryBalanceResponse
// @Failure		400	{object}	CategoryBalanceResponse
// @Failure		404	{object}	CategoryBalanceResponse
// @Failure		500	{object}	CategoryBalanceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/categories/{id}/balance [get]
func GetCategoryBalance(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryBalanceResponse{
			Error: &e,
		})
		return
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryBalanceResponse{
			Error: &e,
		})
		return
	}

	balance, err := category.Balance(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryBalanceResponse{
			Error: &e,
		})
		return
	}

	pending, err := category.PendingBalance(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryBalanceResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryBalanceResponse{Data: &CategoryBalance{
		Balance:  balance,
		Pending:  pending,
		Currency: displaySymbol,
	}})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Breakdown
// @Success		204
// @Router			/v1/breakdown [options]
func OptionsBreakdown(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get category breakdown
// @Description	Returns the spending total per category, sorted by descending total. Categories with a zero or negative total are dropped.
// @Tags			Breakdown
// @Produce		json
// @Success		200	{object}	BreakdownListResponse
// @Failure		400	{object}	BreakdownListResponse
// @Failure		500	{object}	BreakdownListResponse
// @Param			month	query	string	false	"Limit the breakdown to this month in YYYY-MM format. Defaults to all time."
// @Router			/v1/breakdown [get]
func GetBreakdown(c *gin.Context) {
	var filter BreakdownQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, BreakdownListResponse{
			Error: &s,
		})
		return
	}

	var month types.Month
	if !filter.Month.IsZero() {
		month = types.MonthOf(filter.Month)
	}

	totals, err := models.CategoryBreakdown(models.DB, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BreakdownListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BreakdownEntry, 0, len(totals))
	for _, total := range totals {
		entry := BreakdownEntry{
			CategoryID: total.CategoryID,
			Name:       "Unknown",
			Total:      total.Total,
		}

		// A dangling category reference keeps the fallback name
		var category models.Category
		err = models.DB.Limit(1).Find(&category, total.CategoryID).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), BreakdownListResponse{
				Error: &e,
			})
			return
		}
		if category.ID == total.CategoryID {
			entry.Name = category.Name
			entry.Color = category.Color
		}

		data = append(data, entry)
	}

	c.JSON(http.StatusOK, BreakdownListResponse{
		Data:     data,
		Currency: displaySymbol,
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Upcoming
// @Success		204
// @Router			/v1/upcoming [options]
func OptionsUpcoming(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get upcoming bills and EMIs
// @Description	Returns categories whose next bill date and unpaid recurring spends whose due date fall within the window, sorted by date. The window is day granular and includes today.
// @Tags			Upcoming
// @Produce		json
// @Success		200	{object}	UpcomingListResponse
// @Failure		400	{object}	UpcomingListResponse
// @Failure		500	{object}	UpcomingListResponse
// @Param			days		query	int		false	"Size of the window in days. Defaults to 7."
// @Param			description	query	string	false	"Glob pattern matched against spend descriptions, e.g. Netflix*"
// @Router			/v1/upcoming [get]
func GetUpcoming(c *gin.Context) {
	filter := UpcomingQueryFilter{
		Days: 7,
	}
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UpcomingListResponse{
			Error: &s,
		})
		return
	}

	if filter.Days < 0 {
		s := errDaysNegative.Error()
		c.JSON(http.StatusBadRequest, UpcomingListResponse{
			Error: &s,
		})
		return
	}

	items, err := models.UpcomingWithin(models.DB, time.Now(), filter.Days)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UpcomingListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Upcoming, 0, len(items))
	for _, item := range items {
		// Bills have no description to match against
		if filter.Description != "" && (item.Spend == nil || !glob.Glob(filter.Description, item.Spend.Description)) {
			continue
		}

		upcoming := Upcoming{
			Type:       item.Type,
			Date:       item.Date,
			CategoryID: item.CategoryID,
		}

		if item.Category != nil {
			category, err := newCategory(c, models.DB, *item.Category)
			if err != nil {
				e := err.Error()
				c.JSON(status(err), UpcomingListResponse{
					Error: &e,
				})
				return
			}
			upcoming.Category = &category
		}

		if item.Spend != nil {
			spend := newSpend(c, *item.Spend)
			upcoming.Spend = &spend
		}

		data = append(data, upcoming)
	}

	c.JSON(http.StatusOK, UpcomingListResponse{Data: data})
}
