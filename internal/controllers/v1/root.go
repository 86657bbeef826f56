package v1

import (
	"net/http"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Categories string `json:"categories" example:"https://example.com/api/v1/categories"` // URL of Category collection endpoint
	Spends     string `json:"spends" example:"https://example.com/api/v1/spends"`         // URL of Spend collection endpoint
	Months     string `json:"months" example:"https://example.com/api/v1/months"`         // URL of Month endpoint
	Breakdown  string `json:"breakdown" example:"https://example.com/api/v1/breakdown"`   // URL of the category breakdown endpoint
	Upcoming   string `json:"upcoming" example:"https://example.com/api/v1/upcoming"`     // URL of the upcoming bills endpoint
	Export     string `json:"export" example:"https://example.com/api/v1/export"`         // URL of the export endpoint
	Import     string `json:"import" example:"https://example.com/api/v1/import"`         // URL of the import endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.ContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Categories: url + "/v1/categories",
			Spends:     url + "/v1/spends",
			Months:     url + "/v1/months",
			Breakdown:  url + "/v1/breakdown",
			Upcoming:   url + "/v1/upcoming",
			Export:     url + "/v1/export",
			Import:     url + "/v1/import",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// @Summary		Delete everything
// @Description	Permanently deletes all resources
// @Tags			v1
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			confirm	query		string	false	"Confirmation to delete all resources. Must have the value 'yes-please-delete-everything'"
// @Router			/v1 [delete]
func Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errCleanupConfirmation.Error(),
		})
		return
	}

	err = models.DeleteAll(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	pushMirror()
	c.JSON(http.StatusNoContent, nil)
}
