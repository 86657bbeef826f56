package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

var backendVersion string

func RegisterExportRoutes(r *gin.RouterGroup, version string) {
	backendVersion = version

	{
		r.OPTIONS("", OptionsExport)
		r.GET("", GetExport)
	}
}

// ExportResponse is the full data set of the instance. It is also the
// document pushed to the remote mirror and the format accepted by the
// import endpoint.
type ExportResponse struct {
	Categories json.RawMessage `json:"categories"` // All categories, including soft-deleted ones
	Spends     json.RawMessage `json:"spends"`     // All spends, including soft-deleted ones
	ExportDate time.Time       `json:"exportDate"` // Time the export was created
	Version    string          `json:"version"`    // The version of the backend the export was made with
}

// exportDocument assembles the export document for the instance.
func exportDocument(now time.Time) (ExportResponse, error) {
	categories, err := models.Category{}.Export()
	if err != nil {
		return ExportResponse{}, err
	}

	spends, err := models.Spend{}.Export()
	if err != nil {
		return ExportResponse{}, err
	}

	return ExportResponse{
		Categories: categories,
		Spends:     spends,
		ExportDate: now,
		Version:    backendVersion,
	}, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Export
// @Success		204
// @Router			/v1/export [options]
func OptionsExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Export
// @Description	Exports all resources for the instance
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func GetExport(c *gin.Context) {
	document, err := exportDocument(time.Now())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, document)
}
