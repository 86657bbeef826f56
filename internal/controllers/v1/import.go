package v1

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/credtrack/backend/internal/httputil"
	"github.com/credtrack/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterImportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsImport)
		r.POST("", CreateImport)
	}
}

// ImportEditable is the request body for an import. It is the same
// document the export endpoint produces; exportDate and version are
// accepted but ignored.
type ImportEditable struct {
	Categories json.RawMessage `json:"categories"` // The categories to import
	Spends     json.RawMessage `json:"spends"`     // The spends to import
}

// isJSONArray reports whether the raw message is a JSON array. Anything
// else, including null and a missing field, is not.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import
// @Description	Replaces all resources on the instance with the submitted document. The document is only validated for both fields being arrays, the contents are taken as is. When the import fails, the previous data is kept.
// @Tags			Import
// @Accept			json
// @Produce		json
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			document	body	ImportEditable	true	"Import document"
// @Router			/v1/import [post]
func CreateImport(c *gin.Context) {
	var editable ImportEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !isJSONArray(editable.Categories) || !isJSONArray(editable.Spends) {
		c.JSON(http.StatusBadRequest, httpError{
			Error: models.ErrImportInvalid.Error(),
		})
		return
	}

	var categories []models.Category
	if err := json.Unmarshal(editable.Categories, &categories); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var spends []models.Spend
	if err := json.Unmarshal(editable.Spends, &spends); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.ReplaceAll(models.DB, categories, spends)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	pushMirror()
	c.JSON(http.StatusNoContent, nil)
}
