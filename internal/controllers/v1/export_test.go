package v1_test

import (
	"encoding/json"
	"net/http"
	"time"

	v1 "github.com/credtrack/backend/internal/controllers/v1"
	"github.com/credtrack/backend/test"
)

func (suite *TestSuiteStandard) TestOptionsExport() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetExport() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Exported"})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	var categories []map[string]any
	suite.Require().Nil(json.Unmarshal(response.Categories, &categories))
	suite.Require().Len(categories, 1)
	suite.Assert().Equal("Exported", categories[0]["name"])

	var spends []map[string]any
	suite.Require().Nil(json.Unmarshal(response.Spends, &spends))
	suite.Assert().Len(spends, 1)

	suite.Assert().WithinDuration(time.Now(), response.ExportDate, time.Minute)
	suite.Assert().NotEmpty(response.Version)
}

// Soft-deleted resources are part of the export.
func (suite *TestSuiteStandard) TestGetExportIncludesDeleted() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	var categories []map[string]any
	suite.Require().Nil(json.Unmarshal(response.Categories, &categories))
	suite.Assert().Len(categories, 1)
}
