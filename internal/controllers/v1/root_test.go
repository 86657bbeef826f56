package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/credtrack/backend/internal/controllers/v1"
	"github.com/credtrack/backend/test"
)

func (suite *TestSuiteStandard) TestGetV1() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("http://example.com/v1/categories", response.Links.Categories)
	suite.Assert().Equal("http://example.com/v1/spends", response.Links.Spends)
	suite.Assert().Equal("http://example.com/v1/months", response.Links.Months)
	suite.Assert().Equal("http://example.com/v1/breakdown", response.Links.Breakdown)
	suite.Assert().Equal("http://example.com/v1/upcoming", response.Links.Upcoming)
	suite.Assert().Equal("http://example.com/v1/export", response.Links.Export)
	suite.Assert().Equal("http://example.com/v1/import", response.Links.Import)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("GET, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCleanup() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(17.32)})

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	tests := []string{
		"http://example.com/v1/categories",
		"http://example.com/v1/spends",
	}

	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &r, &response)
			if len(response.Data) != 0 {
				t.Errorf("There are resources left for %s", tt)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"No confirmation", ""},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodDelete, "http://example.com/v1?"+tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
