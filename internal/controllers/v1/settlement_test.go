package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/credtrack/backend/internal/controllers/v1"
	"github.com/credtrack/backend/internal/models"
	"github.com/credtrack/backend/internal/uuid"
	"github.com/credtrack/backend/test"
)

func (suite *TestSuiteStandard) settle(categoryID string, body any) v1.SettlementResponse {
	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/categories/%s/settlement", categoryID), body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

// An empty body settles the full outstanding balance.
func (suite *TestSuiteStandard) TestSettlementFull() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), Date: testDate(2024, 3, 1)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(50), Date: testDate(2024, 3, 5)})

	response := suite.settle(category.Data.ID.String(), "")

	suite.Require().NotNil(response.Data)
	suite.Assert().Len(response.Data.Settled, 2)
	suite.Assert().Nil(response.Data.Adjustment)

	for _, spend := range response.Data.Settled {
		suite.Assert().True(spend.IsPaid)
		suite.Assert().NotNil(spend.PaidDate)
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/spends?isPaid=false", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.SpendListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Empty(list.Data)
}

func (suite *TestSuiteStandard) TestSettlementPartial() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), Date: testDate(2024, 3, 1)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(50), Date: testDate(2024, 3, 5)})

	response := suite.settle(category.Data.ID.String(), map[string]float64{"paidAmount": 90})

	suite.Require().NotNil(response.Data)
	suite.Assert().Len(response.Data.Settled, 1)

	suite.Require().NotNil(response.Data.Adjustment)
	suite.Assert().Equal(models.DescriptionPartialPayment, response.Data.Adjustment.Description)
	suite.Assert().True(decimalFrom(-40).Equal(response.Data.Adjustment.Amount))
	suite.Assert().False(response.Data.Adjustment.IsPaid)
}

func (suite *TestSuiteStandard) TestSettlementOverpayment() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(120), Date: testDate(2024, 3, 1)})

	response := suite.settle(category.Data.ID.String(), map[string]float64{"paidAmount": 150})

	suite.Require().NotNil(response.Data)
	suite.Require().NotNil(response.Data.Adjustment)
	suite.Assert().Equal(models.DescriptionBillAdjustment, response.Data.Adjustment.Description)
	suite.Assert().True(decimalFrom(-30).Equal(response.Data.Adjustment.Amount))
	suite.Assert().True(response.Data.Adjustment.IsPaid)
}

func (suite *TestSuiteStandard) TestSettlementRecurring() {
	billDate := testDate(2024, 4, 1)
	category := createTestCategory(suite.T(), v1.CategoryEditable{NextBillDate: &billDate})
	_ = createTestSpend(suite.T(), v1.SpendEditable{
		CategoryID:  category.Data.ID,
		Amount:      decimalFrom(15.49),
		Date:        testDate(2024, 3, 15),
		IsRecurring: true,
	})

	response := suite.settle(category.Data.ID.String(), "")

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Generated, 1)
	suite.Assert().True(testDate(2024, 4, 15).Equal(response.Data.Generated[0].Date))

	suite.Require().NotNil(response.Data.Category)
	suite.Require().NotNil(response.Data.Category.NextBillDate)
	suite.Assert().True(testDate(2024, 5, 1).Equal(*response.Data.Category.NextBillDate))
}

// Settling a category without unpaid spends is a no-op, not an error.
func (suite *TestSuiteStandard) TestSettlementNoUnpaid() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	response := suite.settle(category.Data.ID.String(), "")

	suite.Require().NotNil(response.Data)
	suite.Assert().Empty(response.Data.Settled)
	suite.Assert().Empty(response.Data.Generated)
	suite.Assert().Nil(response.Data.Adjustment)
}

func (suite *TestSuiteStandard) TestSettlementErrors() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	tests := []struct {
		name   string
		url    string
		body   any
		status int
	}{
		{"Invalid UUID", "http://example.com/v1/categories/not-a-uuid/settlement", "", http.StatusBadRequest},
		{"Negative amount", fmt.Sprintf("http://example.com/v1/categories/%s/settlement", category.Data.ID), map[string]float64{"paidAmount": -10}, http.StatusBadRequest},
		{"Invalid body", fmt.Sprintf("http://example.com/v1/categories/%s/settlement", category.Data.ID), `{ "paidAmount": }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsSettlement() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})

	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/categories/%s/settlement", category.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/categories/%s/settlement", uuid.NewString()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUpdateSpendPaid() {
	spend := createTestSpend(suite.T(), v1.SpendEditable{Amount: decimalFrom(100)})

	r := test.Request(suite.T(), http.MethodPatch, spend.Data.Links.Paid, map[string]bool{"isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Settled, 1)
	suite.Assert().True(response.Data.Settled[0].IsPaid)
	suite.Assert().NotNil(response.Data.Settled[0].PaidDate)

	// Toggle back
	r = test.Request(suite.T(), http.MethodPatch, spend.Data.Links.Paid, map[string]bool{"isPaid": false})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data.Settled, 1)
	suite.Assert().False(response.Data.Settled[0].IsPaid)
	suite.Assert().Nil(response.Data.Settled[0].PaidDate)
}

func (suite *TestSuiteStandard) TestUpdateSpendPaidRecurring() {
	spend := createTestSpend(suite.T(), v1.SpendEditable{
		Amount:      decimalFrom(15.49),
		Date:        testDate(2024, 3, 15),
		IsRecurring: true,
	})

	r := test.Request(suite.T(), http.MethodPatch, spend.Data.Links.Paid, map[string]bool{"isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Require().Len(response.Data.Generated, 1)
	suite.Assert().True(testDate(2024, 4, 15).Equal(response.Data.Generated[0].Date))
	suite.Assert().False(response.Data.Generated[0].IsPaid)
}

// Toggling the paid state of an unknown spend settles nothing.
func (suite *TestSuiteStandard) TestUpdateSpendPaidUnknown() {
	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/spends/%s/paid", uuid.NewString()), map[string]bool{"isPaid": true})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SettlementResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Empty(response.Data.Settled)
}

func (suite *TestSuiteStandard) TestUpdateSpendPaidEmptyBody() {
	spend := createTestSpend(suite.T(), v1.SpendEditable{Amount: decimalFrom(10)})

	r := test.Request(suite.T(), http.MethodPatch, spend.Data.Links.Paid, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
