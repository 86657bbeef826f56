package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/credtrack/backend/internal/controllers/v1"
	"github.com/credtrack/backend/internal/models"
	"github.com/credtrack/backend/internal/types"
	"github.com/credtrack/backend/internal/uuid"
	"github.com/credtrack/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetMonth() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), Date: testDate(2024, 3, 5), IsPaid: true})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(50), Date: testDate(2024, 3, 20)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(999), Date: testDate(2024, 4, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(types.NewMonth(2024, time.March), response.Data.Month)
	suite.Assert().True(decimalFrom(150).Equal(response.Data.Spent), "Spent is %s", response.Data.Spent)
	suite.Assert().True(decimalFrom(50).Equal(response.Data.Pending), "Pending is %s", response.Data.Pending)
}

func (suite *TestSuiteStandard) TestGetMonthInvalid() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/moo", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetCategoryBalance() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), IsPaid: true})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(50)})

	r := test.Request(suite.T(), http.MethodGet, category.Data.Links.Balance, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryBalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().True(decimalFrom(150).Equal(response.Data.Balance))
	suite.Assert().True(decimalFrom(50).Equal(response.Data.Pending))
}

func (suite *TestSuiteStandard) TestGetCategoryBalanceErrors() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"Unknown", uuid.NewString(), http.StatusNotFound},
		{"Invalid", "not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s/balance", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBreakdown() {
	food := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Color: "#ff0000"})
	travel := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Travel"})

	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: food.Data.ID, Amount: decimalFrom(125), Date: testDate(2024, 3, 5)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: travel.Data.ID, Amount: decimalFrom(300), Date: testDate(2024, 3, 10)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: food.Data.ID, Amount: decimalFrom(999), Date: testDate(2024, 4, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/breakdown?month=2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BreakdownListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal("Travel", response.Data[0].Name)
	suite.Assert().True(decimalFrom(300).Equal(response.Data[0].Total))
	suite.Assert().Equal("Food", response.Data[1].Name)
	suite.Assert().Equal("#ff0000", response.Data[1].Color)
	suite.Assert().True(decimalFrom(125).Equal(response.Data[1].Total))
}

// Without a month parameter, the breakdown aggregates over all spends.
func (suite *TestSuiteStandard) TestGetBreakdownAllTime() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), Date: testDate(2023, 1, 5)})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(50), Date: testDate(2024, 6, 5)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/breakdown", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BreakdownListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().True(decimalFrom(150).Equal(response.Data[0].Total))
}

// Spends of a deleted category show up with the fallback name.
func (suite *TestSuiteStandard) TestGetBreakdownDangling() {
	category := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSpend(suite.T(), v1.SpendEditable{CategoryID: category.Data.ID, Amount: decimalFrom(100), Date: testDate(2024, 3, 5)})

	r := test.Request(suite.T(), http.MethodDelete, category.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/breakdown", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BreakdownListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Unknown", response.Data[0].Name)
	suite.Assert().Equal(category.Data.ID, response.Data[0].CategoryID)
}

func (suite *TestSuiteStandard) TestGetUpcoming() {
	today := time.Now().In(time.UTC)
	billDate := today.AddDate(0, 0, 3)
	farBillDate := today.AddDate(0, 0, 30)

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Due soon", NextBillDate: &billDate})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Due later", NextBillDate: &farBillDate})

	dueDate := today.AddDate(0, 0, 5)
	_ = createTestSpend(suite.T(), v1.SpendEditable{
		Description: "Netflix Premium",
		Amount:      decimalFrom(15.49),
		Date:        today.AddDate(0, -1, 0),
		IsRecurring: true,
		DueDate:     &dueDate,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/upcoming", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UpcomingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 2)
	suite.Assert().Equal(models.UpcomingBill, response.Data[0].Type)
	suite.Require().NotNil(response.Data[0].Category)
	suite.Assert().Equal("Due soon", response.Data[0].Category.Name)
	suite.Assert().Equal(models.UpcomingEMI, response.Data[1].Type)
	suite.Require().NotNil(response.Data[1].Spend)
	suite.Assert().Equal("Netflix Premium", response.Data[1].Spend.Description)
}

func (suite *TestSuiteStandard) TestGetUpcomingWindow() {
	today := time.Now().In(time.UTC)
	billDate := today.AddDate(0, 0, 20)
	_ = createTestCategory(suite.T(), v1.CategoryEditable{NextBillDate: &billDate})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"Default window", "", 0},
		{"Extended window", "days=30", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/upcoming?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.UpcomingListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

// The description filter matches glob patterns against EMI descriptions.
// Bills have no description and never match a pattern.
func (suite *TestSuiteStandard) TestGetUpcomingDescriptionFilter() {
	today := time.Now().In(time.UTC)
	billDate := today.AddDate(0, 0, 2)
	_ = createTestCategory(suite.T(), v1.CategoryEditable{NextBillDate: &billDate})

	dueDate := today.AddDate(0, 0, 3)
	_ = createTestSpend(suite.T(), v1.SpendEditable{
		Description: "Netflix Premium",
		Amount:      decimalFrom(15.49),
		IsRecurring: true,
		DueDate:     &dueDate,
	})
	_ = createTestSpend(suite.T(), v1.SpendEditable{
		Description: "Gym membership",
		Amount:      decimalFrom(40),
		IsRecurring: true,
		DueDate:     &dueDate,
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/upcoming?description=Netflix*", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.UpcomingListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Spend)
	suite.Assert().Equal("Netflix Premium", response.Data[0].Spend.Description)
}

func (suite *TestSuiteStandard) TestGetUpcomingNegativeDays() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/upcoming?days=-1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestRegisterCurrency() {
	v1.RegisterCurrency("en-IN")
	defer v1.RegisterCurrency("")

	_ = createTestSpend(suite.T(), v1.SpendEditable{Amount: decimalFrom(100), Date: testDate(2024, 3, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("₹", response.Data.Currency)
}

// A locale that cannot be resolved to a currency disables the symbol
// instead of keeping a stale one.
func (suite *TestSuiteStandard) TestRegisterCurrencyInvalid() {
	v1.RegisterCurrency("en-IN")
	v1.RegisterCurrency("not a locale")
	defer v1.RegisterCurrency("")

	_ = createTestSpend(suite.T(), v1.SpendEditable{Amount: decimalFrom(100), Date: testDate(2024, 3, 1)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/months/2024-03", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().NotNil(response.Data)
	suite.Assert().Empty(response.Data.Currency)
}
