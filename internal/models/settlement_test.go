package models_test

import (
	"github.com/credtrack/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func (suite *TestSuiteStandard) unpaidSpends(categoryID uuid.UUID) []models.Spend {
	var spends []models.Spend
	err := models.DB.
		Where(&models.Spend{CategoryID: categoryID}).
		Where("is_paid = ?", false).
		Find(&spends).Error
	suite.Require().Nil(err)

	return spends
}

func (suite *TestSuiteStandard) TestMarkAllPaidNoUnpaid() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{
		CategoryID: category.ID,
		Amount:     decimal.NewFromFloat(100),
		IsPaid:     true,
	})

	result, err := models.MarkAllPaid(models.DB, category.ID, nil)
	suite.Require().Nil(err)

	suite.Assert().Empty(result.Settled)
	suite.Assert().Empty(result.Generated)
	suite.Assert().Nil(result.Adjustment)
	suite.Assert().Nil(result.Category)
}

// A stale or unknown category ID settles nothing and does not error.
func (suite *TestSuiteStandard) TestMarkAllPaidUnknownCategory() {
	result, err := models.MarkAllPaid(models.DB, uuid.New(), nil)

	suite.Require().Nil(err)
	suite.Assert().Empty(result.Settled)
}

// The nil UUID must behave like any other unknown category. A struct
// condition would drop the zero-valued ID from the query and settle the
// unpaid spends of every category on the instance.
func (suite *TestSuiteStandard) TestMarkAllPaidNilCategory() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100)})

	result, err := models.MarkAllPaid(models.DB, uuid.Nil, nil)
	suite.Require().Nil(err)

	suite.Assert().Empty(result.Settled)
	suite.Assert().Nil(result.Adjustment)
	suite.Assert().Len(suite.unpaidSpends(category.ID), 1)
}

func (suite *TestSuiteStandard) TestMarkAllPaidFullSettlement() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(50), Date: testDate(2024, 3, 5)})

	result, err := models.MarkAllPaid(models.DB, category.ID, nil)
	suite.Require().Nil(err)

	suite.Assert().Len(result.Settled, 2)
	suite.Assert().Nil(result.Adjustment)

	for _, spend := range result.Settled {
		suite.Assert().True(spend.IsPaid)
		suite.Require().NotNil(spend.PaidDate)
	}

	suite.Assert().Empty(suite.unpaidSpends(category.ID))
}

// The payment is applied oldest first and spends are never split: a
// spend that does not fit into the remaining payment stays unpaid even
// when a later one would still fit.
func (suite *TestSuiteStandard) TestMarkAllPaidWaterfall() {
	category := suite.createTestCategory(models.Category{})
	first := suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})
	second := suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(50), Date: testDate(2024, 3, 5)})
	third := suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(200), Date: testDate(2024, 3, 10)})

	result, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(150))
	suite.Require().Nil(err)

	suite.Require().Len(result.Settled, 2)
	suite.Assert().Equal(first.ID, result.Settled[0].ID)
	suite.Assert().Equal(second.ID, result.Settled[1].ID)

	// The payment is fully consumed, no adjustment is needed
	suite.Assert().Nil(result.Adjustment)

	unpaid := suite.unpaidSpends(category.ID)
	suite.Require().Len(unpaid, 1)
	suite.Assert().Equal(third.ID, unpaid[0].ID)
}

// A payment that cannot settle everything leaves the remainder as an
// unpaid credit record.
func (suite *TestSuiteStandard) TestMarkAllPaidPartialPayment() {
	category := suite.createTestCategory(models.Category{})
	big := suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(50), Date: testDate(2024, 3, 5)})

	result, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(90))
	suite.Require().Nil(err)

	// 100 does not fit into 90, 50 does
	suite.Require().Len(result.Settled, 1)

	suite.Require().NotNil(result.Adjustment)
	suite.Assert().Equal(models.DescriptionPartialPayment, result.Adjustment.Description)
	suite.Assert().True(decimal.NewFromFloat(-40).Equal(result.Adjustment.Amount))
	suite.Assert().False(result.Adjustment.IsPaid)
	suite.Assert().Nil(result.Adjustment.PaidDate)
	suite.Assert().Equal(category.ID, result.Adjustment.CategoryID)

	// The big spend and the credit are both outstanding
	unpaid := suite.unpaidSpends(category.ID)
	suite.Require().Len(unpaid, 2)

	ids := []uuid.UUID{unpaid[0].ID, unpaid[1].ID}
	suite.Assert().Contains(ids, big.ID)
}

// Paying more than the outstanding balance settles everything and
// records the excess as a paid adjustment.
func (suite *TestSuiteStandard) TestMarkAllPaidOverpayment() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(120), Date: testDate(2024, 3, 1)})

	result, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(150))
	suite.Require().Nil(err)

	suite.Assert().Len(result.Settled, 1)

	suite.Require().NotNil(result.Adjustment)
	suite.Assert().Equal(models.DescriptionBillAdjustment, result.Adjustment.Description)
	suite.Assert().True(decimal.NewFromFloat(-30).Equal(result.Adjustment.Amount))
	suite.Assert().True(result.Adjustment.IsPaid)
	suite.Assert().NotNil(result.Adjustment.PaidDate)
}

// Remainders within the comparison tolerance do not produce adjustment
// records.
func (suite *TestSuiteStandard) TestMarkAllPaidEpsilon() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})

	result, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(99.995))
	suite.Require().Nil(err)

	suite.Assert().Len(result.Settled, 1)
	suite.Assert().Nil(result.Adjustment)
	suite.Assert().Empty(suite.unpaidSpends(category.ID))
}

func (suite *TestSuiteStandard) TestMarkAllPaidZero() {
	category := suite.createTestCategory(models.Category{})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})

	result, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(0))
	suite.Require().Nil(err)

	suite.Assert().Empty(result.Settled)
	suite.Assert().Nil(result.Adjustment)
	suite.Assert().Len(suite.unpaidSpends(category.ID), 1)
}

func (suite *TestSuiteStandard) TestMarkAllPaidNegative() {
	category := suite.createTestCategory(models.Category{})

	_, err := models.MarkAllPaid(models.DB, category.ID, decimalPtr(-10))
	suite.Assert().ErrorIs(err, models.ErrPaidAmountNegative)
}

// Settling a recurring spend generates its next occurrence and advances
// the category's next bill date by one month.
func (suite *TestSuiteStandard) TestMarkAllPaidRecurring() {
	billDate := testDate(2024, 4, 1)
	category := suite.createTestCategory(models.Category{NextBillDate: &billDate})
	_ = suite.createTestSpend(models.Spend{
		CategoryID:         category.ID,
		Amount:             decimal.NewFromFloat(15.49),
		Date:               testDate(2024, 3, 15),
		IsRecurring:        true,
		RecurringFrequency: models.FrequencyMonthly,
	})

	result, err := models.MarkAllPaid(models.DB, category.ID, nil)
	suite.Require().Nil(err)

	suite.Require().Len(result.Generated, 1)
	next := result.Generated[0]
	suite.Assert().True(testDate(2024, 4, 15).Equal(next.Date))
	suite.Assert().False(next.IsPaid)
	suite.Assert().True(next.IsRecurring)

	// The occurrence is persisted
	unpaid := suite.unpaidSpends(category.ID)
	suite.Require().Len(unpaid, 1)
	suite.Assert().Equal(next.ID, unpaid[0].ID)

	suite.Require().NotNil(result.Category)
	suite.Require().NotNil(result.Category.NextBillDate)
	suite.Assert().True(testDate(2024, 5, 1).Equal(*result.Category.NextBillDate))
}

// The next bill date only advances when a recurring spend was settled.
func (suite *TestSuiteStandard) TestMarkAllPaidBillDateUntouched() {
	billDate := testDate(2024, 4, 1)
	category := suite.createTestCategory(models.Category{NextBillDate: &billDate})
	_ = suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100), Date: testDate(2024, 3, 1)})

	result, err := models.MarkAllPaid(models.DB, category.ID, nil)
	suite.Require().Nil(err)

	suite.Assert().Len(result.Settled, 1)
	suite.Assert().Nil(result.Category)

	var dbCategory models.Category
	err = models.DB.First(&dbCategory, category.ID).Error
	suite.Require().Nil(err)
	suite.Require().NotNil(dbCategory.NextBillDate)
	suite.Assert().True(billDate.Equal(*dbCategory.NextBillDate))
}

// A recurring spend past its EMI end date settles without generating a
// next occurrence.
func (suite *TestSuiteStandard) TestMarkAllPaidEMIEnded() {
	category := suite.createTestCategory(models.Category{})
	emiEnd := testDate(2024, 3, 31)
	_ = suite.createTestSpend(models.Spend{
		CategoryID:         category.ID,
		Amount:             decimal.NewFromFloat(50),
		Date:               testDate(2024, 3, 15),
		IsRecurring:        true,
		RecurringFrequency: models.FrequencyMonthly,
		EMIEndDate:         &emiEnd,
	})

	result, err := models.MarkAllPaid(models.DB, category.ID, nil)
	suite.Require().Nil(err)

	suite.Assert().Len(result.Settled, 1)
	suite.Assert().Empty(result.Generated)
	suite.Assert().Empty(suite.unpaidSpends(category.ID))
}

func (suite *TestSuiteStandard) TestToggleSpendPaid() {
	category := suite.createTestCategory(models.Category{})
	spend := suite.createTestSpend(models.Spend{CategoryID: category.ID, Amount: decimal.NewFromFloat(100)})

	result, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)

	suite.Require().Len(result.Settled, 1)
	suite.Assert().True(result.Settled[0].IsPaid)
	suite.Assert().NotNil(result.Settled[0].PaidDate)
	suite.Assert().Empty(result.Generated)

	result, err = models.ToggleSpendPaid(models.DB, spend.ID, false)
	suite.Require().Nil(err)

	suite.Require().Len(result.Settled, 1)
	suite.Assert().False(result.Settled[0].IsPaid)
	suite.Assert().Nil(result.Settled[0].PaidDate)
}

func (suite *TestSuiteStandard) TestToggleSpendPaidRecurring() {
	billDate := testDate(2024, 4, 1)
	category := suite.createTestCategory(models.Category{NextBillDate: &billDate})
	spend := suite.createTestSpend(models.Spend{
		CategoryID:         category.ID,
		Amount:             decimal.NewFromFloat(15.49),
		Date:               testDate(2024, 3, 15),
		IsRecurring:        true,
		RecurringFrequency: models.FrequencyMonthly,
	})

	result, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)

	suite.Require().Len(result.Generated, 1)
	suite.Assert().True(testDate(2024, 4, 15).Equal(result.Generated[0].Date))

	suite.Require().NotNil(result.Category)
	suite.Require().NotNil(result.Category.NextBillDate)
	suite.Assert().True(testDate(2024, 5, 1).Equal(*result.Category.NextBillDate))
}

// Toggling a recurring spend back to unpaid does not retract the
// occurrence, so another toggle to paid generates a duplicate. This
// pins the intended product behavior.
func (suite *TestSuiteStandard) TestToggleSpendPaidNoUndo() {
	category := suite.createTestCategory(models.Category{})
	spend := suite.createTestSpend(models.Spend{
		CategoryID:         category.ID,
		Amount:             decimal.NewFromFloat(10),
		Date:               testDate(2024, 3, 15),
		IsRecurring:        true,
		RecurringFrequency: models.FrequencyMonthly,
	})

	_, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)

	_, err = models.ToggleSpendPaid(models.DB, spend.ID, false)
	suite.Require().Nil(err)

	result, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)
	suite.Require().Len(result.Generated, 1)

	var spends []models.Spend
	err = models.DB.Where(&models.Spend{CategoryID: category.ID}).Find(&spends).Error
	suite.Require().Nil(err)

	// The original plus two generated occurrences
	suite.Assert().Len(spends, 3)
}

// Marking an already paid spend as paid again does not generate another
// occurrence.
func (suite *TestSuiteStandard) TestToggleSpendPaidIdempotent() {
	category := suite.createTestCategory(models.Category{})
	spend := suite.createTestSpend(models.Spend{
		CategoryID:  category.ID,
		Amount:      decimal.NewFromFloat(10),
		Date:        testDate(2024, 3, 15),
		IsRecurring: true,
	})

	_, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)

	result, err := models.ToggleSpendPaid(models.DB, spend.ID, true)
	suite.Require().Nil(err)
	suite.Assert().Empty(result.Generated)
}

func (suite *TestSuiteStandard) TestToggleSpendPaidMissing() {
	result, err := models.ToggleSpendPaid(models.DB, uuid.New(), true)

	suite.Require().Nil(err)
	suite.Assert().Empty(result.Settled)
}

func (suite *TestSuiteStandard) TestMarkAllPaidDBError() {
	suite.CloseDB()

	_, err := models.MarkAllPaid(models.DB, uuid.New(), nil)
	suite.Assert().NotNil(err)
}
