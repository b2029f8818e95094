package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/controllers/v1"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/test"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCreateAllocation() {
	b := suite.createTestBudget("Household", "1000")
	category := uuid.New()

	r := suite.request(http.MethodPost, suite.url("/budgets/%s/allocations", b.ID), `{"amount": "200", "categoryId": "`+category.String()+`", "description": "Cleaning"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	a := response.Data

	suite.Assert().Equal(b.ID, a.BudgetID)
	suite.Require().NotNil(a.CategoryID)
	suite.Assert().Equal(category, *a.CategoryID)
	suite.Assert().Equal("200.00", a.AllocatedAmount)
	suite.Assert().Equal("0.00", a.SpentAmount)
	suite.Assert().Equal("200.00", a.Remaining)
	suite.Assert().Equal("0.00", a.SpentPercentage)
	suite.Assert().False(a.IsOverBudget)
	suite.Require().NotNil(a.Description)
	suite.Assert().Equal("Cleaning", *a.Description)
}

func (suite *TestSuiteStandard) TestCreateAllocationFails() {
	b := suite.createTestBudget("Capped", "300")
	suite.createTestAllocation(b.ID, "250")

	tests := []struct {
		name   string
		user   uuid.UUID
		budget uuid.UUID
		body   string
		status int
	}{
		{"Exceeds budget total", suite.owner, b.ID, `{"amount": "50.01"}`, http.StatusBadRequest},
		{"Zero amount", suite.owner, b.ID, `{"amount": "0"}`, http.StatusBadRequest},
		{"Not the creator", uuid.New(), b.ID, `{"amount": "1"}`, http.StatusForbidden},
		{"No user", uuid.Nil, b.ID, `{"amount": "1"}`, http.StatusBadRequest},
		{"Unknown budget", suite.owner, uuid.New(), `{"amount": "1"}`, http.StatusNotFound},
		{"Empty body", suite.owner, b.ID, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(tt.user, http.MethodPost, suite.url("/budgets/%s/allocations", tt.budget), tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}

	// The remaining 50 can still be allocated
	suite.createTestAllocation(b.ID, "50")
}

func (suite *TestSuiteStandard) TestGetAllocations() {
	b := suite.createTestBudget("Listed", "300")
	first := suite.createTestAllocation(b.ID, "100")
	second := suite.createTestAllocation(b.ID, "150")
	suite.createTestAllocation(suite.createTestBudget("Other", "100").ID, "10")

	r := suite.request(http.MethodGet, suite.url("/budgets/%s/allocations", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 2)

	ids := []uuid.UUID{response.Data[0].ID, response.Data[1].ID}
	suite.Assert().ElementsMatch([]uuid.UUID{first.ID, second.ID}, ids)

	r = suite.request(http.MethodGet, suite.url("/budgets/%s/allocations", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestGetAllocation() {
	a := suite.createTestAllocation(suite.createTestBudget("Single", "300").ID, "100")

	r := suite.request(http.MethodGet, suite.url("/allocations/%s", a.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(a.ID, response.Data.ID)

	r = suite.request(http.MethodGet, suite.url("/allocations/%s", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestUpdateAllocation() {
	b := suite.createTestBudget("Resize", "1000")
	a := suite.createTestAllocation(b.ID, "600")
	suite.createTestAllocation(b.ID, "300")

	r := suite.request(http.MethodPatch, suite.url("/allocations/%s", a.ID), `{"amount": "700", "description": "Rent"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AllocationResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("700.00", response.Data.AllocatedAmount)
	suite.Require().NotNil(response.Data.Description)
	suite.Assert().Equal("Rent", *response.Data.Description)

	r = suite.request(http.MethodPatch, suite.url("/allocations/%s", a.ID), `{"amount": "700.01"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.requestAs(uuid.New(), http.MethodPatch, suite.url("/allocations/%s", a.ID), `{"amount": "10"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &r)
}

func (suite *TestSuiteStandard) TestDeleteAllocation() {
	a := suite.createTestAllocation(suite.createTestBudget("Delete", "300").ID, "100")

	r := suite.requestAs(uuid.New(), http.MethodDelete, suite.url("/allocations/%s", a.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &r)

	r = suite.request(http.MethodDelete, suite.url("/allocations/%s", a.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = suite.request(http.MethodDelete, suite.url("/allocations/%s", a.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpend() {
	b := suite.createActiveBudget("Spend", "1000")
	a := suite.createTestAllocation(b.ID, "200")

	response := suite.recordSpend(a.ID, "100")
	suite.Assert().Equal("100.00", response.Data.SpentAmount)
	suite.Assert().Equal("50.00", response.Data.SpentPercentage)
	suite.Require().Len(response.Alerts, 1)
	suite.Assert().Equal("created", response.Alerts[0].Outcome)
	suite.Require().NotNil(response.Alerts[0].Alert)
	suite.Assert().Equal("INFO", response.Alerts[0].Alert.Level)
	suite.Assert().Nil(response.Alerts[0].Error)

	response = suite.recordSpend(a.ID, "250")
	suite.Assert().Equal("125.00", response.Data.SpentPercentage)
	suite.Assert().True(response.Data.IsOverBudget)
	suite.Require().Len(response.Alerts, 1)
	suite.Assert().Equal("EXCEEDED", response.Alerts[0].Alert.Level)
	suite.Assert().Contains(response.Alerts[0].Alert.Message, "Over budget by 50")
	suite.Assert().Equal("ACTIVE", response.Budget.Status, "the budget total is not exceeded")
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendDuplicateAlert() {
	a := suite.createTestAllocation(suite.createActiveBudget("Duplicate", "1000").ID, "100")

	suite.recordSpend(a.ID, "76")
	response := suite.recordSpend(a.ID, "80")

	suite.Require().Len(response.Alerts, 1)
	suite.Assert().Equal("skipped_duplicate", response.Alerts[0].Outcome)
	suite.Assert().Equal("80.00", response.Data.SpentAmount)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendBelowThreshold() {
	a := suite.createTestAllocation(suite.createActiveBudget("Low", "1000").ID, "200")

	response := suite.recordSpend(a.ID, "20")
	suite.Assert().Empty(response.Alerts)

	r := suite.request(http.MethodPost, suite.url("/allocations/%s/spent", a.ID), `{"spentAmount": "-1"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.request(http.MethodPost, suite.url("/allocations/%s/spent", uuid.New()), `{"spentAmount": "1"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestRecordAllocationSpendExceedsBudget() {
	b := suite.createActiveBudget("Exceeded", "300")
	first := suite.createTestAllocation(b.ID, "150")
	second := suite.createTestAllocation(b.ID, "150")

	suite.recordSpend(first.ID, "200")
	response := suite.recordSpend(second.ID, "120")
	suite.Assert().Equal("EXCEEDED", response.Budget.Status)
	suite.Assert().Nil(response.BudgetError)

	r := suite.request(http.MethodGet, suite.url("/budgets/%s", b.ID), "")
	var stored v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	suite.Assert().Equal("EXCEEDED", stored.Data.Status)
}
