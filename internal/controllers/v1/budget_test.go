package v1_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	v1 "github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/controllers/v1"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/httperror"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/test"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateBudget() {
	b := suite.createTestBudget("Groceries", "1000.00")

	suite.Assert().Equal("Groceries", b.Name)
	suite.Assert().Equal("1000.00", b.TotalAmount)
	suite.Assert().Equal("USD", b.Currency)
	suite.Assert().Equal("DRAFT", b.Status)
	suite.Assert().Equal("2026-01-01", b.StartDate.String())
	suite.Assert().Equal("2026-02-01", b.EndDate.String())
	suite.Assert().Equal(suite.owner, b.CreatedBy)
	suite.Assert().Equal(int64(1), b.Version)
	suite.Assert().Nil(b.Description)

	self := fmt.Sprintf("http://example.com/v1/workspaces/%s/budgets/%s", suite.workspace, b.ID)
	suite.Assert().Equal(self, b.Links.Self)
	suite.Assert().Equal(self+"/allocations", b.Links.Allocations)
}

func (suite *TestSuiteStandard) TestCreateBudgetFails() {
	tests := []struct {
		name   string
		user   uuid.UUID
		url    string
		body   string
		status int
	}{
		{"No user", uuid.Nil, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Broken workspace ID", suite.owner, "http://example.com/v1/workspaces/not-a-uuid/budgets", `{}`, http.StatusBadRequest},
		{"Empty body", suite.owner, suite.url("/budgets"), "", http.StatusBadRequest},
		{"Broken body", suite.owner, suite.url("/budgets"), `{"name": 2`, http.StatusBadRequest},
		{"No name", suite.owner, suite.url("/budgets"), `{"totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Unknown currency", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "ABC", "periodType": "MONTHLY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Unknown period type", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "USD", "periodType": "DAILY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Custom period without end", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "USD", "periodType": "CUSTOM", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Zero total", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "0", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Too many decimal places", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "10.001", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`, http.StatusBadRequest},
		{"Broken date", suite.owner, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "January"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(tt.user, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)

			var response httperror.Error
			test.DecodeResponse(t, &r, &response)
			assert.NotEmpty(t, response.Message)
		})
	}
}

func (suite *TestSuiteStandard) TestCreateBudgetCustomPeriod() {
	body := `{"name": "Trip", "totalAmount": "2500", "currency": "eur", "periodType": "custom", "startDate": "2026-03-10", "endDate": "2026-03-24"}`
	r := suite.request(http.MethodPost, suite.url("/budgets"), body)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("EUR", response.Data.Currency)
	suite.Assert().Equal("CUSTOM", response.Data.PeriodType)
	suite.Assert().Equal("2026-03-24", response.Data.EndDate.String())
}

func (suite *TestSuiteStandard) TestCreateBudgetDuplicateName() {
	suite.createTestBudget("Rent", "900")

	r := suite.request(http.MethodPost, suite.url("/budgets"), `{"name": "Rent", "totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)
}

func (suite *TestSuiteStandard) TestCreateBudgetPublishFailure() {
	engine := suite.routes(events.PublisherFunc(func(context.Context, events.Event) error {
		return errors.New("broker unreachable")
	}))

	r := test.Request(suite.T(), engine, http.MethodPost, suite.url("/budgets"),
		`{"name": "Unpublished", "totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`,
		map[string]string{"X-User-ID": suite.owner.String()})
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)

	r = suite.request(http.MethodGet, suite.url("/budgets/%s", response.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
}

func (suite *TestSuiteStandard) TestGetBudget() {
	b := suite.createTestBudget("Utilities", "150")

	r := suite.request(http.MethodGet, suite.url("/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(b.ID, response.Data.ID)
	suite.Assert().Equal("150.00", response.Data.TotalAmount)
}

func (suite *TestSuiteStandard) TestGetBudgetFails() {
	b := suite.createTestBudget("Hidden", "150")

	tests := []struct {
		name   string
		url    string
		status int
	}{
		{"Unknown ID", suite.url("/budgets/%s", uuid.New()), http.StatusNotFound},
		{"Other workspace", fmt.Sprintf("http://example.com/v1/workspaces/%s/budgets/%s", uuid.New(), b.ID), http.StatusNotFound},
		{"Broken ID", suite.url("/budgets/not-an-id"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, tt.url, "")
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBudgets() {
	suite.createTestBudget("Draft", "100")
	active := suite.createActiveBudget("Active", "100")

	tests := []struct {
		query string
		count int
	}{
		{"", 2},
		{"?status=active", 1},
		{"?status=ARCHIVED", 0},
		{"?currency=usd", 2},
		{"?currency=EUR", 0},
		{fmt.Sprintf("?createdBy=%s", suite.owner), 2},
		{fmt.Sprintf("?createdBy=%s", uuid.New()), 0},
		{"?activeAt=2026-01-20", 1},
		{"?activeAt=2026-02-20", 0},
		{"?limit=1", 1},
		{"?offset=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := suite.request(http.MethodGet, suite.url("/budgets")+tt.query, "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
			assert.Equal(t, tt.count, response.Pagination.Count)
		})
	}

	r := suite.request(http.MethodGet, suite.url("/budgets?activeAt=2026-01-20"), "")
	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(active.ID, response.Data[0].ID)
}

func (suite *TestSuiteStandard) TestGetBudgetsInvalidQuery() {
	for _, query := range []string{"?status=CLOSED", "?currency=ABC", "?limit=-1", "?limit=5000", "?createdBy=nope", "?activeAt=soon"} {
		suite.T().Run(query, func(t *testing.T) {
			r := suite.request(http.MethodGet, suite.url("/budgets")+query, "")
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestGetActiveBudgets() {
	suite.createTestBudget("Draft", "100")
	active := suite.createActiveBudget("Current", "100")

	r := suite.request(http.MethodGet, suite.url("/budgets/active"), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(active.ID, response.Data[0].ID)
	suite.Assert().Nil(response.Pagination)

	suite.now = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	r = suite.request(http.MethodGet, suite.url("/budgets/active"), "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestUpdateBudget() {
	b := suite.createTestBudget("Food", "400")

	r := suite.request(http.MethodPatch, suite.url("/budgets/%s", b.ID), `{"name": "Food and drinks", "description": "Everything edible", "totalAmount": "450.50"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Food and drinks", response.Data.Name)
	suite.Require().NotNil(response.Data.Description)
	suite.Assert().Equal("Everything edible", *response.Data.Description)
	suite.Assert().Equal("450.50", response.Data.TotalAmount)
	suite.Assert().Greater(response.Data.Version, b.Version)

	r = suite.request(http.MethodPatch, suite.url("/budgets/%s", b.ID), `{"description": ""}`)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data.Description)
	suite.Assert().Equal("Food and drinks", response.Data.Name, "omitted fields are not changed")
}

func (suite *TestSuiteStandard) TestUpdateBudgetFails() {
	b := suite.createTestBudget("Owned", "100")
	suite.createTestBudget("Taken", "100")
	suite.createTestAllocation(b.ID, "80")

	tests := []struct {
		name   string
		user   uuid.UUID
		body   string
		status int
	}{
		{"Not the creator", uuid.New(), `{"name": "Mine now"}`, http.StatusForbidden},
		{"No user", uuid.Nil, `{"name": "Mine now"}`, http.StatusBadRequest},
		{"Name taken", suite.owner, `{"name": "Taken"}`, http.StatusConflict},
		{"Total below allocated", suite.owner, `{"totalAmount": "79.99"}`, http.StatusBadRequest},
		{"Name too long", suite.owner, fmt.Sprintf(`{"name": %q}`, strings.Repeat("a", 256)), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(tt.user, http.MethodPatch, suite.url("/budgets/%s", b.ID), tt.body)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}

	r := suite.request(http.MethodPatch, suite.url("/budgets/%s", uuid.New()), `{"name": "Ghost"}`)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestBudgetLifecycle() {
	b := suite.createActiveBudget("Lifecycle", "100")
	suite.Assert().Equal("ACTIVE", b.Status)

	r := suite.request(http.MethodPost, suite.url("/budgets/%s/activate", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)

	r = suite.requestAs(uuid.New(), http.MethodPost, suite.url("/budgets/%s/archive", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &r)

	r = suite.request(http.MethodPost, suite.url("/budgets/%s/archive", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("ARCHIVED", response.Data.Status)

	r = suite.request(http.MethodPost, suite.url("/budgets/%s/activate", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)
}

func (suite *TestSuiteStandard) TestDeleteBudget() {
	b := suite.createTestBudget("Delete me", "100")

	r := suite.requestAs(uuid.New(), http.MethodDelete, suite.url("/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusForbidden, &r)

	r = suite.request(http.MethodDelete, suite.url("/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = suite.request(http.MethodGet, suite.url("/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodDelete, suite.url("/budgets/%s", b.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestArchiveExpiredBudgets() {
	expired := suite.createActiveBudget("Expired", "100")
	suite.createTestBudget("Draft", "100")

	r := suite.request(http.MethodPost, suite.url("/budgets/archive-expired"), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.ArchiveExpiredResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(0, response.Archived)

	suite.now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r = suite.request(http.MethodPost, suite.url("/budgets/archive-expired"), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(1, response.Archived)

	r = suite.request(http.MethodGet, suite.url("/budgets/%s", expired.ID), "")
	var budget v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &budget)
	suite.Assert().Equal("ARCHIVED", budget.Data.Status)
}

// TestBudgetsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestBudgetsDBClosed() {
	b := suite.createTestBudget("Closed", "100")
	suite.CloseDB()

	tests := []struct {
		method string
		url    string
		body   string
	}{
		{http.MethodGet, suite.url("/budgets"), ""},
		{http.MethodGet, suite.url("/budgets/active"), ""},
		{http.MethodGet, suite.url("/budgets/%s", b.ID), ""},
		{http.MethodPost, suite.url("/budgets"), `{"name": "A", "totalAmount": "10", "currency": "USD", "periodType": "MONTHLY", "startDate": "2026-01-01"}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.url, func(t *testing.T) {
			r := suite.request(tt.method, tt.url, tt.body)
			test.AssertHTTPStatus(t, http.StatusInternalServerError, &r)

			var response httperror.Error
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, httperror.ErrInternal.Error(), response.Message)
		})
	}
}
