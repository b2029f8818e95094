package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/controllers/v1"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetAlerts() {
	b := suite.createActiveBudget("Alerts", "1000")
	first := suite.createTestAllocation(b.ID, "100")
	second := suite.createTestAllocation(b.ID, "100")

	suite.recordSpend(first.ID, "60")
	suite.recordSpend(first.ID, "95")
	read := suite.recordSpend(second.ID, "80").Alerts[0].Alert

	r := suite.request(http.MethodPost, suite.url("/alerts/%s/read", read.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	tests := []struct {
		query string
		count int
	}{
		{"", 3},
		{fmt.Sprintf("?budget=%s", b.ID), 3},
		{fmt.Sprintf("?budget=%s", uuid.New()), 0},
		{fmt.Sprintf("?allocation=%s", first.ID), 2},
		{"?level=critical", 1},
		{"?level=WARNING", 1},
		{"?level=EXCEEDED", 0},
		{"?isRead=true", 1},
		{"?isRead=false", 2},
		{"?limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := suite.request(http.MethodGet, suite.url("/alerts")+tt.query, "")
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response v1.AlertListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}

	for _, query := range []string{"?level=PANIC", "?isRead=maybe", "?budget=nope"} {
		suite.T().Run(query, func(t *testing.T) {
			r := suite.request(http.MethodGet, suite.url("/alerts")+query, "")
			test.AssertHTTPStatus(t, http.StatusBadRequest, &r)
		})
	}
}

func (suite *TestSuiteStandard) TestGetUnreadAlerts() {
	a := suite.createTestAllocation(suite.createActiveBudget("Unread", "1000").ID, "100")
	alert := suite.recordSpend(a.ID, "90").Alerts[0].Alert

	r := suite.request(http.MethodGet, suite.url("/alerts/unread"), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AlertListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal(alert.ID, response.Data[0].ID)
	suite.Assert().Equal("CRITICAL", response.Data[0].Level)
	suite.Assert().Equal("Critical: 90.0% of budget spent (90.00/100.00). Only 10.00 remaining.", response.Data[0].Message)

	r = suite.request(http.MethodPost, suite.url("/alerts/%s/read", alert.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	r = suite.request(http.MethodGet, suite.url("/alerts/unread"), "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)

	// Alerts are scoped to their workspace
	r = suite.request(http.MethodGet, fmt.Sprintf("http://example.com/v1/workspaces/%s/alerts/unread", uuid.New()), "")
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestMarkAlert() {
	a := suite.createTestAllocation(suite.createActiveBudget("Notify", "1000").ID, "100")
	alert := suite.recordSpend(a.ID, "100").Alerts[0].Alert
	suite.Assert().Nil(alert.NotifiedAt)

	r := suite.request(http.MethodPost, suite.url("/alerts/%s/notified", alert.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response v1.AlertResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data.NotifiedAt)
	suite.Assert().True(suite.now.Equal(*response.Data.NotifiedAt))
	suite.Assert().False(response.Data.IsRead)

	r = suite.request(http.MethodPost, suite.url("/alerts/%s/notified", alert.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusConflict, &r)

	for i := 0; i < 2; i++ {
		r = suite.request(http.MethodPost, suite.url("/alerts/%s/read", alert.ID), "")
		test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)
		test.DecodeResponse(suite.T(), &r, &response)
		suite.Assert().True(response.Data.IsRead)
	}

	r = suite.request(http.MethodPost, suite.url("/alerts/%s/read", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodPost, fmt.Sprintf("http://example.com/v1/workspaces/%s/alerts/%s/read", uuid.New(), alert.ID), "")
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}
