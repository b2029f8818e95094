package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	id := uuid.New()

	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{suite.url("/budgets"), "OPTIONS, GET, POST"},
		{suite.url("/budgets/%s", id), "OPTIONS, GET, PATCH, DELETE"},
		{suite.url("/allocations/%s", id), "OPTIONS, GET, PATCH, DELETE"},
		{suite.url("/allocations/%s/spent", id), "OPTIONS, POST"},
		{suite.url("/alerts"), "OPTIONS, GET"},
		{suite.url("/spending-limits"), "OPTIONS, GET, POST"},
		{suite.url("/spending-limits/%s", id), "OPTIONS, GET, PATCH, DELETE"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := suite.request(http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, r.Code)
			assert.Equal(t, tt.response, r.Header().Get("allow"))
		})
	}
}
