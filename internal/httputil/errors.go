package httputil

import (
	"fmt"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
)

// Request errors wrap budget.ErrValidation so that they map to
// HTTP 400 like domain validation errors.
var (
	ErrInvalidBody      = fmt.Errorf("%w: the body of your request contains invalid or un-parseable data. Please check and try again", budget.ErrValidation)
	ErrRequestBodyEmpty = fmt.Errorf("%w: the request body must not be empty", budget.ErrValidation)
	ErrInvalidUUID      = fmt.Errorf("%w: the specified resource ID is not a valid UUID", budget.ErrValidation)
	ErrInvalidQuery     = fmt.Errorf("%w: the query string contains unparseable data. Please check the values", budget.ErrValidation)
	ErrMissingUserID    = fmt.Errorf("%w: the X-User-ID header must be set to the ID of the calling user", budget.ErrValidation)
)

// ValidationError lists the fields of a request that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("the request is invalid: %s", joinFields(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return budget.ErrValidation
}
