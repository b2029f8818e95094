// Package httperror converts errors into HTTP statuses and response bodies.
package httperror

import (
	"errors"
	"net/http"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
)

type Error struct {
	Message string `json:"error" example:"there is no budget with ID 8f4c66b3-8e1d-4e55-9b8b-7d2c1a4ef1b0"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

func NewFromString(s string) Error {
	return Error{
		Message: s,
	}
}

// ErrInternal is shown to clients instead of the message of an
// unexpected error.
var ErrInternal = errors.New("an error occurred on the server during your request, please contact your server administrator")

// Status returns the HTTP status for an error returned by the services.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrNotFound), errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, budget.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, budget.ErrValidation):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Response returns the status and body for an error. Messages of
// unexpected errors are replaced by ErrInternal.
func Response(err error) (int, Error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		return status, New(ErrInternal)
	}

	return status, New(err)
}
