package service

import (
	"errors"
	"fmt"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrVersionConflict is returned by a save when the stored record has
	// been modified since it was loaded.
	ErrVersionConflict = fmt.Errorf("%w: the record has been modified concurrently, reload and retry", budget.ErrConflict)

	ErrBudgetNameTaken    = fmt.Errorf("%w: a budget with this name already exists in the workspace", budget.ErrConflict)
	ErrLimitScopeConflict = fmt.Errorf("%w: an active spending limit with the same scope, currency and period already exists", budget.ErrConflict)
	ErrTooManyLimits      = fmt.Errorf("%w: a workspace cannot have more than %d spending limits", budget.ErrConflict, budget.MaxLimitsPerWorkspace)
)

// NotFoundError is returned when a lookup by ID, scoped to a workspace
// where applicable, yields nothing.
type NotFoundError struct {
	Resource    string
	ID          uuid.UUID
	WorkspaceID uuid.UUID
}

func (e *NotFoundError) Error() string {
	if e.WorkspaceID == uuid.Nil {
		return fmt.Sprintf("there is no %s with ID %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("there is no %s with ID %s in workspace %s", e.Resource, e.ID, e.WorkspaceID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// OwnershipError is returned when a caller other than the creator of a
// budget tries to modify it. The IDs are exposed so that an authorization
// layer can make its own decision.
type OwnershipError struct {
	Operation string
	CreatedBy uuid.UUID
	Caller    uuid.UUID
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("only the creator of a budget can %s it", e.Operation)
}

func (e *OwnershipError) Unwrap() error {
	return ErrForbidden
}

// notFound converts a repository not found error into a NotFoundError and
// returns all other errors unchanged.
func notFound(err error, resource string, id, workspaceID uuid.UUID) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Resource: resource, ID: id, WorkspaceID: workspaceID}
	}
	return err
}
