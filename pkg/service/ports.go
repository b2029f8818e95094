// Package service implements the budget application services. They load
// aggregates through the repository ports, mutate them and save them back.
//
// Repositories own atomicity: a save persists state and publishes the
// recorded events of the aggregate only after the state is committed.
package service

import (
	"context"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock returns the current time. Services use it for every comparison
// against "now".
type Clock func() time.Time

// UTC is the default Clock.
func UTC() time.Time {
	return time.Now().UTC()
}

// Page limits the results of a query. A zero Limit means no limit.
type Page struct {
	Offset int
	Limit  int
}

type BudgetFilter struct {
	// WorkspaceID restricts the results to one workspace. uuid.Nil matches
	// budgets of all workspaces.
	WorkspaceID uuid.UUID

	Status    *budget.Status
	CreatedBy *uuid.UUID
	Currency  string

	// ActiveAt matches ACTIVE budgets whose period contains the time
	ActiveAt *time.Time

	// EndedBefore matches budgets whose period ended before the time
	EndedBefore *time.Time

	Page
}

// BudgetRepository persists budgets. Find methods return an error matching
// ErrNotFound when nothing matches, Save returns ErrVersionConflict when the
// budget has been modified since it was loaded.
type BudgetRepository interface {
	Save(ctx context.Context, b *budget.Budget) error
	FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.Budget, error)
	FindByFilters(ctx context.Context, filter BudgetFilter) ([]*budget.Budget, error)
	Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, workspaceID uuid.UUID, name string) (bool, error)

	// Delete removes the budget, its allocations and their alerts atomically.
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}

type AllocationRepository interface {
	Save(ctx context.Context, a *budget.Allocation) error

	// SaveWithAlerts saves the allocation and inserts the alerts in one
	// transaction. An alert for which an unread alert with the same
	// allocation and level exists is skipped.
	SaveWithAlerts(ctx context.Context, a *budget.Allocation, alerts []*budget.Alert) ([]budget.AlertOutcome, error)

	FindByID(ctx context.Context, id uuid.UUID) (*budget.Allocation, error)
	FindByBudget(ctx context.Context, budgetID uuid.UUID) ([]*budget.Allocation, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Delete removes the allocation and its alerts atomically.
	Delete(ctx context.Context, id uuid.UUID) error
}

type AlertFilter struct {
	WorkspaceID  uuid.UUID
	BudgetID     *uuid.UUID
	AllocationID *uuid.UUID
	Level        *budget.AlertLevel
	IsRead       *bool

	Page
}

// AlertRepository persists alerts. Alerts are scoped to a workspace through
// their budget.
type AlertRepository interface {
	Save(ctx context.Context, a *budget.Alert) error
	FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.Alert, error)
	FindByFilters(ctx context.Context, filter AlertFilter) ([]*budget.Alert, error)
	Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}

type SpendingLimitFilter struct {
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	IsActive    *bool
	PeriodType  *budget.PeriodType
	Currency    string

	Page
}

type SpendingLimitRepository interface {
	Save(ctx context.Context, l *budget.SpendingLimit) error
	FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.SpendingLimit, error)
	FindByFilters(ctx context.Context, filter SpendingLimitFilter) ([]*budget.SpendingLimit, error)

	// FindApplicable returns all active limits of the workspace that apply to
	// an expense of the user in the category. See budget.SpendingLimit.AppliesTo.
	FindApplicable(ctx context.Context, workspaceID uuid.UUID, userID, categoryID *uuid.UUID) ([]*budget.SpendingLimit, error)

	Count(ctx context.Context, workspaceID uuid.UUID) (int64, error)
	Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id, workspaceID uuid.UUID) error
}

// SpendQuery selects the expenses a spending limit covers within a window.
// Nil user or category IDs match expenses of any user or category.
type SpendQuery struct {
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	Currency    string
	From        time.Time // inclusive
	To          time.Time // exclusive
}

// SpendLedger reports actual spend. It is implemented by the expense module.
type SpendLedger interface {
	SpentBetween(ctx context.Context, q SpendQuery) (decimal.Decimal, error)
}
