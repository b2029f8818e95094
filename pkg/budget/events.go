package budget

import (
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type names carried by events.
const (
	AggregateBudget        = "Budget"
	AggregateAllocation    = "BudgetAllocation"
	AggregateSpendingLimit = "SpendingLimit"
)

// BudgetEvent is an event recorded by a Budget. The set of implementations
// is closed: BudgetCreated, BudgetUpdated, BudgetActivated, BudgetArchived
// and BudgetThresholdExceeded.
type BudgetEvent interface {
	events.Event
	budgetEvent()
}

type BudgetCreated struct {
	events.Meta
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	BudgetName  string          `json:"name"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	PeriodType  PeriodType      `json:"periodType"`
	CreatedBy   uuid.UUID       `json:"createdBy"`
}

// BudgetUpdated is recorded once per changed field.
type BudgetUpdated struct {
	events.Meta
	WorkspaceID uuid.UUID `json:"workspaceId"`
	Field       string    `json:"field"`
	OldValue    *string   `json:"oldValue"`
	NewValue    *string   `json:"newValue"`
}

type BudgetActivated struct {
	events.Meta
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type BudgetArchived struct {
	events.Meta
	WorkspaceID    uuid.UUID `json:"workspaceId"`
	PreviousStatus Status    `json:"previousStatus"`
}

type BudgetThresholdExceeded struct {
	events.Meta
	WorkspaceID     uuid.UUID       `json:"workspaceId"`
	CurrentSpending decimal.Decimal `json:"currentSpending"`
	BudgetLimit     decimal.Decimal `json:"budgetLimit"`
	Currency        string          `json:"currency"`
}

func (BudgetCreated) Name() string           { return "budget.created" }
func (BudgetUpdated) Name() string           { return "budget.updated" }
func (BudgetActivated) Name() string         { return "budget.activated" }
func (BudgetArchived) Name() string          { return "budget.archived" }
func (BudgetThresholdExceeded) Name() string { return "budget.threshold_exceeded" }

func (BudgetCreated) budgetEvent()           {}
func (BudgetUpdated) budgetEvent()           {}
func (BudgetActivated) budgetEvent()         {}
func (BudgetArchived) budgetEvent()          {}
func (BudgetThresholdExceeded) budgetEvent() {}

// AllocationEvent is an event recorded by an Allocation: AllocationCreated,
// AllocationSpendRecorded or AllocationThresholdCrossed.
type AllocationEvent interface {
	events.Event
	allocationEvent()
}

type AllocationCreated struct {
	events.Meta
	BudgetID        uuid.UUID       `json:"budgetId"`
	CategoryID      *uuid.UUID      `json:"categoryId"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
}

type AllocationSpendRecorded struct {
	events.Meta
	BudgetID      uuid.UUID       `json:"budgetId"`
	PreviousSpent decimal.Decimal `json:"previousSpent"`
	SpentAmount   decimal.Decimal `json:"spentAmount"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// AllocationThresholdCrossed is recorded when a spend change moves an
// allocation into a higher alert level band than it was in before.
type AllocationThresholdCrossed struct {
	events.Meta
	BudgetID      uuid.UUID       `json:"budgetId"`
	PreviousLevel *AlertLevel     `json:"previousLevel"`
	Level         AlertLevel      `json:"level"`
	Percentage    decimal.Decimal `json:"percentage"`
}

func (AllocationCreated) Name() string          { return "allocation.created" }
func (AllocationSpendRecorded) Name() string    { return "allocation.spend_recorded" }
func (AllocationThresholdCrossed) Name() string { return "allocation.threshold_crossed" }

func (AllocationCreated) allocationEvent()          {}
func (AllocationSpendRecorded) allocationEvent()    {}
func (AllocationThresholdCrossed) allocationEvent() {}

// LimitEvent is an event recorded by a SpendingLimit: SpendingLimitCreated,
// SpendingLimitUpdated, SpendingLimitActivated or SpendingLimitDeactivated.
type LimitEvent interface {
	events.Event
	limitEvent()
}

type SpendingLimitCreated struct {
	events.Meta
	WorkspaceID uuid.UUID       `json:"workspaceId"`
	UserID      *uuid.UUID      `json:"userId"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	Currency    string          `json:"currency"`
	PeriodType  PeriodType      `json:"periodType"`
}

type SpendingLimitUpdated struct {
	events.Meta
	WorkspaceID    uuid.UUID       `json:"workspaceId"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	LimitAmount    decimal.Decimal `json:"limitAmount"`
}

type SpendingLimitActivated struct {
	events.Meta
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

type SpendingLimitDeactivated struct {
	events.Meta
	WorkspaceID uuid.UUID `json:"workspaceId"`
}

func (SpendingLimitCreated) Name() string     { return "spending_limit.created" }
func (SpendingLimitUpdated) Name() string     { return "spending_limit.updated" }
func (SpendingLimitActivated) Name() string   { return "spending_limit.activated" }
func (SpendingLimitDeactivated) Name() string { return "spending_limit.deactivated" }

func (SpendingLimitCreated) limitEvent()     {}
func (SpendingLimitUpdated) limitEvent()     {}
func (SpendingLimitActivated) limitEvent()   {}
func (SpendingLimitDeactivated) limitEvent() {}
