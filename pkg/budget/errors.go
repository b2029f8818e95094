package budget

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Error categories. Every error returned by this package matches exactly
// one of them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("state conflict")
)

var (
	ErrInvalidName                 = fmt.Errorf("%w: name must be between 1 and %d characters", ErrValidation, NameMaxLength)
	ErrDescriptionTooLong          = fmt.Errorf("%w: description must not exceed %d characters", ErrValidation, DescriptionMaxLength)
	ErrAllocationDescriptionLength = fmt.Errorf("%w: allocation description must not exceed %d characters", ErrValidation, AllocationDescriptionMaxLength)
	ErrAmountNotPositive           = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrAmountNegative              = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrAmountTooLarge              = fmt.Errorf("%w: amount must not exceed %s", ErrValidation, MaxAmount.StringFixed(AmountScale))
	ErrAmountPrecision             = fmt.Errorf("%w: amount must not have more than %d decimal places", ErrValidation, AmountScale)
	ErrInvalidCurrency             = fmt.Errorf("%w: currency must be a supported ISO 4217 code", ErrValidation)
	ErrInvalidPeriodType           = fmt.Errorf("%w: unknown period type", ErrValidation)
	ErrCustomPeriodEndRequired     = fmt.Errorf("%w: a custom period requires an end date", ErrValidation)
	ErrPeriodEndBeforeStart        = fmt.Errorf("%w: period end must be after its start", ErrValidation)
	ErrInvalidStatus               = fmt.Errorf("%w: unknown budget status", ErrValidation)
	ErrInvalidAlertLevel           = fmt.Errorf("%w: unknown alert level", ErrValidation)
	ErrBelowAlertThreshold         = fmt.Errorf("%w: percentage is below the lowest alert threshold", ErrValidation)
	ErrZeroAllocatedAmount         = fmt.Errorf("%w: allocated amount must be greater than zero", ErrValidation)
	ErrAllocationExceedsBudget     = fmt.Errorf("%w: allocations exceed the budget total", ErrValidation)
	ErrMissingID                   = fmt.Errorf("%w: identifier must not be empty", ErrValidation)

	ErrInvalidStatusTransition = fmt.Errorf("%w: invalid budget status transition", ErrConflict)
	ErrAlertAlreadyNotified    = fmt.Errorf("%w: alert has already been notified", ErrConflict)
	ErrLimitAlreadyActive      = fmt.Errorf("%w: spending limit is already active", ErrConflict)
	ErrLimitAlreadyInactive    = fmt.Errorf("%w: spending limit is already inactive", ErrConflict)
)

// StatusTransitionError is returned when a lifecycle operation is not
// allowed from the budget's current status.
type StatusTransitionError struct {
	BudgetID uuid.UUID
	From     Status
	To       Status
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("budget %s cannot transition from %s to %s", e.BudgetID, e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// AllocationExceededError is returned when allocating an amount would take
// the sum of all allocations of a budget past its total.
type AllocationExceededError struct {
	Total     decimal.Decimal
	Allocated decimal.Decimal
	Requested decimal.Decimal
}

func (e *AllocationExceededError) Error() string {
	if e.Requested.IsZero() {
		return fmt.Sprintf("the budget total of %s is lower than the %s already allocated",
			e.Total.StringFixed(AmountScale), e.Allocated.StringFixed(AmountScale))
	}

	return fmt.Sprintf("allocating %s would exceed the budget total of %s, %s is already allocated",
		e.Requested.StringFixed(AmountScale), e.Total.StringFixed(AmountScale), e.Allocated.StringFixed(AmountScale))
}

func (e *AllocationExceededError) Unwrap() error {
	return ErrAllocationExceedsBudget
}
