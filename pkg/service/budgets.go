package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetService manages budgets, their allocations and alerts.
type BudgetService struct {
	budgets     BudgetRepository
	allocations AllocationRepository
	alerts      AlertRepository
	clock       Clock
}

// NewBudgetService creates a BudgetService. A nil clock defaults to UTC.
func NewBudgetService(budgets BudgetRepository, allocations AllocationRepository, alerts AlertRepository, clock Clock) *BudgetService {
	if clock == nil {
		clock = UTC
	}

	return &BudgetService{
		budgets:     budgets,
		allocations: allocations,
		alerts:      alerts,
		clock:       clock,
	}
}

type CreateBudgetInput struct {
	WorkspaceID    uuid.UUID
	CreatedBy      uuid.UUID
	Name           string
	Description    string
	TotalAmount    decimal.Decimal
	Currency       string
	PeriodType     budget.PeriodType
	StartDate      time.Time
	EndDate        *time.Time
	IsRecurring    bool
	RolloverUnused bool
}

func (s *BudgetService) CreateBudget(ctx context.Context, in CreateBudgetInput) (*budget.Budget, error) {
	taken, err := s.budgets.ExistsByName(ctx, in.WorkspaceID, strings.TrimSpace(in.Name))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrBudgetNameTaken
	}

	b, err := budget.NewBudget(budget.NewBudgetParams(in))
	if err != nil {
		return nil, err
	}

	return saved(b, s.budgets.Save(ctx, b))
}

// UpdateBudgetInput holds the fields to change. Nil fields are left as they
// are. An empty Description clears it.
type UpdateBudgetInput struct {
	Name        *string
	Description *string
	TotalAmount *decimal.Decimal
}

func (s *BudgetService) UpdateBudget(ctx context.Context, workspaceID, budgetID, caller uuid.UUID, in UpdateBudgetInput) (*budget.Budget, error) {
	b, err := s.ownedBudget(ctx, workspaceID, budgetID, caller, "update")
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != b.Name() {
		taken, err := s.budgets.ExistsByName(ctx, workspaceID, strings.TrimSpace(*in.Name))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBudgetNameTaken
		}

		if err := b.UpdateName(*in.Name); err != nil {
			return nil, err
		}
	}

	if in.Description != nil {
		if err := b.UpdateDescription(*in.Description); err != nil {
			return nil, err
		}
	}

	if in.TotalAmount != nil {
		allocations, err := s.allocations.FindByBudget(ctx, b.ID())
		if err != nil {
			return nil, err
		}

		if err := b.UpdateTotalAmount(*in.TotalAmount); err != nil {
			return nil, err
		}

		allocated := sumAllocated(allocations)
		if in.TotalAmount.LessThan(allocated) {
			return nil, &budget.AllocationExceededError{Total: *in.TotalAmount, Allocated: allocated}
		}
	}

	return saved(b, s.budgets.Save(ctx, b))
}

func (s *BudgetService) ActivateBudget(ctx context.Context, workspaceID, budgetID, caller uuid.UUID) (*budget.Budget, error) {
	return s.transition(ctx, workspaceID, budgetID, caller, "activate", (*budget.Budget).Activate)
}

func (s *BudgetService) ArchiveBudget(ctx context.Context, workspaceID, budgetID, caller uuid.UUID) (*budget.Budget, error) {
	return s.transition(ctx, workspaceID, budgetID, caller, "archive", (*budget.Budget).Archive)
}

func (s *BudgetService) transition(ctx context.Context, workspaceID, budgetID, caller uuid.UUID, operation string, apply func(*budget.Budget) error) (*budget.Budget, error) {
	b, err := s.ownedBudget(ctx, workspaceID, budgetID, caller, operation)
	if err != nil {
		return nil, err
	}

	if err := apply(b); err != nil {
		return nil, err
	}

	return saved(b, s.budgets.Save(ctx, b))
}

// DeleteBudget deletes a budget with all of its allocations and alerts.
func (s *BudgetService) DeleteBudget(ctx context.Context, workspaceID, budgetID, caller uuid.UUID) error {
	if _, err := s.ownedBudget(ctx, workspaceID, budgetID, caller, "delete"); err != nil {
		return err
	}

	return notFound(s.budgets.Delete(ctx, budgetID, workspaceID), "budget", budgetID, workspaceID)
}

func (s *BudgetService) GetBudget(ctx context.Context, workspaceID, budgetID uuid.UUID) (*budget.Budget, error) {
	b, err := s.budgets.FindByID(ctx, budgetID, workspaceID)
	if err != nil {
		return nil, notFound(err, "budget", budgetID, workspaceID)
	}
	return b, nil
}

func (s *BudgetService) ListBudgets(ctx context.Context, filter BudgetFilter) ([]*budget.Budget, error) {
	return s.budgets.FindByFilters(ctx, filter)
}

// ActiveBudgets returns the ACTIVE budgets of a workspace whose period
// contains the current time.
func (s *BudgetService) ActiveBudgets(ctx context.Context, workspaceID uuid.UUID) ([]*budget.Budget, error) {
	now := s.clock()
	return s.budgets.FindByFilters(ctx, BudgetFilter{WorkspaceID: workspaceID, ActiveAt: &now})
}

type AddAllocationInput struct {
	WorkspaceID uuid.UUID
	BudgetID    uuid.UUID
	Caller      uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Description string
}

// AddAllocation earmarks part of a budget. The sum of all allocations of a
// budget cannot exceed its total.
func (s *BudgetService) AddAllocation(ctx context.Context, in AddAllocationInput) (*budget.Allocation, error) {
	b, err := s.ownedBudget(ctx, in.WorkspaceID, in.BudgetID, in.Caller, "add allocations to")
	if err != nil {
		return nil, err
	}

	existing, err := s.allocations.FindByBudget(ctx, b.ID())
	if err != nil {
		return nil, err
	}

	if err := b.ValidateAllocationAmount(in.Amount, sumAllocated(existing)); err != nil {
		return nil, err
	}

	a, err := budget.NewAllocation(b.ID(), in.CategoryID, in.Amount, in.Description)
	if err != nil {
		return nil, err
	}

	return saved(a, s.allocations.Save(ctx, a))
}

type UpdateAllocationInput struct {
	Amount      *decimal.Decimal
	Description *string
}

func (s *BudgetService) UpdateAllocation(ctx context.Context, workspaceID, allocationID, caller uuid.UUID, in UpdateAllocationInput) (*budget.Allocation, error) {
	a, b, err := s.allocationWithBudget(ctx, workspaceID, allocationID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(caller) {
		return nil, &OwnershipError{Operation: "update allocations in", CreatedBy: b.CreatedBy(), Caller: caller}
	}

	if in.Amount != nil {
		all, err := s.allocations.FindByBudget(ctx, b.ID())
		if err != nil {
			return nil, err
		}

		others := sumAllocated(all).Sub(a.AllocatedAmount())
		if err := b.ValidateAllocationAmount(*in.Amount, others); err != nil {
			return nil, err
		}

		if err := a.UpdateAllocatedAmount(*in.Amount); err != nil {
			return nil, err
		}
	}

	if in.Description != nil {
		if err := a.UpdateDescription(*in.Description); err != nil {
			return nil, err
		}
	}

	return saved(a, s.allocations.Save(ctx, a))
}

// SpendResult is the result of recording spend on an allocation.
type SpendResult struct {
	Allocation *budget.Allocation
	Budget     *budget.Budget
	Alerts     []budget.AlertOutcome

	// BudgetError is set when the spend was stored but marking the budget
	// as exceeded failed. Budget then holds the state before the attempt.
	BudgetError error
}

// RecordAllocationSpend sets the absolute spent amount of an allocation and
// evaluates alerts for it. The returned error only concerns the allocation
// and its alerts.
//
// When the spend of all allocations of the budget together passes the
// budget total, an ACTIVE budget is marked as exceeded in a second save.
// That save failing does not undo the spend, it is reported in
// SpendResult.BudgetError. Since spend is absolute, recording it again
// retries marking the budget.
func (s *BudgetService) RecordAllocationSpend(ctx context.Context, workspaceID, allocationID uuid.UUID, spent decimal.Decimal) (SpendResult, error) {
	a, b, err := s.allocationWithBudget(ctx, workspaceID, allocationID)
	if err != nil {
		return SpendResult{}, err
	}

	if err := a.UpdateSpentAmount(spent); err != nil {
		return SpendResult{}, err
	}

	var (
		pending  []*budget.Alert
		outcomes []budget.AlertOutcome
	)

	if _, ok := a.Level(); ok {
		alert, err := budget.AlertForAllocation(a)
		if err != nil {
			log.Error().Str("allocation", a.ID().String()).Err(err).Msg("could not create alert")
			outcomes = append(outcomes, budget.Failed(nil, err))
		} else {
			pending = append(pending, alert)
		}
	}

	saved, saveErr := s.allocations.SaveWithAlerts(ctx, a, pending)
	outcomes = append(outcomes, saved...)
	if !committed(saveErr) {
		return SpendResult{Allocation: a, Budget: b, Alerts: outcomes}, saveErr
	}

	for _, o := range saved {
		if o.Kind == budget.AlertSkippedDuplicate {
			log.Debug().Str("allocation", a.ID().String()).Str("level", string(o.Alert.Level())).Msg("unread alert exists, skipped")
		}
	}

	result := SpendResult{Allocation: a, Budget: b, Alerts: outcomes}

	if b.Status() != budget.StatusActive {
		return result, saveErr
	}

	result.Budget, result.BudgetError = s.markExceeded(ctx, b)
	if result.BudgetError != nil {
		log.Warn().Str("budget", b.ID().String()).Err(result.BudgetError).Msg("spend recorded, marking budget as exceeded failed")
	}

	return result, saveErr
}

// markExceeded marks b as exceeded when the spend of all its allocations
// passes its total. On failure, b is reloaded so that it reflects what is
// stored.
func (s *BudgetService) markExceeded(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	all, err := s.allocations.FindByBudget(ctx, b.ID())
	if err != nil {
		return b, err
	}

	totalSpent := decimal.Zero
	for _, other := range all {
		totalSpent = totalSpent.Add(other.SpentAmount())
	}

	if !totalSpent.GreaterThan(b.TotalAmount()) {
		return b, nil
	}

	if err := b.MarkAsExceeded(totalSpent); err != nil {
		return b, err
	}

	err = s.budgets.Save(ctx, b)
	if committed(err) {
		return b, err
	}

	stored, findErr := s.budgets.FindByID(ctx, b.ID(), b.WorkspaceID())
	if findErr != nil {
		return b, errors.Join(err, findErr)
	}
	return stored, err
}

func (s *BudgetService) DeleteAllocation(ctx context.Context, workspaceID, allocationID, caller uuid.UUID) error {
	_, b, err := s.allocationWithBudget(ctx, workspaceID, allocationID)
	if err != nil {
		return err
	}

	if !b.IsOwnedBy(caller) {
		return &OwnershipError{Operation: "delete allocations in", CreatedBy: b.CreatedBy(), Caller: caller}
	}

	return notFound(s.allocations.Delete(ctx, allocationID), "allocation", allocationID, uuid.Nil)
}

func (s *BudgetService) GetAllocation(ctx context.Context, workspaceID, allocationID uuid.UUID) (*budget.Allocation, error) {
	a, _, err := s.allocationWithBudget(ctx, workspaceID, allocationID)
	return a, err
}

func (s *BudgetService) ListAllocations(ctx context.Context, workspaceID, budgetID uuid.UUID) ([]*budget.Allocation, error) {
	exists, err := s.budgets.Exists(ctx, budgetID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, &NotFoundError{Resource: "budget", ID: budgetID, WorkspaceID: workspaceID}
	}

	return s.allocations.FindByBudget(ctx, budgetID)
}

func (s *BudgetService) UnreadAlerts(ctx context.Context, workspaceID uuid.UUID) ([]*budget.Alert, error) {
	unread := false
	return s.alerts.FindByFilters(ctx, AlertFilter{WorkspaceID: workspaceID, IsRead: &unread})
}

func (s *BudgetService) ListAlerts(ctx context.Context, filter AlertFilter) ([]*budget.Alert, error) {
	return s.alerts.FindByFilters(ctx, filter)
}

func (s *BudgetService) MarkAlertRead(ctx context.Context, workspaceID, alertID uuid.UUID) (*budget.Alert, error) {
	return s.updateAlert(ctx, workspaceID, alertID, func(a *budget.Alert) error {
		a.MarkAsRead()
		return nil
	})
}

// MarkAlertNotified records that the alert has been delivered.
func (s *BudgetService) MarkAlertNotified(ctx context.Context, workspaceID, alertID uuid.UUID) (*budget.Alert, error) {
	return s.updateAlert(ctx, workspaceID, alertID, func(a *budget.Alert) error {
		return a.MarkAsNotified(s.clock())
	})
}

func (s *BudgetService) updateAlert(ctx context.Context, workspaceID, alertID uuid.UUID, apply func(*budget.Alert) error) (*budget.Alert, error) {
	a, err := s.alerts.FindByID(ctx, alertID, workspaceID)
	if err != nil {
		return nil, notFound(err, "alert", alertID, workspaceID)
	}

	if err := apply(a); err != nil {
		return nil, err
	}

	return saved(a, s.alerts.Save(ctx, a))
}

// ProcessExpiredBudgets archives all ACTIVE budgets whose period has ended.
// uuid.Nil processes all workspaces.
//
// It returns the number of archived budgets. Processing continues after a
// budget fails to save, the errors are joined.
func (s *BudgetService) ProcessExpiredBudgets(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	now := s.clock()
	active := budget.StatusActive

	expired, err := s.budgets.FindByFilters(ctx, BudgetFilter{
		WorkspaceID: workspaceID,
		Status:      &active,
		EndedBefore: &now,
	})
	if err != nil {
		return 0, err
	}

	var (
		archived int
		errs     []error
	)

	for _, b := range expired {
		if err := b.Archive(); err != nil {
			errs = append(errs, err)
			continue
		}

		err := s.budgets.Save(ctx, b)
		if committed(err) {
			archived++
		}

		if err != nil {
			log.Error().Str("budget", b.ID().String()).Err(err).Msg("archiving expired budget")
			errs = append(errs, err)
		}
	}

	return archived, errors.Join(errs...)
}

// ownedBudget loads a budget and verifies that caller created it.
func (s *BudgetService) ownedBudget(ctx context.Context, workspaceID, budgetID, caller uuid.UUID, operation string) (*budget.Budget, error) {
	b, err := s.GetBudget(ctx, workspaceID, budgetID)
	if err != nil {
		return nil, err
	}

	if !b.IsOwnedBy(caller) {
		return nil, &OwnershipError{Operation: operation, CreatedBy: b.CreatedBy(), Caller: caller}
	}

	return b, nil
}

// allocationWithBudget loads an allocation and its budget, verifying that
// the budget belongs to the workspace.
func (s *BudgetService) allocationWithBudget(ctx context.Context, workspaceID, allocationID uuid.UUID) (*budget.Allocation, *budget.Budget, error) {
	a, err := s.allocations.FindByID(ctx, allocationID)
	if err != nil {
		return nil, nil, notFound(err, "allocation", allocationID, uuid.Nil)
	}

	b, err := s.budgets.FindByID(ctx, a.BudgetID(), workspaceID)
	if err != nil {
		// An allocation of another workspace does not exist for the caller
		return nil, nil, notFound(err, "allocation", allocationID, workspaceID)
	}

	return a, b, nil
}

func sumAllocated(allocations []*budget.Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.AllocatedAmount())
	}
	return sum
}

// committed reports whether a save returning err has persisted its state.
// That is the case when it succeeded or only failed to publish events.
func committed(err error) bool {
	var publishErr *events.PublishError
	return err == nil || errors.As(err, &publishErr)
}

// saved returns v with the error of its save if the state has been
// persisted, and nil with the error otherwise.
func saved[T any](v *T, err error) (*T, error) {
	if !committed(err) {
		return nil, err
	}
	return v, err
}
