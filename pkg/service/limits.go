package service

import (
	"context"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpendingLimitService manages spending limits and checks expenses against
// them.
type SpendingLimitService struct {
	limits SpendingLimitRepository
	ledger SpendLedger
	clock  Clock
}

type LimitOption func(*SpendingLimitService)

// WithSpendLedger makes ValidateExpense check limits with a calendar period
// against the spend of the current period plus the expense, instead of the
// expense alone.
func WithSpendLedger(l SpendLedger) LimitOption {
	return func(s *SpendingLimitService) {
		s.ledger = l
	}
}

func WithClock(c Clock) LimitOption {
	return func(s *SpendingLimitService) {
		s.clock = c
	}
}

func NewSpendingLimitService(limits SpendingLimitRepository, opts ...LimitOption) *SpendingLimitService {
	s := &SpendingLimitService{limits: limits, clock: UTC}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateSpendingLimitInput struct {
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	LimitAmount decimal.Decimal
	Currency    string
	PeriodType  budget.PeriodType
}

// CreateSpendingLimit creates an active spending limit. A workspace can
// hold at most budget.MaxLimitsPerWorkspace limits, and only one active
// limit per scope, currency and period type.
func (s *SpendingLimitService) CreateSpendingLimit(ctx context.Context, in CreateSpendingLimitInput) (*budget.SpendingLimit, error) {
	l, err := budget.NewSpendingLimit(budget.NewSpendingLimitParams(in))
	if err != nil {
		return nil, err
	}

	count, err := s.limits.Count(ctx, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if count >= budget.MaxLimitsPerWorkspace {
		return nil, ErrTooManyLimits
	}

	active := true
	existing, err := s.limits.FindByFilters(ctx, SpendingLimitFilter{WorkspaceID: in.WorkspaceID, IsActive: &active})
	if err != nil {
		return nil, err
	}

	for _, e := range existing {
		if e.SameScope(l) {
			return nil, ErrLimitScopeConflict
		}
	}

	return saved(l, s.limits.Save(ctx, l))
}

func (s *SpendingLimitService) UpdateSpendingLimit(ctx context.Context, workspaceID, limitID uuid.UUID, amount *decimal.Decimal) (*budget.SpendingLimit, error) {
	return s.update(ctx, workspaceID, limitID, func(l *budget.SpendingLimit) error {
		if amount == nil {
			return nil
		}
		return l.UpdateLimitAmount(*amount)
	})
}

// ActivateLimit activates an inactive limit. It fails with
// ErrLimitScopeConflict if another active limit has the same scope.
func (s *SpendingLimitService) ActivateLimit(ctx context.Context, workspaceID, limitID uuid.UUID) (*budget.SpendingLimit, error) {
	return s.update(ctx, workspaceID, limitID, func(l *budget.SpendingLimit) error {
		if err := l.Activate(); err != nil {
			return err
		}

		active := true
		existing, err := s.limits.FindByFilters(ctx, SpendingLimitFilter{WorkspaceID: workspaceID, IsActive: &active})
		if err != nil {
			return err
		}

		for _, e := range existing {
			if e.ID() != l.ID() && e.SameScope(l) {
				return ErrLimitScopeConflict
			}
		}
		return nil
	})
}

func (s *SpendingLimitService) DeactivateLimit(ctx context.Context, workspaceID, limitID uuid.UUID) (*budget.SpendingLimit, error) {
	return s.update(ctx, workspaceID, limitID, (*budget.SpendingLimit).Deactivate)
}

func (s *SpendingLimitService) update(ctx context.Context, workspaceID, limitID uuid.UUID, apply func(*budget.SpendingLimit) error) (*budget.SpendingLimit, error) {
	l, err := s.GetSpendingLimit(ctx, workspaceID, limitID)
	if err != nil {
		return nil, err
	}

	if err := apply(l); err != nil {
		return nil, err
	}

	return saved(l, s.limits.Save(ctx, l))
}

func (s *SpendingLimitService) DeleteSpendingLimit(ctx context.Context, workspaceID, limitID uuid.UUID) error {
	return notFound(s.limits.Delete(ctx, limitID, workspaceID), "spending limit", limitID, workspaceID)
}

func (s *SpendingLimitService) GetSpendingLimit(ctx context.Context, workspaceID, limitID uuid.UUID) (*budget.SpendingLimit, error) {
	l, err := s.limits.FindByID(ctx, limitID, workspaceID)
	if err != nil {
		return nil, notFound(err, "spending limit", limitID, workspaceID)
	}
	return l, nil
}

func (s *SpendingLimitService) ListSpendingLimits(ctx context.Context, workspaceID uuid.UUID) ([]*budget.SpendingLimit, error) {
	return s.limits.FindByFilters(ctx, SpendingLimitFilter{WorkspaceID: workspaceID})
}

func (s *SpendingLimitService) FilterSpendingLimits(ctx context.Context, filter SpendingLimitFilter) ([]*budget.SpendingLimit, error) {
	return s.limits.FindByFilters(ctx, filter)
}

// ApplicableLimits returns every active limit that applies to an expense of
// the user in the category. There is no precedence between limits, callers
// evaluate each of them.
func (s *SpendingLimitService) ApplicableLimits(ctx context.Context, workspaceID uuid.UUID, userID, categoryID *uuid.UUID) ([]*budget.SpendingLimit, error) {
	return s.limits.FindApplicable(ctx, workspaceID, userID, categoryID)
}

// ExpenseCheck describes a candidate expense.
type ExpenseCheck struct {
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	Amount      decimal.Decimal
	Currency    string
}

// Violation is a limit an expense would exceed.
type Violation struct {
	Limit *budget.SpendingLimit

	// SpentToDate is the spend of the current period before the expense.
	// It is zero for single-expense checks.
	SpentToDate decimal.Decimal

	// Projected is SpentToDate plus the expense amount
	Projected decimal.Decimal

	// Cumulative is true when period-to-date spend was taken into account
	Cumulative bool
}

type ExpenseValidation struct {
	Valid      bool
	Violations []Violation
}

// ValidateExpense checks a candidate expense against all applicable limits.
// Only limits in the currency of the expense are evaluated.
//
// Without a SpendLedger, or for limits with a CUSTOM period, a limit is
// violated when the expense alone is above it. With a ledger, limits with a
// calendar period are violated when the spend of the current calendar
// month, quarter or year plus the expense is above them.
func (s *SpendingLimitService) ValidateExpense(ctx context.Context, check ExpenseCheck) (ExpenseValidation, error) {
	currency, err := budget.NormalizeCurrency(check.Currency)
	if err != nil {
		return ExpenseValidation{}, err
	}

	if !check.Amount.IsPositive() {
		return ExpenseValidation{}, budget.ErrAmountNotPositive
	}

	limits, err := s.ApplicableLimits(ctx, check.WorkspaceID, check.UserID, check.CategoryID)
	if err != nil {
		return ExpenseValidation{}, err
	}

	result := ExpenseValidation{Valid: true}
	for _, l := range limits {
		if l.Currency() != currency {
			continue
		}

		v, violated, err := s.evaluate(ctx, l, check.Amount)
		if err != nil {
			return ExpenseValidation{}, err
		}

		if violated {
			result.Valid = false
			result.Violations = append(result.Violations, v)
		}
	}

	return result, nil
}

func (s *SpendingLimitService) evaluate(ctx context.Context, l *budget.SpendingLimit, amount decimal.Decimal) (Violation, bool, error) {
	v := Violation{Limit: l, SpentToDate: decimal.Zero, Projected: amount}

	from, to, ok := l.PeriodType().Window(s.clock())
	if s.ledger != nil && ok {
		spent, err := s.ledger.SpentBetween(ctx, SpendQuery{
			WorkspaceID: l.WorkspaceID(),
			UserID:      l.UserID(),
			CategoryID:  l.CategoryID(),
			Currency:    l.Currency(),
			From:        from,
			To:          to,
		})
		if err != nil {
			return Violation{}, false, err
		}

		v.SpentToDate = spent
		v.Projected = spent.Add(amount)
		v.Cumulative = true
	}

	return v, l.IsExceededBy(v.Projected), nil
}
