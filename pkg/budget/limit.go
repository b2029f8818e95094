package budget

import (
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Scope describes who and what a spending limit applies to. It is derived
// from which of user and category are set.
type Scope string

const (
	ScopeWorkspace    Scope = "WORKSPACE"
	ScopeUser         Scope = "USER"
	ScopeCategory     Scope = "CATEGORY"
	ScopeUserCategory Scope = "USER_CATEGORY"
)

// SpendingLimit caps expenses in a workspace, optionally narrowed to a user
// and/or a category.
type SpendingLimit struct {
	id          uuid.UUID
	workspaceID uuid.UUID
	userID      *uuid.UUID
	categoryID  *uuid.UUID
	limitAmount decimal.Decimal
	currency    string
	periodType  PeriodType
	isActive    bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time

	events events.Recorder[LimitEvent]
}

type NewSpendingLimitParams struct {
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	LimitAmount decimal.Decimal
	Currency    string
	PeriodType  PeriodType
}

// NewSpendingLimit creates an active spending limit.
func NewSpendingLimit(p NewSpendingLimitParams) (*SpendingLimit, error) {
	if p.WorkspaceID == uuid.Nil {
		return nil, ErrMissingID
	}

	if err := validatePositiveAmount(p.LimitAmount); err != nil {
		return nil, err
	}

	currency, err := NormalizeCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	if !p.PeriodType.Valid() {
		return nil, ErrInvalidPeriodType
	}

	ts := now()
	l := &SpendingLimit{
		id:          uuid.New(),
		workspaceID: p.WorkspaceID,
		userID:      nilIfZero(p.UserID),
		categoryID:  nilIfZero(p.CategoryID),
		limitAmount: p.LimitAmount,
		currency:    currency,
		periodType:  p.PeriodType,
		isActive:    true,
		createdAt:   ts,
		updatedAt:   ts,
	}

	l.events.Record(SpendingLimitCreated{
		Meta:        l.meta(ts),
		WorkspaceID: l.workspaceID,
		UserID:      l.userID,
		CategoryID:  l.categoryID,
		LimitAmount: l.limitAmount,
		Currency:    l.currency,
		PeriodType:  l.periodType,
	})

	return l, nil
}

type SpendingLimitSnapshot struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	UserID      *uuid.UUID
	CategoryID  *uuid.UUID
	LimitAmount decimal.Decimal
	Currency    string
	PeriodType  PeriodType
	IsActive    bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func RestoreSpendingLimit(s SpendingLimitSnapshot) (*SpendingLimit, error) {
	if !s.PeriodType.Valid() {
		return nil, ErrInvalidPeriodType
	}

	return &SpendingLimit{
		id:          s.ID,
		workspaceID: s.WorkspaceID,
		userID:      s.UserID,
		categoryID:  s.CategoryID,
		limitAmount: s.LimitAmount,
		currency:    s.Currency,
		periodType:  s.PeriodType,
		isActive:    s.IsActive,
		version:     s.Version,
		createdAt:   s.CreatedAt.UTC(),
		updatedAt:   s.UpdatedAt.UTC(),
	}, nil
}

func (l *SpendingLimit) Snapshot() SpendingLimitSnapshot {
	return SpendingLimitSnapshot{
		ID:          l.id,
		WorkspaceID: l.workspaceID,
		UserID:      l.userID,
		CategoryID:  l.categoryID,
		LimitAmount: l.limitAmount,
		Currency:    l.currency,
		PeriodType:  l.periodType,
		IsActive:    l.isActive,
		Version:     l.version,
		CreatedAt:   l.createdAt,
		UpdatedAt:   l.updatedAt,
	}
}

func (l *SpendingLimit) ID() uuid.UUID                { return l.id }
func (l *SpendingLimit) WorkspaceID() uuid.UUID       { return l.workspaceID }
func (l *SpendingLimit) UserID() *uuid.UUID           { return l.userID }
func (l *SpendingLimit) CategoryID() *uuid.UUID       { return l.categoryID }
func (l *SpendingLimit) LimitAmount() decimal.Decimal { return l.limitAmount }
func (l *SpendingLimit) Currency() string             { return l.currency }
func (l *SpendingLimit) PeriodType() PeriodType       { return l.periodType }
func (l *SpendingLimit) IsActive() bool               { return l.isActive }
func (l *SpendingLimit) Version() int64               { return l.version }
func (l *SpendingLimit) CreatedAt() time.Time         { return l.createdAt }
func (l *SpendingLimit) UpdatedAt() time.Time         { return l.updatedAt }

func (l *SpendingLimit) Scope() Scope {
	switch {
	case l.userID == nil && l.categoryID == nil:
		return ScopeWorkspace
	case l.categoryID == nil:
		return ScopeUser
	case l.userID == nil:
		return ScopeCategory
	}
	return ScopeUserCategory
}

// AppliesTo reports whether the limit matches an expense of the given user
// and category. Either may be nil. A limit matches if it is
//
//   - workspace-wide,
//   - for the given user only,
//   - for the given user and the given category, or
//   - for the given category only.
func (l *SpendingLimit) AppliesTo(userID, categoryID *uuid.UUID) bool {
	userMatches := l.userID != nil && userID != nil && *l.userID == *userID
	categoryMatches := l.categoryID != nil && categoryID != nil && *l.categoryID == *categoryID

	switch l.Scope() {
	case ScopeWorkspace:
		return true
	case ScopeUser:
		return userMatches
	case ScopeCategory:
		return categoryMatches
	}
	return userMatches && categoryMatches
}

// SameScope reports whether both limits cover exactly the same expenses.
func (l *SpendingLimit) SameScope(o *SpendingLimit) bool {
	return l.workspaceID == o.workspaceID &&
		equalIDPtr(l.userID, o.userID) &&
		equalIDPtr(l.categoryID, o.categoryID) &&
		l.currency == o.currency &&
		l.periodType == o.periodType
}

// IsExceededBy reports whether amount is above the limit.
func (l *SpendingLimit) IsExceededBy(amount decimal.Decimal) bool {
	return amount.GreaterThan(l.limitAmount)
}

func (l *SpendingLimit) UpdateLimitAmount(amount decimal.Decimal) error {
	if err := validatePositiveAmount(amount); err != nil {
		return err
	}

	previous := l.limitAmount
	l.limitAmount = amount
	l.touch()

	if !previous.Equal(amount) {
		l.events.Record(SpendingLimitUpdated{
			Meta:           l.meta(l.updatedAt),
			WorkspaceID:    l.workspaceID,
			PreviousAmount: previous,
			LimitAmount:    amount,
		})
	}
	return nil
}

func (l *SpendingLimit) Activate() error {
	if l.isActive {
		return ErrLimitAlreadyActive
	}

	l.isActive = true
	l.touch()
	l.events.Record(SpendingLimitActivated{Meta: l.meta(l.updatedAt), WorkspaceID: l.workspaceID})
	return nil
}

func (l *SpendingLimit) Deactivate() error {
	if !l.isActive {
		return ErrLimitAlreadyInactive
	}

	l.isActive = false
	l.touch()
	l.events.Record(SpendingLimitDeactivated{Meta: l.meta(l.updatedAt), WorkspaceID: l.workspaceID})
	return nil
}

func (l *SpendingLimit) Events() []LimitEvent {
	return l.events.Pending()
}

func (l *SpendingLimit) PendingEvents() []events.Event {
	return events.Upcast(l.events.Pending())
}

func (l *SpendingLimit) ClearEvents() {
	l.events.Clear()
}

// Persisted sets the version the limit was stored with.
func (l *SpendingLimit) Persisted(version int64) {
	l.version = version
}

func (l *SpendingLimit) touch() {
	l.updatedAt = now()
}

func (l *SpendingLimit) meta(at time.Time) events.Meta {
	return events.NewMeta(AggregateSpendingLimit, l.id, at)
}

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}

func equalIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
