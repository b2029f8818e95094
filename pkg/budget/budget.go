package budget

import (
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a capped pool of money of a workspace over a period.
type Budget struct {
	id             uuid.UUID
	workspaceID    uuid.UUID
	name           string
	description    *string
	totalAmount    decimal.Decimal
	currency       string
	period         Period
	status         Status
	createdBy      uuid.UUID
	isRecurring    bool
	rolloverUnused bool
	version        int64
	createdAt      time.Time
	updatedAt      time.Time

	events events.Recorder[BudgetEvent]
}

// NewBudgetParams are the inputs of NewBudget.
type NewBudgetParams struct {
	WorkspaceID    uuid.UUID
	CreatedBy      uuid.UUID
	Name           string
	Description    string
	TotalAmount    decimal.Decimal
	Currency       string
	PeriodType     PeriodType
	StartDate      time.Time
	EndDate        *time.Time // Only used for CUSTOM periods
	IsRecurring    bool
	RolloverUnused bool
}

// NewBudget creates a budget in status DRAFT.
func NewBudget(p NewBudgetParams) (*Budget, error) {
	if p.WorkspaceID == uuid.Nil || p.CreatedBy == uuid.Nil {
		return nil, ErrMissingID
	}

	name, err := validateName(p.Name)
	if err != nil {
		return nil, err
	}

	description, err := normalizeDescription(p.Description, DescriptionMaxLength, ErrDescriptionTooLong)
	if err != nil {
		return nil, err
	}

	if err := validatePositiveAmount(p.TotalAmount); err != nil {
		return nil, err
	}

	currency, err := NormalizeCurrency(p.Currency)
	if err != nil {
		return nil, err
	}

	period, err := NewPeriod(p.StartDate, p.PeriodType, p.EndDate)
	if err != nil {
		return nil, err
	}

	ts := now()
	b := &Budget{
		id:             uuid.New(),
		workspaceID:    p.WorkspaceID,
		name:           name,
		description:    description,
		totalAmount:    p.TotalAmount,
		currency:       currency,
		period:         period,
		status:         StatusDraft,
		createdBy:      p.CreatedBy,
		isRecurring:    p.IsRecurring,
		rolloverUnused: p.RolloverUnused,
		createdAt:      ts,
		updatedAt:      ts,
	}

	b.events.Record(BudgetCreated{
		Meta:        b.meta(ts),
		WorkspaceID: b.workspaceID,
		BudgetName:  b.name,
		TotalAmount: b.totalAmount,
		Currency:    b.currency,
		PeriodType:  period.Type(),
		CreatedBy:   b.createdBy,
	})

	return b, nil
}

// BudgetSnapshot contains every field of a Budget. It is used to persist
// and serialize budgets and to restore them.
type BudgetSnapshot struct {
	ID             uuid.UUID
	WorkspaceID    uuid.UUID
	Name           string
	Description    *string
	TotalAmount    decimal.Decimal
	Currency       string
	PeriodType     PeriodType
	StartDate      time.Time
	EndDate        time.Time
	Status         Status
	CreatedBy      uuid.UUID
	IsRecurring    bool
	RolloverUnused bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RestoreBudget rebuilds a budget from a snapshot. No events are recorded.
func RestoreBudget(s BudgetSnapshot) (*Budget, error) {
	period, err := PeriodFromDates(s.StartDate, s.EndDate, s.PeriodType)
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(string(s.Status))
	if err != nil {
		return nil, err
	}

	return &Budget{
		id:             s.ID,
		workspaceID:    s.WorkspaceID,
		name:           s.Name,
		description:    s.Description,
		totalAmount:    s.TotalAmount,
		currency:       s.Currency,
		period:         period,
		status:         status,
		createdBy:      s.CreatedBy,
		isRecurring:    s.IsRecurring,
		rolloverUnused: s.RolloverUnused,
		version:        s.Version,
		createdAt:      s.CreatedAt.UTC(),
		updatedAt:      s.UpdatedAt.UTC(),
	}, nil
}

func (b *Budget) Snapshot() BudgetSnapshot {
	return BudgetSnapshot{
		ID:             b.id,
		WorkspaceID:    b.workspaceID,
		Name:           b.name,
		Description:    b.description,
		TotalAmount:    b.totalAmount,
		Currency:       b.currency,
		PeriodType:     b.period.Type(),
		StartDate:      b.period.Start(),
		EndDate:        b.period.End(),
		Status:         b.status,
		CreatedBy:      b.createdBy,
		IsRecurring:    b.isRecurring,
		RolloverUnused: b.rolloverUnused,
		Version:        b.version,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.updatedAt,
	}
}

func (b *Budget) ID() uuid.UUID                { return b.id }
func (b *Budget) WorkspaceID() uuid.UUID       { return b.workspaceID }
func (b *Budget) Name() string                 { return b.name }
func (b *Budget) Description() *string         { return b.description }
func (b *Budget) TotalAmount() decimal.Decimal { return b.totalAmount }
func (b *Budget) Currency() string             { return b.currency }
func (b *Budget) Period() Period               { return b.period }
func (b *Budget) Status() Status               { return b.status }
func (b *Budget) CreatedBy() uuid.UUID         { return b.createdBy }
func (b *Budget) IsRecurring() bool            { return b.isRecurring }
func (b *Budget) ShouldRolloverUnused() bool   { return b.rolloverUnused }
func (b *Budget) Version() int64               { return b.version }
func (b *Budget) CreatedAt() time.Time         { return b.createdAt }
func (b *Budget) UpdatedAt() time.Time         { return b.updatedAt }

func (b *Budget) IsDraft() bool    { return b.status == StatusDraft }
func (b *Budget) IsArchived() bool { return b.status == StatusArchived }
func (b *Budget) IsExceeded() bool { return b.status == StatusExceeded }

// IsActive reports whether the budget is ACTIVE and t is within its period.
func (b *Budget) IsActive(t time.Time) bool {
	return b.status == StatusActive && b.period.IsActive(t)
}

// HasExpired reports whether the period of the budget has ended at t.
func (b *Budget) HasExpired(t time.Time) bool {
	return b.period.HasEnded(t)
}

// IsOwnedBy reports whether the user created the budget.
func (b *Budget) IsOwnedBy(userID uuid.UUID) bool {
	return b.createdBy == userID
}

func (b *Budget) UpdateName(name string) error {
	name, err := validateName(name)
	if err != nil {
		return err
	}

	old := b.name
	b.name = name
	b.touch()

	if old != name {
		b.recordUpdate("name", &old, &name)
	}
	return nil
}

// UpdateDescription sets the description. An empty description clears it.
func (b *Budget) UpdateDescription(description string) error {
	d, err := normalizeDescription(description, DescriptionMaxLength, ErrDescriptionTooLong)
	if err != nil {
		return err
	}

	old := b.description
	b.description = d
	b.touch()

	if !equalStringPtr(old, d) {
		b.recordUpdate("description", old, d)
	}
	return nil
}

func (b *Budget) UpdateTotalAmount(amount decimal.Decimal) error {
	if err := validatePositiveAmount(amount); err != nil {
		return err
	}

	old := b.totalAmount
	b.totalAmount = amount
	b.touch()

	if !old.Equal(amount) {
		o, n := old.StringFixed(AmountScale), amount.StringFixed(AmountScale)
		b.recordUpdate("totalAmount", &o, &n)
	}
	return nil
}

// ValidateAllocationAmount verifies that allocating amount on top of the
// already allocated sum stays within the budget total.
func (b *Budget) ValidateAllocationAmount(amount, allocated decimal.Decimal) error {
	if allocated.Add(amount).GreaterThan(b.totalAmount) {
		return &AllocationExceededError{
			Total:     b.totalAmount,
			Allocated: allocated,
			Requested: amount,
		}
	}
	return nil
}

// Activate moves the budget from DRAFT to ACTIVE.
func (b *Budget) Activate() error {
	if err := b.transition(StatusActive); err != nil {
		return err
	}

	b.events.Record(BudgetActivated{
		Meta:        b.meta(b.updatedAt),
		WorkspaceID: b.workspaceID,
	})
	return nil
}

// MarkAsExceeded moves an ACTIVE budget to EXCEEDED. currentSpending is
// the spend that exceeded the total.
func (b *Budget) MarkAsExceeded(currentSpending decimal.Decimal) error {
	if err := b.transition(StatusExceeded); err != nil {
		return err
	}

	b.events.Record(BudgetThresholdExceeded{
		Meta:            b.meta(b.updatedAt),
		WorkspaceID:     b.workspaceID,
		CurrentSpending: currentSpending,
		BudgetLimit:     b.totalAmount,
		Currency:        b.currency,
	})
	return nil
}

// Archive moves the budget to the terminal ARCHIVED status.
func (b *Budget) Archive() error {
	previous := b.status
	if err := b.transition(StatusArchived); err != nil {
		return err
	}

	b.events.Record(BudgetArchived{
		Meta:           b.meta(b.updatedAt),
		WorkspaceID:    b.workspaceID,
		PreviousStatus: previous,
	})
	return nil
}

func (b *Budget) transition(to Status) error {
	if !b.status.CanTransition(to) {
		return &StatusTransitionError{BudgetID: b.id, From: b.status, To: to}
	}

	b.status = to
	b.touch()
	return nil
}

// Events returns the events recorded since the budget was last saved.
func (b *Budget) Events() []BudgetEvent {
	return b.events.Pending()
}

func (b *Budget) PendingEvents() []events.Event {
	return events.Upcast(b.events.Pending())
}

func (b *Budget) ClearEvents() {
	b.events.Clear()
}

// Persisted sets the version the budget was stored with. It is called by
// persistence adapters after a successful write.
func (b *Budget) Persisted(version int64) {
	b.version = version
}

func (b *Budget) touch() {
	b.updatedAt = now()
}

func (b *Budget) meta(at time.Time) events.Meta {
	return events.NewMeta(AggregateBudget, b.id, at)
}

func (b *Budget) recordUpdate(field string, old, updated *string) {
	b.events.Record(BudgetUpdated{
		Meta:        b.meta(b.updatedAt),
		WorkspaceID: b.workspaceID,
		Field:       field,
		OldValue:    old,
		NewValue:    updated,
	})
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
