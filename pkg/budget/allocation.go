package budget

import (
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is a portion of a budget earmarked for a category, or for the
// whole budget if it has no category. It tracks spend against its own cap.
type Allocation struct {
	id              uuid.UUID
	budgetID        uuid.UUID
	categoryID      *uuid.UUID
	allocatedAmount decimal.Decimal
	spentAmount     decimal.Decimal
	description     *string
	version         int64
	createdAt       time.Time
	updatedAt       time.Time

	events events.Recorder[AllocationEvent]
}

// NewAllocation creates an allocation with nothing spent.
func NewAllocation(budgetID uuid.UUID, categoryID *uuid.UUID, amount decimal.Decimal, description string) (*Allocation, error) {
	if budgetID == uuid.Nil {
		return nil, ErrMissingID
	}

	if err := validatePositiveAmount(amount); err != nil {
		return nil, err
	}

	d, err := normalizeDescription(description, AllocationDescriptionMaxLength, ErrAllocationDescriptionLength)
	if err != nil {
		return nil, err
	}

	ts := now()
	a := &Allocation{
		id:              uuid.New(),
		budgetID:        budgetID,
		categoryID:      categoryID,
		allocatedAmount: amount,
		spentAmount:     decimal.Zero,
		description:     d,
		createdAt:       ts,
		updatedAt:       ts,
	}

	a.events.Record(AllocationCreated{
		Meta:            a.meta(ts),
		BudgetID:        budgetID,
		CategoryID:      categoryID,
		AllocatedAmount: amount,
	})

	return a, nil
}

type AllocationSnapshot struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	CategoryID      *uuid.UUID
	AllocatedAmount decimal.Decimal
	SpentAmount     decimal.Decimal
	Description     *string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreAllocation rebuilds an allocation from a snapshot. No events are
// recorded.
func RestoreAllocation(s AllocationSnapshot) *Allocation {
	return &Allocation{
		id:              s.ID,
		budgetID:        s.BudgetID,
		categoryID:      s.CategoryID,
		allocatedAmount: s.AllocatedAmount,
		spentAmount:     s.SpentAmount,
		description:     s.Description,
		version:         s.Version,
		createdAt:       s.CreatedAt.UTC(),
		updatedAt:       s.UpdatedAt.UTC(),
	}
}

func (a *Allocation) Snapshot() AllocationSnapshot {
	return AllocationSnapshot{
		ID:              a.id,
		BudgetID:        a.budgetID,
		CategoryID:      a.categoryID,
		AllocatedAmount: a.allocatedAmount,
		SpentAmount:     a.spentAmount,
		Description:     a.description,
		Version:         a.version,
		CreatedAt:       a.createdAt,
		UpdatedAt:       a.updatedAt,
	}
}

func (a *Allocation) ID() uuid.UUID                    { return a.id }
func (a *Allocation) BudgetID() uuid.UUID              { return a.budgetID }
func (a *Allocation) CategoryID() *uuid.UUID           { return a.categoryID }
func (a *Allocation) AllocatedAmount() decimal.Decimal { return a.allocatedAmount }
func (a *Allocation) SpentAmount() decimal.Decimal     { return a.spentAmount }
func (a *Allocation) Description() *string             { return a.description }
func (a *Allocation) Version() int64                   { return a.version }
func (a *Allocation) CreatedAt() time.Time             { return a.createdAt }
func (a *Allocation) UpdatedAt() time.Time             { return a.updatedAt }

// Remaining is the allocated amount minus the spent amount. It is negative
// when the allocation is overspent.
func (a *Allocation) Remaining() decimal.Decimal {
	return a.allocatedAmount.Sub(a.spentAmount)
}

// SpentPercentage is spent / allocated * 100. It is zero if nothing is
// allocated.
func (a *Allocation) SpentPercentage() decimal.Decimal {
	if a.allocatedAmount.IsZero() {
		return decimal.Zero
	}
	return percentOf(a.spentAmount, a.allocatedAmount)
}

func (a *Allocation) IsOverBudget() bool {
	return a.spentAmount.GreaterThan(a.allocatedAmount)
}

func (a *Allocation) IsFullySpent() bool {
	return a.spentAmount.GreaterThanOrEqual(a.allocatedAmount)
}

func (a *Allocation) HasAvailableBudget() bool {
	return a.Remaining().IsPositive()
}

// Level returns the alert level band the allocation is in. ok is false when
// less than the lowest threshold is spent.
func (a *Allocation) Level() (level AlertLevel, ok bool) {
	level, err := LevelFor(a.SpentPercentage())
	if err != nil {
		return "", false
	}
	return level, true
}

func (a *Allocation) UpdateAllocatedAmount(amount decimal.Decimal) error {
	if err := validatePositiveAmount(amount); err != nil {
		return err
	}

	a.allocatedAmount = amount
	a.touch()
	return nil
}

// UpdateDescription sets the description. An empty description clears it.
func (a *Allocation) UpdateDescription(description string) error {
	d, err := normalizeDescription(description, AllocationDescriptionMaxLength, ErrAllocationDescriptionLength)
	if err != nil {
		return err
	}

	a.description = d
	a.touch()
	return nil
}

// UpdateSpentAmount sets the absolute spent amount. This is the mutation
// alerts are evaluated after.
func (a *Allocation) UpdateSpentAmount(spent decimal.Decimal) error {
	if err := validateNonNegativeAmount(spent); err != nil {
		return err
	}

	a.setSpent(spent)
	return nil
}

// IncrementSpent adds amount to the spent amount.
func (a *Allocation) IncrementSpent(amount decimal.Decimal) error {
	if err := validatePositiveAmount(amount); err != nil {
		return err
	}

	spent := a.spentAmount.Add(amount)
	if err := validateAmountBounds(spent); err != nil {
		return err
	}

	a.setSpent(spent)
	return nil
}

// DecrementSpent subtracts amount from the spent amount. The spent amount
// does not go below zero.
func (a *Allocation) DecrementSpent(amount decimal.Decimal) error {
	if err := validatePositiveAmount(amount); err != nil {
		return err
	}

	a.setSpent(decimal.Max(decimal.Zero, a.spentAmount.Sub(amount)))
	return nil
}

func (a *Allocation) setSpent(spent decimal.Decimal) {
	previous := a.spentAmount
	previousLevel, hadLevel := a.Level()

	a.spentAmount = spent
	a.touch()

	a.events.Record(AllocationSpendRecorded{
		Meta:          a.meta(a.updatedAt),
		BudgetID:      a.budgetID,
		PreviousSpent: previous,
		SpentAmount:   spent,
		Percentage:    a.SpentPercentage().Round(AmountScale),
	})

	level, ok := a.Level()
	if !ok || (hadLevel && level.Rank() <= previousLevel.Rank()) {
		return
	}

	crossed := AllocationThresholdCrossed{
		Meta:       a.meta(a.updatedAt),
		BudgetID:   a.budgetID,
		Level:      level,
		Percentage: a.SpentPercentage().Round(AmountScale),
	}
	if hadLevel {
		crossed.PreviousLevel = &previousLevel
	}
	a.events.Record(crossed)
}

func (a *Allocation) Events() []AllocationEvent {
	return a.events.Pending()
}

func (a *Allocation) PendingEvents() []events.Event {
	return events.Upcast(a.events.Pending())
}

func (a *Allocation) ClearEvents() {
	a.events.Clear()
}

// Persisted sets the version the allocation was stored with.
func (a *Allocation) Persisted(version int64) {
	a.version = version
}

func (a *Allocation) touch() {
	a.updatedAt = now()
}

func (a *Allocation) meta(at time.Time) events.Meta {
	return events.NewMeta(AggregateAllocation, a.id, at)
}
