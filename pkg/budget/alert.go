package budget

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertLevel is the severity of an alert, derived from the spent
// percentage of an allocation.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
	AlertExceeded AlertLevel = "EXCEEDED"
)

// Lower bounds of the alert level bands, in percent.
var (
	InfoThreshold     = decimal.NewFromInt(50)
	WarningThreshold  = decimal.NewFromInt(75)
	CriticalThreshold = decimal.NewFromInt(90)
	ExceededThreshold = decimal.NewFromInt(100)
)

// LevelFor maps a spent percentage to its alert level:
//
//	[50, 75)  INFO
//	[75, 90)  WARNING
//	[90, 100) CRITICAL
//	[100, ∞)  EXCEEDED
//
// Percentages below 50 have no level and return ErrBelowAlertThreshold.
// Callers are expected to check the floor first.
func LevelFor(percentage decimal.Decimal) (AlertLevel, error) {
	switch {
	case percentage.GreaterThanOrEqual(ExceededThreshold):
		return AlertExceeded, nil
	case percentage.GreaterThanOrEqual(CriticalThreshold):
		return AlertCritical, nil
	case percentage.GreaterThanOrEqual(WarningThreshold):
		return AlertWarning, nil
	case percentage.GreaterThanOrEqual(InfoThreshold):
		return AlertInfo, nil
	}

	return "", fmt.Errorf("%w: %s%%", ErrBelowAlertThreshold, percentage.StringFixed(1))
}

// ParseAlertLevel parses an alert level case-insensitively.
func ParseAlertLevel(s string) (AlertLevel, error) {
	l := AlertLevel(strings.ToUpper(strings.TrimSpace(s)))
	if l.Rank() == 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlertLevel, s)
	}
	return l, nil
}

// Rank orders the levels from 1 (INFO) to 4 (EXCEEDED). Unknown levels
// have rank 0.
func (l AlertLevel) Rank() int {
	switch l {
	case AlertInfo:
		return 1
	case AlertWarning:
		return 2
	case AlertCritical:
		return 3
	case AlertExceeded:
		return 4
	}
	return 0
}

// Alert records that an allocation crossed a spend threshold. Everything
// except the read flag and the notification time is a snapshot taken at
// creation and never changes.
type Alert struct {
	id              uuid.UUID
	budgetID        uuid.UUID
	allocationID    *uuid.UUID
	level           AlertLevel
	threshold       decimal.Decimal
	currentSpent    decimal.Decimal
	allocatedAmount decimal.Decimal
	message         string
	isRead          bool
	notifiedAt      *time.Time
	createdAt       time.Time
}

type NewAlertParams struct {
	BudgetID        uuid.UUID
	AllocationID    *uuid.UUID
	CurrentSpent    decimal.Decimal
	AllocatedAmount decimal.Decimal

	// Message replaces the generated message if not empty
	Message string
}

// NewAlert creates an alert from a spend snapshot. It fails with
// ErrBelowAlertThreshold if less than 50% of the allocated amount is spent.
func NewAlert(p NewAlertParams) (*Alert, error) {
	if p.BudgetID == uuid.Nil {
		return nil, ErrMissingID
	}

	if !p.AllocatedAmount.IsPositive() {
		return nil, ErrZeroAllocatedAmount
	}

	percentage := percentOf(p.CurrentSpent, p.AllocatedAmount)
	level, err := LevelFor(percentage)
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(p.Message)
	if message == "" {
		message = alertMessage(level, percentage, p.CurrentSpent, p.AllocatedAmount)
	}

	return &Alert{
		id:              uuid.New(),
		budgetID:        p.BudgetID,
		allocationID:    p.AllocationID,
		level:           level,
		threshold:       percentage.Round(AmountScale),
		currentSpent:    p.CurrentSpent,
		allocatedAmount: p.AllocatedAmount,
		message:         message,
		createdAt:       now(),
	}, nil
}

// AlertForAllocation creates an alert from the current state of an
// allocation.
func AlertForAllocation(a *Allocation) (*Alert, error) {
	id := a.ID()
	return NewAlert(NewAlertParams{
		BudgetID:        a.BudgetID(),
		AllocationID:    &id,
		CurrentSpent:    a.SpentAmount(),
		AllocatedAmount: a.AllocatedAmount(),
	})
}

func alertMessage(level AlertLevel, percentage, spent, allocated decimal.Decimal) string {
	pct := percentage.StringFixed(1)
	remaining := allocated.Sub(spent)

	switch level {
	case AlertExceeded:
		return fmt.Sprintf("Budget exceeded! Spent %s of %s allocated (%s%%). Over budget by %s.",
			spent.StringFixed(2), allocated.StringFixed(2), pct, remaining.Abs().String())
	case AlertCritical:
		return fmt.Sprintf("Critical: %s%% of budget spent (%s/%s). Only %s remaining.",
			pct, spent.StringFixed(2), allocated.StringFixed(2), remaining.StringFixed(2))
	case AlertWarning:
		return fmt.Sprintf("Warning: %s%% of budget spent (%s/%s). %s remaining.",
			pct, spent.StringFixed(2), allocated.StringFixed(2), remaining.StringFixed(2))
	default:
		return fmt.Sprintf("Notice: %s%% of budget spent (%s/%s). %s remaining.",
			pct, spent.StringFixed(2), allocated.StringFixed(2), remaining.StringFixed(2))
	}
}

type AlertSnapshot struct {
	ID              uuid.UUID
	BudgetID        uuid.UUID
	AllocationID    *uuid.UUID
	Level           AlertLevel
	Threshold       decimal.Decimal
	CurrentSpent    decimal.Decimal
	AllocatedAmount decimal.Decimal
	Message         string
	IsRead          bool
	NotifiedAt      *time.Time
	CreatedAt       time.Time
}

// RestoreAlert rebuilds an alert from a snapshot.
func RestoreAlert(s AlertSnapshot) (*Alert, error) {
	level, err := ParseAlertLevel(string(s.Level))
	if err != nil {
		return nil, err
	}

	var notifiedAt *time.Time
	if s.NotifiedAt != nil {
		t := s.NotifiedAt.UTC()
		notifiedAt = &t
	}

	return &Alert{
		id:              s.ID,
		budgetID:        s.BudgetID,
		allocationID:    s.AllocationID,
		level:           level,
		threshold:       s.Threshold,
		currentSpent:    s.CurrentSpent,
		allocatedAmount: s.AllocatedAmount,
		message:         s.Message,
		isRead:          s.IsRead,
		notifiedAt:      notifiedAt,
		createdAt:       s.CreatedAt.UTC(),
	}, nil
}

func (a *Alert) Snapshot() AlertSnapshot {
	return AlertSnapshot{
		ID:              a.id,
		BudgetID:        a.budgetID,
		AllocationID:    a.allocationID,
		Level:           a.level,
		Threshold:       a.threshold,
		CurrentSpent:    a.currentSpent,
		AllocatedAmount: a.allocatedAmount,
		Message:         a.message,
		IsRead:          a.isRead,
		NotifiedAt:      a.notifiedAt,
		CreatedAt:       a.createdAt,
	}
}

func (a *Alert) ID() uuid.UUID                    { return a.id }
func (a *Alert) BudgetID() uuid.UUID              { return a.budgetID }
func (a *Alert) AllocationID() *uuid.UUID         { return a.allocationID }
func (a *Alert) Level() AlertLevel                { return a.level }
func (a *Alert) Threshold() decimal.Decimal       { return a.threshold }
func (a *Alert) CurrentSpent() decimal.Decimal    { return a.currentSpent }
func (a *Alert) AllocatedAmount() decimal.Decimal { return a.allocatedAmount }
func (a *Alert) Message() string                  { return a.message }
func (a *Alert) IsRead() bool                     { return a.isRead }
func (a *Alert) NotifiedAt() *time.Time           { return a.notifiedAt }
func (a *Alert) CreatedAt() time.Time             { return a.createdAt }

func (a *Alert) IsCritical() bool {
	return a.level == AlertCritical || a.level == AlertExceeded
}

func (a *Alert) HasBeenNotified() bool {
	return a.notifiedAt != nil
}

// MarkAsRead marks the alert as read. Marking a read alert again has no
// effect.
func (a *Alert) MarkAsRead() {
	a.isRead = true
}

// MarkAsNotified records when the alert was delivered.
func (a *Alert) MarkAsNotified(at time.Time) error {
	if a.notifiedAt != nil {
		return ErrAlertAlreadyNotified
	}

	t := at.UTC()
	a.notifiedAt = &t
	return nil
}

// AlertOutcomeKind is the result of trying to store a new alert.
type AlertOutcomeKind int

const (
	AlertCreated AlertOutcomeKind = iota + 1
	AlertSkippedDuplicate
	AlertFailed
)

func (k AlertOutcomeKind) String() string {
	switch k {
	case AlertCreated:
		return "created"
	case AlertSkippedDuplicate:
		return "skipped_duplicate"
	case AlertFailed:
		return "failed"
	}
	return "unknown"
}

// AlertOutcome reports what happened to one alert of a spend update. An
// unread alert for the same allocation and level already existing is
// AlertSkippedDuplicate, which is not a failure.
type AlertOutcome struct {
	Kind  AlertOutcomeKind
	Alert *Alert

	// Reason is set for AlertFailed only
	Reason error
}

func Created(a *Alert) AlertOutcome {
	return AlertOutcome{Kind: AlertCreated, Alert: a}
}

func SkippedDuplicate(a *Alert) AlertOutcome {
	return AlertOutcome{Kind: AlertSkippedDuplicate, Alert: a}
}

func Failed(a *Alert, reason error) AlertOutcome {
	return AlertOutcome{Kind: AlertFailed, Alert: a, Reason: reason}
}
