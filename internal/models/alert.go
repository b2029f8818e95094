package models

import (
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Alert is the row of a budget.Alert.
//
// The partial unique index allows at most one unread alert per allocation
// and level. Alerts without allocation are not constrained, NULLs are
// distinct in sqlite indexes.
type Alert struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BudgetID        uuid.UUID       `gorm:"type:uuid;index"`
	AllocationID    *uuid.UUID      `gorm:"type:uuid;uniqueIndex:alert_unread_allocation_level,where:is_read = false"`
	Level           string          `gorm:"uniqueIndex:alert_unread_allocation_level"`
	Threshold       decimal.Decimal `gorm:"type:TEXT"`
	CurrentSpent    decimal.Decimal `gorm:"type:TEXT"`
	AllocatedAmount decimal.Decimal `gorm:"type:TEXT"`
	Message         string
	IsRead          bool `gorm:"index"`
	NotifiedAt      *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false"`
}

func (a *Alert) AfterFind(_ *gorm.DB) error {
	a.CreatedAt = a.CreatedAt.In(time.UTC)
	if a.NotifiedAt != nil {
		t := a.NotifiedAt.In(time.UTC)
		a.NotifiedAt = &t
	}
	return nil
}

func AlertFromDomain(a *budget.Alert) Alert {
	s := a.Snapshot()
	return Alert{
		ID:              s.ID,
		BudgetID:        s.BudgetID,
		AllocationID:    s.AllocationID,
		Level:           string(s.Level),
		Threshold:       s.Threshold,
		CurrentSpent:    s.CurrentSpent,
		AllocatedAmount: s.AllocatedAmount,
		Message:         s.Message,
		IsRead:          s.IsRead,
		NotifiedAt:      s.NotifiedAt,
		CreatedAt:       s.CreatedAt,
	}
}

func (a Alert) ToDomain() (*budget.Alert, error) {
	return budget.RestoreAlert(budget.AlertSnapshot{
		ID:              a.ID,
		BudgetID:        a.BudgetID,
		AllocationID:    a.AllocationID,
		Level:           budget.AlertLevel(a.Level),
		Threshold:       a.Threshold,
		CurrentSpent:    a.CurrentSpent,
		AllocatedAmount: a.AllocatedAmount,
		Message:         a.Message,
		IsRead:          a.IsRead,
		NotifiedAt:      a.NotifiedAt,
		CreatedAt:       a.CreatedAt,
	})
}
