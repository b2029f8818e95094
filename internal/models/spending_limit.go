package models

import (
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpendingLimit is the row of a budget.SpendingLimit.
type SpendingLimit struct {
	DefaultModel
	WorkspaceID uuid.UUID       `gorm:"type:uuid;index"`
	UserID      *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	LimitAmount decimal.Decimal `gorm:"type:TEXT"`
	Currency    string          `gorm:"size:3"`
	PeriodType  string
	IsActive    bool `gorm:"index"`
	Version     int64
}

func SpendingLimitFromDomain(l *budget.SpendingLimit) SpendingLimit {
	s := l.Snapshot()
	return SpendingLimit{
		DefaultModel: DefaultModel{
			ID: s.ID,
			Timestamps: Timestamps{
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			},
		},
		WorkspaceID: s.WorkspaceID,
		UserID:      s.UserID,
		CategoryID:  s.CategoryID,
		LimitAmount: s.LimitAmount,
		Currency:    s.Currency,
		PeriodType:  string(s.PeriodType),
		IsActive:    s.IsActive,
		Version:     s.Version,
	}
}

func (l SpendingLimit) ToDomain() (*budget.SpendingLimit, error) {
	return budget.RestoreSpendingLimit(budget.SpendingLimitSnapshot{
		ID:          l.ID,
		WorkspaceID: l.WorkspaceID,
		UserID:      l.UserID,
		CategoryID:  l.CategoryID,
		LimitAmount: l.LimitAmount,
		Currency:    l.Currency,
		PeriodType:  budget.PeriodType(l.PeriodType),
		IsActive:    l.IsActive,
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	})
}

func (l SpendingLimit) Columns() map[string]any {
	return map[string]any{
		"limit_amount": l.LimitAmount,
		"currency":     l.Currency,
		"period_type":  l.PeriodType,
		"is_active":    l.IsActive,
		"updated_at":   l.UpdatedAt,
	}
}
