package models

import (
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is the row of a budget.Allocation.
type Allocation struct {
	DefaultModel
	BudgetID        uuid.UUID       `gorm:"type:uuid;index"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid"`
	AllocatedAmount decimal.Decimal `gorm:"type:TEXT"`
	SpentAmount     decimal.Decimal `gorm:"type:TEXT"`
	Description     *string         `gorm:"size:500"`
	Version         int64
}

func AllocationFromDomain(a *budget.Allocation) Allocation {
	s := a.Snapshot()
	return Allocation{
		DefaultModel: DefaultModel{
			ID: s.ID,
			Timestamps: Timestamps{
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			},
		},
		BudgetID:        s.BudgetID,
		CategoryID:      s.CategoryID,
		AllocatedAmount: s.AllocatedAmount,
		SpentAmount:     s.SpentAmount,
		Description:     s.Description,
		Version:         s.Version,
	}
}

func (a Allocation) ToDomain() *budget.Allocation {
	return budget.RestoreAllocation(budget.AllocationSnapshot{
		ID:              a.ID,
		BudgetID:        a.BudgetID,
		CategoryID:      a.CategoryID,
		AllocatedAmount: a.AllocatedAmount,
		SpentAmount:     a.SpentAmount,
		Description:     a.Description,
		Version:         a.Version,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	})
}

func (a Allocation) Columns() map[string]any {
	return map[string]any{
		"category_id":      a.CategoryID,
		"allocated_amount": a.AllocatedAmount,
		"spent_amount":     a.SpentAmount,
		"description":      a.Description,
		"updated_at":       a.UpdatedAt,
	}
}
