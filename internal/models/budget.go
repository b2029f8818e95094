package models

import (
	"time"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Amounts are stored as TEXT. With NUMERIC affinity, sqlite converts
// decimal strings to REAL and loses exactness.

// Budget is the row of a budget.Budget.
type Budget struct {
	DefaultModel
	WorkspaceID    uuid.UUID       `gorm:"type:uuid;index;uniqueIndex:budget_workspace_name"`
	Name           string          `gorm:"size:255;uniqueIndex:budget_workspace_name"`
	Description    *string         `gorm:"size:5000"`
	TotalAmount    decimal.Decimal `gorm:"type:TEXT"`
	Currency       string          `gorm:"size:3"`
	PeriodType     string
	StartDate      time.Time
	EndDate        time.Time `gorm:"index"`
	Status         string    `gorm:"index"`
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	IsRecurring    bool
	RolloverUnused bool
	Version        int64
}

func (b *Budget) AfterFind(tx *gorm.DB) error {
	b.StartDate = b.StartDate.In(time.UTC)
	b.EndDate = b.EndDate.In(time.UTC)
	return b.DefaultModel.AfterFind(tx)
}

func BudgetFromDomain(b *budget.Budget) Budget {
	s := b.Snapshot()
	return Budget{
		DefaultModel: DefaultModel{
			ID: s.ID,
			Timestamps: Timestamps{
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			},
		},
		WorkspaceID:    s.WorkspaceID,
		Name:           s.Name,
		Description:    s.Description,
		TotalAmount:    s.TotalAmount,
		Currency:       s.Currency,
		PeriodType:     string(s.PeriodType),
		StartDate:      s.StartDate,
		EndDate:        s.EndDate,
		Status:         string(s.Status),
		CreatedBy:      s.CreatedBy,
		IsRecurring:    s.IsRecurring,
		RolloverUnused: s.RolloverUnused,
		Version:        s.Version,
	}
}

func (b Budget) ToDomain() (*budget.Budget, error) {
	return budget.RestoreBudget(budget.BudgetSnapshot{
		ID:             b.ID,
		WorkspaceID:    b.WorkspaceID,
		Name:           b.Name,
		Description:    b.Description,
		TotalAmount:    b.TotalAmount,
		Currency:       b.Currency,
		PeriodType:     budget.PeriodType(b.PeriodType),
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		Status:         budget.Status(b.Status),
		CreatedBy:      b.CreatedBy,
		IsRecurring:    b.IsRecurring,
		RolloverUnused: b.RolloverUnused,
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	})
}

// Columns returns the values written by a versioned update.
func (b Budget) Columns() map[string]any {
	return map[string]any{
		"name":            b.Name,
		"description":     b.Description,
		"total_amount":    b.TotalAmount,
		"currency":        b.Currency,
		"period_type":     b.PeriodType,
		"start_date":      b.StartDate,
		"end_date":        b.EndDate,
		"status":          b.Status,
		"is_recurring":    b.IsRecurring,
		"rollover_unused": b.RolloverUnused,
		"updated_at":      b.UpdatedAt,
	}
}
