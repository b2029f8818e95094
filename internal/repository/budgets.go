package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Budgets struct {
	base
}

var _ service.BudgetRepository = (*Budgets)(nil)

func (r *Budgets) Save(ctx context.Context, b *budget.Budget) error {
	row := models.BudgetFromDomain(b)
	version := row.Version
	row.Version = version + 1

	err := r.save(ctx, func(tx *gorm.DB) error {
		return writeVersioned(tx, &models.Budget{}, &row, row.ID, version, row.Columns())
	}, func() { b.Persisted(version + 1) }, b)

	if errors.Is(err, models.ErrBudgetNameNotUnique) {
		return fmt.Errorf("%w: %w", service.ErrBudgetNameTaken, err)
	}
	return err
}

func (r *Budgets) FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.Budget, error) {
	var row models.Budget
	err := r.db.WithContext(ctx).Where("id = ? AND workspace_id = ?", id, workspaceID).First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}

	return row.ToDomain()
}

func (r *Budgets) FindByFilters(ctx context.Context, f service.BudgetFilter) ([]*budget.Budget, error) {
	q := r.db.WithContext(ctx).Model(&models.Budget{})

	if f.WorkspaceID != uuid.Nil {
		q = q.Where("workspace_id = ?", f.WorkspaceID)
	}

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}

	if f.CreatedBy != nil {
		q = q.Where("created_by = ?", *f.CreatedBy)
	}

	if f.Currency != "" {
		q = q.Where("currency = ?", strings.ToUpper(f.Currency))
	}

	if f.ActiveAt != nil {
		at := f.ActiveAt.UTC()
		q = q.Where("status = ? AND start_date <= ? AND end_date >= ?", string(budget.StatusActive), at, at)
	}

	if f.EndedBefore != nil {
		q = q.Where("end_date < ?", f.EndedBefore.UTC())
	}

	var rows []models.Budget
	if err := paginate(q, f.Page).Order("created_at DESC, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	budgets := make([]*budget.Budget, 0, len(rows))
	for _, row := range rows {
		b, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}

	return budgets, nil
}

func (r *Budgets) Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Budget{}, "id = ? AND workspace_id = ?", id, workspaceID)
}

func (r *Budgets) ExistsByName(ctx context.Context, workspaceID uuid.UUID, name string) (bool, error) {
	return exists(ctx, r.db, &models.Budget{}, "workspace_id = ? AND name = ?", workspaceID, name)
}

// Delete removes the budget with its allocations and their alerts in one
// transaction.
func (r *Budgets) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	return r.save(ctx, func(tx *gorm.DB) error {
		var row models.Budget
		if err := tx.Where("id = ? AND workspace_id = ?", id, workspaceID).First(&row).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Where("budget_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}

		if err := tx.Where("budget_id = ?", id).Delete(&models.Allocation{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Budget{}).Error
	}, nil)
}
