package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alerts stores budget alerts. Alerts belong to a workspace through their
// budget.
type Alerts struct {
	base
}

var _ service.AlertRepository = (*Alerts)(nil)

// Save inserts the alert or updates its read and notification state.
func (r *Alerts) Save(ctx context.Context, a *budget.Alert) error {
	row := models.AlertFromDomain(a)

	return r.save(ctx, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Alert{}).Where("id = ?", row.ID).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			err := tx.Create(&row).Error
			if errors.Is(err, models.ErrDuplicateUnreadAlert) {
				return fmt.Errorf("%w: %w", budget.ErrConflict, err)
			}
			return err
		}

		return tx.Model(&models.Alert{}).Where("id = ?", row.ID).Updates(map[string]any{
			"is_read":     row.IsRead,
			"notified_at": row.NotifiedAt,
		}).Error
	}, nil)
}

func (r *Alerts) FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.Alert, error) {
	var row models.Alert
	err := r.db.WithContext(ctx).
		Where("id = ? AND budget_id IN (?)", id, r.workspaceBudgets(ctx, workspaceID)).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}

	return row.ToDomain()
}

func (r *Alerts) FindByFilters(ctx context.Context, f service.AlertFilter) ([]*budget.Alert, error) {
	q := r.db.WithContext(ctx).Model(&models.Alert{})

	if f.WorkspaceID != uuid.Nil {
		q = q.Where("budget_id IN (?)", r.workspaceBudgets(ctx, f.WorkspaceID))
	}

	if f.BudgetID != nil {
		q = q.Where("budget_id = ?", *f.BudgetID)
	}

	if f.AllocationID != nil {
		q = q.Where("allocation_id = ?", *f.AllocationID)
	}

	if f.Level != nil {
		q = q.Where("level = ?", string(*f.Level))
	}

	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}

	var rows []models.Alert
	if err := paginate(q, f.Page).Order("created_at DESC, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	alerts := make([]*budget.Alert, 0, len(rows))
	for _, row := range rows {
		a, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

func (r *Alerts) Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Alert{}, "id = ? AND budget_id IN (?)", id, r.workspaceBudgets(ctx, workspaceID))
}

func (r *Alerts) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	return r.save(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND budget_id IN (?)", id, r.workspaceBudgets(ctx, workspaceID)).Delete(&models.Alert{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: alert %s", service.ErrNotFound, id)
		}
		return nil
	}, nil)
}

// workspaceBudgets is a subquery selecting the IDs of all budgets of the
// workspace.
func (r *Alerts) workspaceBudgets(ctx context.Context, workspaceID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Budget{}).Select("id").Where("workspace_id = ?", workspaceID)
}
