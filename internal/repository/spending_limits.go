package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SpendingLimits struct {
	base
}

var _ service.SpendingLimitRepository = (*SpendingLimits)(nil)

func (r *SpendingLimits) Save(ctx context.Context, l *budget.SpendingLimit) error {
	row := models.SpendingLimitFromDomain(l)
	version := row.Version
	row.Version = version + 1

	return r.save(ctx, func(tx *gorm.DB) error {
		return writeVersioned(tx, &models.SpendingLimit{}, &row, row.ID, version, row.Columns())
	}, func() { l.Persisted(version + 1) }, l)
}

func (r *SpendingLimits) FindByID(ctx context.Context, id, workspaceID uuid.UUID) (*budget.SpendingLimit, error) {
	var row models.SpendingLimit
	err := r.db.WithContext(ctx).Where("id = ? AND workspace_id = ?", id, workspaceID).First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}

	return row.ToDomain()
}

func (r *SpendingLimits) FindByFilters(ctx context.Context, f service.SpendingLimitFilter) ([]*budget.SpendingLimit, error) {
	q := r.db.WithContext(ctx).Model(&models.SpendingLimit{}).Where("workspace_id = ?", f.WorkspaceID)

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	if f.PeriodType != nil {
		q = q.Where("period_type = ?", string(*f.PeriodType))
	}

	if f.Currency != "" {
		q = q.Where("currency = ?", strings.ToUpper(f.Currency))
	}

	return r.find(paginate(q, f.Page))
}

// FindApplicable returns the active limits of the workspace for the user
// and category, newest first. A limit applies when it is
//
//   - workspace wide (no user, no category)
//   - for the user in any category
//   - for the category for any user
//   - for the user in the category
func (r *SpendingLimits) FindApplicable(ctx context.Context, workspaceID uuid.UUID, userID, categoryID *uuid.UUID) ([]*budget.SpendingLimit, error) {
	scope := r.db.Where("user_id IS NULL AND category_id IS NULL")

	if userID != nil {
		scope = scope.Or("user_id = ? AND category_id IS NULL", *userID)
	}

	if categoryID != nil {
		scope = scope.Or("user_id IS NULL AND category_id = ?", *categoryID)
	}

	if userID != nil && categoryID != nil {
		scope = scope.Or("user_id = ? AND category_id = ?", *userID, *categoryID)
	}

	q := r.db.WithContext(ctx).
		Where("workspace_id = ? AND is_active = ?", workspaceID, true).
		Where(scope)

	return r.find(q)
}

func (r *SpendingLimits) Count(ctx context.Context, workspaceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SpendingLimit{}).Where("workspace_id = ?", workspaceID).Count(&count).Error
	return count, err
}

func (r *SpendingLimits) Exists(ctx context.Context, id, workspaceID uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.SpendingLimit{}, "id = ? AND workspace_id = ?", id, workspaceID)
}

func (r *SpendingLimits) Delete(ctx context.Context, id, workspaceID uuid.UUID) error {
	return r.save(ctx, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND workspace_id = ?", id, workspaceID).Delete(&models.SpendingLimit{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: spending limit %s", service.ErrNotFound, id)
		}
		return nil
	}, nil)
}

func (r *SpendingLimits) find(q *gorm.DB) ([]*budget.SpendingLimit, error) {
	var rows []models.SpendingLimit
	if err := q.Order("created_at DESC, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	limits := make([]*budget.SpendingLimit, 0, len(rows))
	for _, row := range rows {
		l, err := row.ToDomain()
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}

	return limits, nil
}
