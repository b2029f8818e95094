package repository

import (
	"context"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/budget"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Allocations struct {
	base
}

var _ service.AllocationRepository = (*Allocations)(nil)

func (r *Allocations) Save(ctx context.Context, a *budget.Allocation) error {
	_, err := r.SaveWithAlerts(ctx, a, nil)
	return err
}

// SaveWithAlerts saves the allocation and inserts the alerts in one
// transaction.
//
// Alerts conflicting with an existing unread alert of the same allocation
// and level are not inserted and reported as budget.AlertSkippedDuplicate.
// If the transaction fails, every alert is reported as budget.AlertFailed.
func (r *Allocations) SaveWithAlerts(ctx context.Context, a *budget.Allocation, alerts []*budget.Alert) ([]budget.AlertOutcome, error) {
	row := models.AllocationFromDomain(a)
	version := row.Version
	row.Version = version + 1

	var outcomes []budget.AlertOutcome
	err := r.save(ctx, func(tx *gorm.DB) error {
		outcomes = outcomes[:0]

		if err := writeVersioned(tx, &models.Allocation{}, &row, row.ID, version, row.Columns()); err != nil {
			return err
		}

		for _, alert := range alerts {
			alertRow := models.AlertFromDomain(alert)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&alertRow)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				outcomes = append(outcomes, budget.SkippedDuplicate(alert))
				continue
			}
			outcomes = append(outcomes, budget.Created(alert))
		}

		return nil
	}, func() { a.Persisted(version + 1) }, a)

	if !committed(err) {
		failed := make([]budget.AlertOutcome, 0, len(alerts))
		for _, alert := range alerts {
			failed = append(failed, budget.Failed(alert, err))
		}
		return failed, err
	}

	return outcomes, err
}

func (r *Allocations) FindByID(ctx context.Context, id uuid.UUID) (*budget.Allocation, error) {
	var row models.Allocation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}

	return row.ToDomain(), nil
}

func (r *Allocations) FindByBudget(ctx context.Context, budgetID uuid.UUID) ([]*budget.Allocation, error) {
	var rows []models.Allocation
	if err := r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	allocations := make([]*budget.Allocation, 0, len(rows))
	for _, row := range rows {
		allocations = append(allocations, row.ToDomain())
	}

	return allocations, nil
}

func (r *Allocations) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return exists(ctx, r.db, &models.Allocation{}, "id = ?", id)
}

// Delete removes the allocation and its alerts in one transaction.
func (r *Allocations) Delete(ctx context.Context, id uuid.UUID) error {
	return r.save(ctx, func(tx *gorm.DB) error {
		var row models.Allocation
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return notFound(err)
		}

		if err := tx.Where("allocation_id = ?", id).Delete(&models.Alert{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Allocation{}).Error
	}, nil)
}
