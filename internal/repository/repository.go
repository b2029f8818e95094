// Package repository implements the persistence ports of the service
// package with gorm.
//
// Every save runs in one transaction. The events recorded by the saved
// aggregates are published after the transaction committed, in the order
// they were recorded. If the transaction fails, nothing is published and
// the events stay queued on the aggregate.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/internal/models"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/events"
	"github.com/Tasheen2002/Expense-Tracker-Application-sub002/pkg/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Repositories holds all repositories sharing one database and publisher.
type Repositories struct {
	Budgets        *Budgets
	Allocations    *Allocations
	Alerts         *Alerts
	SpendingLimits *SpendingLimits
}

// New creates all repositories. A nil publisher discards events.
func New(db *gorm.DB, publisher events.Publisher) Repositories {
	if publisher == nil {
		publisher = events.Discard
	}

	b := base{db: db, publisher: publisher}
	return Repositories{
		Budgets:        &Budgets{b},
		Allocations:    &Allocations{b},
		Alerts:         &Alerts{b},
		SpendingLimits: &SpendingLimits{b},
	}
}

type base struct {
	db        *gorm.DB
	publisher events.Publisher
}

// save runs write in a transaction. Once it committed, committed is called
// and the pending events of sources are published and cleared.
func (b base) save(ctx context.Context, write func(tx *gorm.DB) error, committed func(), sources ...events.Source) error {
	if err := b.db.WithContext(ctx).Transaction(write); err != nil {
		return err
	}

	if committed != nil {
		committed()
	}

	var pending []events.Event
	for _, s := range sources {
		pending = append(pending, s.PendingEvents()...)
		s.ClearEvents()
	}

	if err := events.PublishAll(ctx, b.publisher, pending); err != nil {
		var publishErr *events.PublishError
		if errors.As(err, &publishErr) {
			log.Error().
				Str("event", publishErr.Event.Name()).
				Str("aggregate", publishErr.Event.AggregateID().String()).
				Int("unpublished", len(publishErr.Unpublished)).
				Err(publishErr.Err).
				Msg("publishing events failed after commit")
		}
		return err
	}

	return nil
}

// writeVersioned inserts row if version is zero. Otherwise, it updates the
// columns of the row with the given ID if its stored version still equals
// version, and increments the stored version.
//
// The caller sets the version of row to version + 1 before.
func writeVersioned(tx *gorm.DB, model, row any, id uuid.UUID, version int64, columns map[string]any) error {
	if version == 0 {
		return tx.Create(row).Error
	}

	columns["version"] = version + 1
	res := tx.Model(model).Where("id = ? AND version = ?", id, version).Updates(columns)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return fmt.Errorf("%w: record %s has been deleted", service.ErrNotFound, id)
	}

	log.Debug().Str("id", id.String()).Int64("version", version).Msg("version conflict on save")
	return service.ErrVersionConflict
}

// notFound makes a not found error from the models package match
// service.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, models.ErrResourceNotFound) {
		return fmt.Errorf("%w: %w", service.ErrNotFound, err)
	}
	return err
}

func paginate(q *gorm.DB, p service.Page) *gorm.DB {
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}

	if p.Limit > 0 {
		q = q.Limit(p.Limit)
	}

	return q
}

// exists counts the rows of model matching the conditions.
func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	return count > 0, err
}

// committed reports if the state of a save has been persisted. A save that
// committed but failed to publish returns an *events.PublishError.
func committed(err error) bool {
	var publishErr *events.PublishError
	return err == nil || errors.As(err, &publishErr)
}
