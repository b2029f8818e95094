package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base of all rows. The domain sets IDs and timestamps,
// gorm never overwrites them.
type DefaultModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Timestamps
}

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// AfterFind sets the location of the timestamps to UTC.
//
// They are stored in UTC, but sqlite returns them with a
// fixed +0000 zone, which is not equal to time.UTC.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}

// BeforeCreate generates a UUID for rows that do not have one.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
