// Package uuid binds github.com/google/uuid IDs from gin URI, query and
// form parameters.
package uuid

import (
	"github.com/google/uuid"
)

// Param is an ID bound from a request parameter. An empty parameter binds
// to the zero value, which means "not set" for optional filters.
type Param struct {
	uuid.UUID
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (p *Param) UnmarshalParam(s string) error {
	if s == "" {
		*p = Param{}
		return nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*p = Param{id}
	return nil
}

// IsSet reports if a non-nil ID was bound.
func (p Param) IsSet() bool {
	return p.UUID != uuid.Nil
}

// Ptr returns the bound ID, or nil if none was bound.
func (p Param) Ptr() *uuid.UUID {
	if !p.IsSet() {
		return nil
	}

	id := p.UUID
	return &id
}
