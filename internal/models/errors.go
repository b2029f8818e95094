package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrBudgetNameNotUnique  = errors.New("the budget name must be unique within the workspace")
	ErrDuplicateUnreadAlert = errors.New("an unread alert with this level already exists for the allocation")
)
