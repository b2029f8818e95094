package budget

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a budget.
type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusActive   Status = "ACTIVE"
	StatusExceeded Status = "EXCEEDED"
	StatusArchived Status = "ARCHIVED"
)

// transitions lists the allowed target states of each state. ARCHIVED is
// terminal.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusActive, StatusArchived},
	StatusActive:   {StatusExceeded, StatusArchived},
	StatusExceeded: {StatusArchived},
	StatusArchived: {},
}

// ParseStatus parses a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

// IsValidTransition reports whether a budget may move from one status to another.
func IsValidTransition(from, to Status) bool {
	return from.CanTransition(to)
}

// CanTransition reports whether a budget in status s may move to status to.
func (s Status) CanTransition(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusArchived
}
