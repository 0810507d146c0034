package reservation

import "errors"

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrGuestNameRequired = errors.New("guest name required")
	ErrInvalidParty      = errors.New("party size must be positive")
	ErrNoTables          = errors.New("at least one table required")
	ErrInvalidTableID    = errors.New("invalid table id")
	ErrCodeTaken         = errors.New("reservation code taken")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusSeated    Status = "SEATED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reservations no longer occupy their tables and are never mutated.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusSeated, StatusCancelled},
	StatusConfirmed: {StatusSeated, StatusCompleted, StatusCancelled},
	StatusSeated:    {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from→to is an allowed lifecycle step.
// Terminal statuses have no outgoing edges.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
