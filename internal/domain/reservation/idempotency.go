package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIdempotencyConflict = errors.New("idempotency key reused with a different request")
	ErrIdempotencyPending  = errors.New("idempotency key has no recorded result")
)

// IdempotencyRecord binds a client-supplied key to one logical creation
// request. A replay with the same fingerprint returns the original
// reservation; a replay with a different fingerprint is a client bug.
type IdempotencyRecord struct {
	Key                uuid.UUID
	RequestFingerprint string
	ReservationID      *uuid.UUID
	ExpiresAt          time.Time
	CreatedAt          time.Time
}
