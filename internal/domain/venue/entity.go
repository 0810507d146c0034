// Package venue holds the tenant-scoped configuration entities the booking
// engine reads but never mutates: venues and their physical tables.
package venue

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrTableNotFound   = errors.New("table not found")
	ErrUnknownTimezone = errors.New("unknown venue timezone")
)

type Venue struct {
	ID       uuid.UUID
	Name     string
	Timezone string
}

// Location resolves the venue's IANA timezone, used to derive UTC slot starts
// from venue-local dates and times.
func (v Venue) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return nil, ErrUnknownTimezone
	}
	return loc, nil
}

type Table struct {
	ID        uuid.UUID
	VenueID   uuid.UUID
	Label     string
	Capacity  int
	Zone      string
	JoinGroup *string
}
