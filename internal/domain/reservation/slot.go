package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidSlotDate = errors.New("invalid slot date")
	ErrInvalidSlotTime = errors.New("invalid slot time")
	ErrInvalidDuration = errors.New("invalid slot duration")
)

const (
	slotDateLayout = "2006-01-02"
	slotTimeLayout = "15:04"

	MinDurationMinutes = 15
	MaxDurationMinutes = 12 * 60
)

// Slot identifies a bookable time window by venue-local date and time plus a
// duration. The UTC interval is derived through the venue's timezone.
type Slot struct {
	Date            string
	Time            string
	DurationMinutes int
}

func NewSlot(date, timeOfDay string, durationMinutes int) (Slot, error) {
	if _, err := time.Parse(slotDateLayout, date); err != nil {
		return Slot{}, ErrInvalidSlotDate
	}
	if _, err := time.Parse(slotTimeLayout, timeOfDay); err != nil {
		return Slot{}, ErrInvalidSlotTime
	}
	if durationMinutes < MinDurationMinutes || durationMinutes > MaxDurationMinutes {
		return Slot{}, ErrInvalidDuration
	}
	return Slot{Date: date, Time: timeOfDay, DurationMinutes: durationMinutes}, nil
}

// StartUTC resolves the slot's opening instant in the given venue timezone.
func (s Slot) StartUTC(loc *time.Location) (time.Time, error) {
	local, err := time.ParseInLocation(slotDateLayout+" "+slotTimeLayout, s.Date+" "+s.Time, loc)
	if err != nil {
		return time.Time{}, ErrInvalidSlotTime
	}
	return local.UTC(), nil
}

// Window resolves the half-open UTC interval [start, end).
func (s Slot) Window(loc *time.Location) (start, end time.Time, err error) {
	start, err = s.StartUTC(loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(s.Duration()), nil
}

func (s Slot) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Overlaps reports whether two half-open intervals intersect. Back-to-back
// slots (endA == startB) do not conflict.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
