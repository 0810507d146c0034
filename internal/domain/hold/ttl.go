package hold

import "time"

const MinTTL = time.Second

// TTLPolicy bounds how long a hold may block a slot.
type TTLPolicy struct {
	Default time.Duration
	Max     time.Duration
}

// Resolve turns a client-supplied ttl in seconds into a bounded duration.
// Zero means "use the default".
func (p TTLPolicy) Resolve(ttlSeconds int) (time.Duration, error) {
	if ttlSeconds == 0 {
		return p.Default, nil
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttl < MinTTL || ttl > p.Max {
		return 0, ErrInvalidTTL
	}
	return ttl, nil
}

// ComputeExpiry derives the instant a new hold lapses.
func ComputeExpiry(now time.Time, ttl time.Duration) time.Time {
	return now.Add(ttl)
}
