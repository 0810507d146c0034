//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/domain/hold"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/venue"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"

	"github.com/google/uuid"
)

// fakeStore is a single in-memory backing store shared by all fake
// repositories, so tests observe cross-repository effects the way the real
// database exposes them.
type fakeStore struct {
	venues       map[uuid.UUID]venue.Venue
	tables       map[uuid.UUID]venue.Table
	holds        map[uuid.UUID]hold.Hold
	reservations map[uuid.UUID]reservation.Reservation
	assignments  map[uuid.UUID][]reservation.TableAssignment
	idempotency  map[uuid.UUID]reservation.IdempotencyRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:       map[uuid.UUID]venue.Venue{},
		tables:       map[uuid.UUID]venue.Table{},
		holds:        map[uuid.UUID]hold.Hold{},
		reservations: map[uuid.UUID]reservation.Reservation{},
		assignments:  map[uuid.UUID][]reservation.TableAssignment{},
		idempotency:  map[uuid.UUID]reservation.IdempotencyRecord{},
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	cp := newFakeStore()
	for k, v := range s.venues {
		cp.venues[k] = v
	}
	for k, v := range s.tables {
		cp.tables[k] = v
	}
	for k, v := range s.holds {
		cp.holds[k] = v
	}
	for k, v := range s.reservations {
		cp.reservations[k] = v
	}
	for k, v := range s.assignments {
		cp.assignments[k] = append([]reservation.TableAssignment{}, v...)
	}
	for k, v := range s.idempotency {
		cp.idempotency[k] = v
	}
	return cp
}

func (s *fakeStore) restore(from *fakeStore) {
	s.venues = from.venues
	s.tables = from.tables
	s.holds = from.holds
	s.reservations = from.reservations
	s.assignments = from.assignments
	s.idempotency = from.idempotency
}

// fakeTx snapshots the store before fn and restores it when fn fails, so a
// failed operation leaves no partial writes, matching the real transaction.
type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	before := t.store.snapshot()
	if err := fn(ctx); err != nil {
		t.store.restore(before)
		return err
	}
	return nil
}

type fakeVenueRepo struct {
	store *fakeStore
}

func (r *fakeVenueRepo) GetVenue(_ context.Context, id uuid.UUID) (venue.Venue, error) {
	v, ok := r.store.venues[id]
	if !ok {
		return venue.Venue{}, venue.ErrVenueNotFound
	}
	return v, nil
}

func (r *fakeVenueRepo) GetTable(_ context.Context, venueID, tableID uuid.UUID) (venue.Table, error) {
	t, ok := r.store.tables[tableID]
	if !ok || t.VenueID != venueID {
		return venue.Table{}, venue.ErrTableNotFound
	}
	return t, nil
}

func (r *fakeVenueRepo) GetTablesForUpdate(_ context.Context, venueID uuid.UUID, tableIDs []uuid.UUID) ([]venue.Table, error) {
	out := make([]venue.Table, 0, len(tableIDs))
	for _, id := range tableIDs {
		t, ok := r.store.tables[id]
		if !ok || t.VenueID != venueID {
			return nil, venue.ErrTableNotFound
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeVenueRepo) ListTables(_ context.Context, venueID uuid.UUID) ([]venue.Table, error) {
	out := []venue.Table{}
	for _, t := range r.store.tables {
		if t.VenueID == venueID {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeHoldRepo struct {
	store     *fakeStore
	insertErr error
}

func (r *fakeHoldRepo) Insert(_ context.Context, h hold.Hold) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, existing := range r.store.holds {
		if existing.Status == hold.StatusHeld &&
			existing.VenueID == h.VenueID &&
			existing.TableID == h.TableID &&
			existing.SlotStartUTC.Equal(h.SlotStartUTC) {
			// Same outcome the partial unique index produces.
			return hold.ErrSlotConflict
		}
	}
	r.store.holds[h.ID] = h
	return nil
}

func (r *fakeHoldRepo) GetByID(_ context.Context, id uuid.UUID) (hold.Hold, error) {
	h, ok := r.store.holds[id]
	if !ok {
		return hold.Hold{}, hold.ErrNotFound
	}
	return h, nil
}

func (r *fakeHoldRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (hold.Hold, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeHoldRepo) Consume(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	h, ok := r.store.holds[id]
	if !ok || h.Status != hold.StatusHeld || !h.ExpiresAt.After(now) {
		return false, nil
	}
	h.Status = hold.StatusConsumed
	h.UpdatedAt = now
	r.store.holds[id] = h
	return true, nil
}

func (r *fakeHoldRepo) MarkExpired(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	h, ok := r.store.holds[id]
	if !ok || h.Status != hold.StatusHeld || h.ExpiresAt.After(now) {
		return false, nil
	}
	h.Status = hold.StatusExpired
	h.UpdatedAt = now
	r.store.holds[id] = h
	return true, nil
}

func (r *fakeHoldRepo) Cancel(_ context.Context, id uuid.UUID, now time.Time) (bool, error) {
	h, ok := r.store.holds[id]
	if !ok || h.Status != hold.StatusHeld {
		return false, nil
	}
	h.Status = hold.StatusExpired
	h.UpdatedAt = now
	r.store.holds[id] = h
	return true, nil
}

func (r *fakeHoldRepo) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	var swept int64
	for id, h := range r.store.holds {
		if h.Status == hold.StatusHeld && !h.ExpiresAt.After(now) {
			h.Status = hold.StatusExpired
			h.UpdatedAt = now
			r.store.holds[id] = h
			swept++
		}
	}
	return swept, nil
}

// fakeConflictFinder evaluates overlap against the store the way the real
// detector's SQL does: half-open windows for reservations, an implied window
// of the requested length for holds.
type fakeConflictFinder struct {
	store *fakeStore
	err   error
}

func (f *fakeConflictFinder) FindConflicts(_ context.Context, venueID uuid.UUID, tableIDs []uuid.UUID, startUTC, endUTC time.Time) (reservation.Conflicts, error) {
	if f.err != nil {
		return reservation.Conflicts{}, f.err
	}
	wanted := make(map[uuid.UUID]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		wanted[id] = struct{}{}
	}

	found := reservation.Conflicts{
		Reservations: []reservation.ConflictingReservation{},
		Holds:        []reservation.ConflictingHold{},
	}

	for _, res := range f.store.reservations {
		if res.VenueID != venueID || res.Status.Terminal() {
			continue
		}
		resStart, resEnd := res.Window()
		if !reservation.Overlaps(resStart, resEnd, startUTC, endUTC) {
			continue
		}
		for _, a := range f.store.assignments[res.ID] {
			if _, ok := wanted[a.TableID]; ok {
				found.Reservations = append(found.Reservations, reservation.ConflictingReservation{
					ID:       res.ID,
					Code:     res.Code,
					TableID:  a.TableID,
					StartUTC: resStart,
					EndUTC:   resEnd,
				})
			}
		}
	}

	window := endUTC.Sub(startUTC)
	for _, h := range f.store.holds {
		if h.VenueID != venueID || h.Status != hold.StatusHeld {
			continue
		}
		if _, ok := wanted[h.TableID]; !ok {
			continue
		}
		if reservation.Overlaps(h.SlotStartUTC, h.SlotStartUTC.Add(window), startUTC, endUTC) {
			found.Holds = append(found.Holds, reservation.ConflictingHold{
				ID:           h.ID,
				TableID:      h.TableID,
				SlotStartUTC: h.SlotStartUTC,
				ExpiresAt:    h.ExpiresAt,
			})
		}
	}
	return found, nil
}

type fakeReservationRepo struct {
	store *fakeStore
	// codeCollisions simulates confirmation-code uniqueness violations for
	// the next N inserts.
	codeCollisions int
}

func (r *fakeReservationRepo) Insert(_ context.Context, res reservation.Reservation) error {
	if r.codeCollisions > 0 {
		r.codeCollisions--
		return reservation.ErrCodeTaken
	}
	for _, existing := range r.store.reservations {
		if existing.Code == res.Code {
			return reservation.ErrCodeTaken
		}
	}
	res.Tables = nil
	r.store.reservations[res.ID] = res
	return nil
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id uuid.UUID) (reservation.Reservation, error) {
	res, ok := r.store.reservations[id]
	if !ok {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	res.Tables = append([]reservation.TableAssignment{}, r.store.assignments[id]...)
	return res, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to reservation.Status, now time.Time) (bool, error) {
	res, ok := r.store.reservations[id]
	if !ok || res.Status != from {
		return false, nil
	}
	res.Status = to
	res.UpdatedAt = now
	r.store.reservations[id] = res
	return true, nil
}

type fakeAssignmentRepo struct {
	store *fakeStore
}

func (r *fakeAssignmentRepo) ListByReservation(_ context.Context, reservationID uuid.UUID) ([]reservation.TableAssignment, error) {
	return append([]reservation.TableAssignment{}, r.store.assignments[reservationID]...), nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, reservationID uuid.UUID, tableIDs []uuid.UUID) error {
	drop := make(map[uuid.UUID]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		drop[id] = struct{}{}
	}
	kept := []reservation.TableAssignment{}
	for _, a := range r.store.assignments[reservationID] {
		if _, gone := drop[a.TableID]; !gone {
			kept = append(kept, a)
		}
	}
	r.store.assignments[reservationID] = kept
	return nil
}

func (r *fakeAssignmentRepo) Upsert(_ context.Context, reservationID, tableID uuid.UUID, order int) error {
	for i, a := range r.store.assignments[reservationID] {
		if a.TableID == tableID {
			r.store.assignments[reservationID][i].AssignedOrder = order
			return nil
		}
	}
	r.store.assignments[reservationID] = append(r.store.assignments[reservationID],
		reservation.TableAssignment{TableID: tableID, AssignedOrder: order})
	return nil
}

type fakeIdempotencyRepo struct {
	store *fakeStore
	clk   clock.Clock
}

func (r *fakeIdempotencyRepo) Get(_ context.Context, key uuid.UUID) (*reservation.IdempotencyRecord, error) {
	rec, ok := r.store.idempotency[key]
	if !ok || !rec.ExpiresAt.After(r.clk.Now()) {
		return nil, nil
	}
	return &rec, nil
}

func (r *fakeIdempotencyRepo) Insert(_ context.Context, key uuid.UUID, fingerprint string, expiresAt, now time.Time) error {
	if rec, exists := r.store.idempotency[key]; exists && rec.ExpiresAt.After(now) {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "insert idempotency key", errors.New("duplicate key"))
	}
	r.store.idempotency[key] = reservation.IdempotencyRecord{
		Key:                key,
		RequestFingerprint: fingerprint,
		ExpiresAt:          expiresAt,
		CreatedAt:          now,
	}
	return nil
}

func (r *fakeIdempotencyRepo) SetResult(_ context.Context, key, reservationID uuid.UUID) error {
	rec, ok := r.store.idempotency[key]
	if !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "idempotency key missing", errors.New("not found"))
	}
	rec.ReservationID = &reservationID
	r.store.idempotency[key] = rec
	return nil
}
