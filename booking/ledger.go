package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/ident"
	"github.com/hidenkeys/hotelres/room"
	"github.com/hidenkeys/hotelres/storage"
	"go.uber.org/zap"
)

const idPrefix = "RES"

// GuestLookup resolves persisted guest ids.
type GuestLookup interface {
	Find(id string) (*guest.Guest, error)
}

// Ledger is the in-memory list of reservations. Every mutating call writes
// the reservations (and the rooms, when availability changed) in a single
// save; if that save fails the in-memory change is undone and the error is
// returned. A Ledger is not safe for concurrent use.
type Ledger struct {
	reservations []*Reservation
	catalog      *room.Catalog
	store        storage.Saver
	payments     PaymentProcessor
	ids          *ident.Generator
	now          func() time.Time
	log          *zap.Logger
}

func NewLedger(catalog *room.Catalog, store storage.Saver, payments PaymentProcessor, log *zap.Logger) *Ledger {
	return &Ledger{
		catalog:  catalog,
		store:    store,
		payments: payments,
		ids:      ident.New(idPrefix),
		now:      time.Now,
		log:      log,
	}
}

// WithClock replaces the time source for ids and timestamps.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	l.ids.WithClock(now)
	return l
}

// Restore rebuilds the ledger from persisted records. Records whose guest
// or room no longer resolves are logged and dropped. Room availability is
// then made to agree with the restored reservations: a room is unavailable
// exactly when a pending or confirmed reservation holds it. If that changed
// any room, the rooms are saved. It returns how many records were dropped.
func (l *Ledger) Restore(ctx context.Context, records []Record, guests GuestLookup) (int, error) {
	dropped := 0
	for _, rec := range records {
		g, err := guests.Find(rec.GuestID)
		if err != nil {
			l.log.Warn("dropping reservation with unknown guest",
				zap.String("reservation_id", rec.ID), zap.String("guest_id", rec.GuestID))
			dropped++
			continue
		}
		r, err := l.catalog.Get(rec.RoomNumber)
		if err != nil {
			l.log.Warn("dropping reservation with unknown room",
				zap.String("reservation_id", rec.ID), zap.Int("room", rec.RoomNumber))
			dropped++
			continue
		}

		res := &Reservation{
			ID:               rec.ID,
			Guest:            g,
			Room:             r,
			CheckIn:          rec.CheckIn,
			CheckOut:         rec.CheckOut,
			Status:           rec.Status,
			TotalAmount:      rec.TotalAmount,
			PaymentCompleted: rec.PaymentCompleted,
			PaymentMethod:    rec.PaymentMethod,
			PaymentRef:       rec.PaymentRef,
			CreatedAt:        rec.CreatedAt,
		}
		l.reservations = append(l.reservations, res)
		l.ids.Observe(res.ID)
	}

	if l.reconcileRooms() > 0 {
		if err := l.store.Save(ctx, l.catalog.Snapshot()); err != nil {
			return dropped, fmt.Errorf("save reconciled rooms: %w", err)
		}
	}
	return dropped, nil
}

// reconcileRooms sets every room's availability from the reservations that
// hold it and returns how many rooms changed.
func (l *Ledger) reconcileRooms() int {
	held := make(map[*room.Room]string)
	for _, res := range l.reservations {
		if holdsRoom(res.Status) {
			held[res.Room] = res.ID
		}
	}

	changed := 0
	for _, r := range l.catalog.ListAll() {
		id, taken := held[r]
		if r.Available != taken {
			continue
		}
		l.log.Warn("room availability disagrees with reservations, correcting",
			zap.Int("room", r.Number), zap.Bool("available", !taken), zap.String("reservation_id", id))
		l.catalog.SetAvailability(r, !taken)
		changed++
	}
	return changed
}

// Book creates a confirmed reservation for g in r and marks r unavailable.
// checkIn and checkOut are reduced to calendar dates first.
func (l *Ledger) Book(ctx context.Context, g *guest.Guest, r *room.Room, checkIn, checkOut time.Time) (*Reservation, error) {
	if g == nil || r == nil {
		return nil, fmt.Errorf("%w: a guest and a room are required", apperror.ErrValidation)
	}

	checkIn, checkOut = Date(checkIn), Date(checkOut)
	if !checkOut.After(checkIn) {
		return nil, apperror.ErrInvalidDateRange
	}
	if !r.Available {
		return nil, fmt.Errorf("room %d: %w", r.Number, apperror.ErrRoomUnavailable)
	}

	_, total := Quote(r.Category, checkIn, checkOut)
	res := &Reservation{
		ID:          l.ids.Next(),
		Guest:       g,
		Room:        r,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      Confirmed,
		TotalAmount: total,
		CreatedAt:   l.now().UTC(),
	}

	l.catalog.SetAvailability(r, false)
	l.reservations = append(l.reservations, res)

	if err := l.persist(ctx, true); err != nil {
		l.reservations = l.reservations[:len(l.reservations)-1]
		l.catalog.SetAvailability(r, true)
		return nil, fmt.Errorf("book room %d: %w", r.Number, err)
	}

	l.log.Info("reservation confirmed",
		zap.String("reservation_id", res.ID),
		zap.String("guest_id", g.ID),
		zap.Int("room", r.Number),
		zap.Int("nights", res.Nights()),
		zap.Float64("total", res.TotalAmount))
	return res, nil
}

// Find returns the first reservation whose id matches, ignoring case and
// surrounding whitespace.
func (l *Ledger) Find(id string) (*Reservation, error) {
	id = strings.TrimSpace(id)
	for _, res := range l.reservations {
		if strings.EqualFold(res.ID, id) {
			return res, nil
		}
	}
	return nil, fmt.Errorf("reservation %q: %w", id, apperror.ErrNotFound)
}

// List returns reservations in creation order.
func (l *Ledger) List() []*Reservation {
	out := make([]*Reservation, len(l.reservations))
	copy(out, l.reservations)
	return out
}

// Cancel cancels the reservation and frees its room. The caller is
// expected to have confirmed the intent. For a reservation that is already
// cancelled or completed it returns the reservation unchanged together with
// ErrAlreadyCancelled or ErrAlreadyCompleted.
func (l *Ledger) Cancel(ctx context.Context, id string) (*Reservation, error) {
	res, err := l.Find(id)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case Cancelled:
		return res, fmt.Errorf("reservation %s: %w", res.ID, apperror.ErrAlreadyCancelled)
	case Completed:
		return res, fmt.Errorf("reservation %s: %w", res.ID, apperror.ErrAlreadyCompleted)
	}

	prev := res.Status
	res.Status = Cancelled
	l.catalog.SetAvailability(res.Room, true)

	if err := l.persist(ctx, true); err != nil {
		res.Status = prev
		l.catalog.SetAvailability(res.Room, false)
		return nil, fmt.Errorf("cancel %s: %w", res.ID, err)
	}

	l.log.Info("reservation cancelled", zap.String("reservation_id", res.ID), zap.Int("room", res.Room.Number))
	return res, nil
}

// Pay settles the total amount through the payment processor. A cancelled
// reservation cannot be paid. A reservation that is already paid is
// returned as is with ErrAlreadyPaid, without charging again.
func (l *Ledger) Pay(ctx context.Context, id string, method PaymentMethod) (*Reservation, error) {
	res, err := l.Find(id)
	if err != nil {
		return nil, err
	}

	if res.Status == Cancelled {
		return res, fmt.Errorf("cannot pay %s: %w", res.ID, apperror.ErrAlreadyCancelled)
	}
	if res.PaymentCompleted {
		return res, fmt.Errorf("reservation %s: %w", res.ID, apperror.ErrAlreadyPaid)
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", apperror.ErrValidation, method)
	}

	ref, err := l.payments.Process(ctx, res, method)
	if err != nil {
		return nil, fmt.Errorf("process payment for %s: %w", res.ID, err)
	}

	res.PaymentCompleted = true
	res.PaymentMethod = method
	res.PaymentRef = ref

	if err := l.persist(ctx, false); err != nil {
		res.PaymentCompleted = false
		res.PaymentMethod = ""
		res.PaymentRef = ""
		return nil, fmt.Errorf("record payment for %s: %w", res.ID, err)
	}

	l.log.Info("payment completed",
		zap.String("reservation_id", res.ID),
		zap.String("method", string(method)),
		zap.String("payment_ref", ref),
		zap.Float64("amount", res.TotalAmount))
	return res, nil
}

// CheckOut completes a confirmed stay and frees its room.
func (l *Ledger) CheckOut(ctx context.Context, id string) (*Reservation, error) {
	res, err := l.Find(id)
	if err != nil {
		return nil, err
	}

	switch res.Status {
	case Cancelled:
		return res, fmt.Errorf("reservation %s: %w", res.ID, apperror.ErrAlreadyCancelled)
	case Completed:
		return res, fmt.Errorf("reservation %s: %w", res.ID, apperror.ErrAlreadyCompleted)
	case Pending:
		return res, fmt.Errorf("%w: reservation %s is not confirmed", apperror.ErrValidation, res.ID)
	}

	res.Status = Completed
	l.catalog.SetAvailability(res.Room, true)

	if err := l.persist(ctx, true); err != nil {
		res.Status = Confirmed
		l.catalog.SetAvailability(res.Room, false)
		return nil, fmt.Errorf("check out %s: %w", res.ID, err)
	}

	l.log.Info("checked out", zap.String("reservation_id", res.ID), zap.Int("room", res.Room.Number))
	return res, nil
}

// Snapshot is the reservations collection as the gateway stores it.
func (l *Ledger) Snapshot() storage.Snapshot {
	items := make([]Record, len(l.reservations))
	for i, res := range l.reservations {
		items[i] = res.record()
	}
	return storage.Snapshot{Name: storage.Reservations, Items: items}
}

func (l *Ledger) persist(ctx context.Context, withRooms bool) error {
	snapshots := []storage.Snapshot{l.Snapshot()}
	if withRooms {
		snapshots = append(snapshots, l.catalog.Snapshot())
	}
	return l.store.Save(ctx, snapshots...)
}

func holdsRoom(s Status) bool {
	return s == Pending || s == Confirmed
}
