// Package hotel owns the running state of the reservation manager: the
// room catalog, the guest directory, the reservation ledger and the
// storage gateway behind them. One Hotel is opened at start-up and every
// front-desk operation goes through it.
package hotel

import (
	"context"
	"fmt"
	"time"

	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/config"
	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/report"
	"github.com/hidenkeys/hotelres/room"
	"github.com/hidenkeys/hotelres/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type Hotel struct {
	db         *storage.Gateway
	rooms      *room.Catalog
	guests     *guest.Directory
	ledger     *booking.Ledger
	exportPath string
	log        *zap.Logger
}

// Open connects to the database, loads the three collections, seeds the
// room inventory on first run and re-links stored reservations to their
// guests and rooms.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Hotel, error) {
	level, err := cfg.GormLevel()
	if err != nil {
		return nil, err
	}
	db, err := storage.ConnectDB(cfg.DBPath, level, log)
	if err != nil {
		return nil, err
	}

	h := &Hotel{db: db, exportPath: cfg.ExportPath, log: log}

	h.rooms = room.NewCatalog(storage.LoadCollection[room.Room](ctx, db, storage.Rooms), db, log)
	if err := h.rooms.Seed(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("seed rooms: %w", err), db.Close())
	}

	h.guests = guest.NewDirectory(storage.LoadCollection[guest.Guest](ctx, db, storage.Guests), db, log)

	h.ledger = booking.NewLedger(h.rooms, db, booking.SimulatedProcessor{Delay: cfg.PaymentDelay}, log)
	records := storage.LoadCollection[booking.Record](ctx, db, storage.Reservations)
	dropped, err := h.ledger.Restore(ctx, records, h.guests)
	if err != nil {
		log.Error("could not save corrected room availability", zap.Error(err))
	}
	if dropped > 0 {
		log.Warn("some stored reservations could not be restored", zap.Int("dropped", dropped))
	}

	log.Info("hotel opened",
		zap.Int("rooms", len(h.rooms.ListAll())),
		zap.Int("guests", len(h.guests.List())),
		zap.Int("reservations", len(h.ledger.List())))
	return h, nil
}

func (h *Hotel) Close() error { return h.db.Close() }

// SearchRooms lists available rooms, optionally restricted to a category.
func (h *Hotel) SearchRooms(filter room.Category) []*room.Room {
	return h.rooms.ListAvailable(filter)
}

func (h *Hotel) Rooms() []*room.Room { return h.rooms.ListAll() }

func (h *Hotel) Room(number int) (*room.Room, error) { return h.rooms.Get(number) }

func (h *Hotel) AvailableRooms() int { return h.rooms.CountAvailable() }

func (h *Hotel) AddGuest(ctx context.Context, name, email, phone string) (*guest.Guest, error) {
	return h.guests.Register(ctx, name, email, phone)
}

func (h *Hotel) Guests() []*guest.Guest { return h.guests.List() }

func (h *Hotel) Guest(id string) (*guest.Guest, error) { return h.guests.Find(id) }

// Book reserves room roomNumber for the guest with guestID.
func (h *Hotel) Book(ctx context.Context, guestID string, roomNumber int, checkIn, checkOut time.Time) (*booking.Reservation, error) {
	g, err := h.guests.Find(guestID)
	if err != nil {
		return nil, err
	}
	r, err := h.rooms.Get(roomNumber)
	if err != nil {
		return nil, err
	}
	return h.ledger.Book(ctx, g, r, checkIn, checkOut)
}

func (h *Hotel) Reservations() []*booking.Reservation { return h.ledger.List() }

func (h *Hotel) Reservation(id string) (*booking.Reservation, error) { return h.ledger.Find(id) }

// Cancel is called once the user has confirmed the cancellation.
func (h *Hotel) Cancel(ctx context.Context, id string) (*booking.Reservation, error) {
	return h.ledger.Cancel(ctx, id)
}

func (h *Hotel) Pay(ctx context.Context, id string, method booking.PaymentMethod) (*booking.Reservation, error) {
	return h.ledger.Pay(ctx, id, method)
}

func (h *Hotel) CheckOut(ctx context.Context, id string) (*booking.Reservation, error) {
	return h.ledger.CheckOut(ctx, id)
}

func (h *Hotel) Summary() report.Summary {
	return report.Summarize(h.ledger.List(), h.rooms.ListAll())
}

// Export writes every reservation and the summary to an XLSX workbook at
// path, or at the configured export path when path is empty. It returns
// the path written.
func (h *Hotel) Export(path string) (string, error) {
	if path == "" {
		path = h.exportPath
	}
	if err := report.ExportXLSX(path, h.ledger.List(), h.Summary()); err != nil {
		return "", err
	}
	h.log.Info("reservations exported", zap.String("path", path))
	return path, nil
}
