package hotel

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/config"
	"github.com/hidenkeys/hotelres/room"
)

func testConfig(t *testing.T) config.Config {
	dir := t.TempDir()
	return config.Config{
		DBPath:       filepath.Join(dir, "hotel.db"),
		ExportPath:   filepath.Join(dir, "reservations.xlsx"),
		GormLogLevel: "silent",
	}
}

func open(t *testing.T, cfg config.Config) *Hotel {
	t.Helper()
	h, err := Open(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return h
}

func date(s string) time.Time {
	d, err := booking.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOpen_SeedsInventoryOnce(t *testing.T) {
	cfg := testConfig(t)
	h := open(t, cfg)
	assert.Len(t, h.Rooms(), 13)
	assert.Equal(t, 13, h.AvailableRooms())
	require.NoError(t, h.Close())

	h = open(t, cfg)
	defer h.Close()
	assert.Len(t, h.Rooms(), 13)
}

func TestReopen_RestoresEverything(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	h := open(t, cfg)
	g, err := h.AddGuest(ctx, "Ada Lovelace", "ada@example.com", "555-0100")
	require.NoError(t, err)
	paid, err := h.Book(ctx, g.ID, 201, date("2024-12-01"), date("2024-12-03"))
	require.NoError(t, err)
	_, err = h.Pay(ctx, paid.ID, booking.DebitCard)
	require.NoError(t, err)
	cancelled, err := h.Book(ctx, g.ID, 101, date("2024-12-10"), date("2024-12-11"))
	require.NoError(t, err)
	_, err = h.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)
	require.NoError(t, h.Close())

	h = open(t, cfg)
	defer h.Close()

	require.Len(t, h.Guests(), 1)
	assert.Equal(t, *g, *h.Guests()[0])

	got, err := h.Reservation(paid.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Confirmed, got.Status)
	assert.Equal(t, 400.0, got.TotalAmount)
	assert.True(t, got.PaymentCompleted)
	assert.Equal(t, booking.DebitCard, got.PaymentMethod)
	assert.NotEmpty(t, got.PaymentRef)
	assert.Same(t, h.Guests()[0], got.Guest)

	r201, err := h.Room(201)
	require.NoError(t, err)
	assert.Same(t, r201, got.Room)
	assert.False(t, r201.Available)

	got, err = h.Reservation(cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.Cancelled, got.Status)
	r101, err := h.Room(101)
	require.NoError(t, err)
	assert.True(t, r101.Available)
}

// corruptSnapshot overwrites a stored collection with bytes that do not
// decode, as a damaged file would.
func corruptSnapshot(t *testing.T, path, name string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	result := db.Exec("UPDATE snapshots SET data = ? WHERE name = ?", "not json", name)
	require.NoError(t, result.Error)
	require.EqualValues(t, 1, result.RowsAffected)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestReopen_LostRoomsKeepBookedRoomTaken(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	h := open(t, cfg)
	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	_, err = h.Book(ctx, g.ID, 101, date("2024-12-01"), date("2024-12-04"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	corruptSnapshot(t, cfg.DBPath, "rooms")

	h = open(t, cfg)
	r101, err := h.Room(101)
	require.NoError(t, err)
	assert.False(t, r101.Available)
	assert.Equal(t, 12, h.AvailableRooms())

	_, err = h.Book(ctx, g.ID, 101, date("2024-12-10"), date("2024-12-11"))
	assert.ErrorIs(t, err, apperror.ErrRoomUnavailable)
	require.NoError(t, h.Close())

	h = open(t, cfg)
	defer h.Close()
	r101, err = h.Room(101)
	require.NoError(t, err)
	assert.False(t, r101.Available)
}

func TestReopen_LostReservationsFreeRooms(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	h := open(t, cfg)
	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	_, err = h.Book(ctx, g.ID, 101, date("2024-12-01"), date("2024-12-04"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	corruptSnapshot(t, cfg.DBPath, "reservations")

	h = open(t, cfg)
	defer h.Close()
	assert.Empty(t, h.Reservations())
	assert.Equal(t, 13, h.AvailableRooms())
}

func TestBook_UnknownGuestOrRoom(t *testing.T) {
	ctx := context.Background()
	h := open(t, testConfig(t))
	defer h.Close()

	_, err := h.Book(ctx, "G1", 101, date("2024-12-01"), date("2024-12-02"))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	_, err = h.Book(ctx, g.ID, 999, date("2024-12-01"), date("2024-12-02"))
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestSearchRooms_ExcludesBooked(t *testing.T) {
	ctx := context.Background()
	h := open(t, testConfig(t))
	defer h.Close()

	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	_, err = h.Book(ctx, g.ID, 301, date("2024-12-01"), date("2024-12-02"))
	require.NoError(t, err)

	suites := h.SearchRooms(room.Suite)
	require.Len(t, suites, 2)
	assert.Equal(t, 302, suites[0].Number)
	assert.Len(t, h.SearchRooms(room.AnyCategory), 12)
}

func TestExport_DefaultPath(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	h := open(t, cfg)
	defer h.Close()

	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	_, err = h.Book(ctx, g.ID, 101, date("2024-12-01"), date("2024-12-04"))
	require.NoError(t, err)

	path, err := h.Export("")
	require.NoError(t, err)
	assert.Equal(t, cfg.ExportPath, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Reservations")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	h := open(t, testConfig(t))
	defer h.Close()

	g, err := h.AddGuest(ctx, "Ada", "ada@example.com", "1")
	require.NoError(t, err)
	res, err := h.Book(ctx, g.ID, 101, date("2024-12-01"), date("2024-12-04"))
	require.NoError(t, err)
	_, err = h.Pay(ctx, res.ID, booking.Cash)
	require.NoError(t, err)
	_, err = h.CheckOut(ctx, res.ID)
	require.NoError(t, err)

	s := h.Summary()
	assert.Equal(t, 1, s.Bookings)
	assert.Equal(t, 1, s.ByStatus[booking.Completed])
	assert.Equal(t, 300.0, s.Revenue)
	assert.Equal(t, 300.0, s.ByMethod[booking.Cash])
	assert.Equal(t, 13, s.AvailableRooms)
}
