package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/room"
)

func sample() ([]*booking.Reservation, []*room.Room) {
	ada := &guest.Guest{ID: "G1", Name: "Ada", Email: "ada@example.com", Phone: "555"}
	rooms := []*room.Room{
		{Number: 101, Category: room.Standard, Capacity: 2, Available: false},
		{Number: 201, Category: room.Deluxe, Capacity: 3, Available: true},
		{Number: 301, Category: room.Suite, Capacity: 4, Available: true},
	}
	in := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	reservations := []*booking.Reservation{
		{ID: "RES1", Guest: ada, Room: rooms[0], CheckIn: in, CheckOut: in.AddDate(0, 0, 3),
			Status: booking.Confirmed, TotalAmount: 300},
		{ID: "RES2", Guest: ada, Room: rooms[1], CheckIn: in, CheckOut: in.AddDate(0, 0, 1),
			Status: booking.Cancelled, TotalAmount: 200, PaymentCompleted: true, PaymentMethod: booking.Cash},
		{ID: "RES3", Guest: ada, Room: rooms[2], CheckIn: in, CheckOut: in.AddDate(0, 0, 2),
			Status: booking.Completed, TotalAmount: 700, PaymentCompleted: true, PaymentMethod: booking.CreditCard},
		{ID: "RES4", Guest: ada, Room: rooms[1], CheckIn: in, CheckOut: in.AddDate(0, 0, 1),
			Status: booking.Cancelled, TotalAmount: 200},
	}
	return reservations, rooms
}

func TestSummarize(t *testing.T) {
	reservations, rooms := sample()

	s := Summarize(reservations, rooms)

	assert.Equal(t, 4, s.Bookings)
	assert.Equal(t, 900.0, s.Revenue)
	assert.Equal(t, 300.0, s.Outstanding)
	assert.Equal(t, 200.0, s.ByMethod[booking.Cash])
	assert.Equal(t, 700.0, s.ByMethod[booking.CreditCard])
	assert.Zero(t, s.ByMethod[booking.DebitCard])
	assert.Equal(t, 1, s.ByStatus[booking.Confirmed])
	assert.Equal(t, 2, s.ByStatus[booking.Cancelled])
	assert.Equal(t, 1, s.ByStatus[booking.Completed])
	assert.Equal(t, 2, s.AvailableRooms)
	assert.Equal(t, 3, s.TotalRooms)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)

	assert.Zero(t, s.Bookings)
	assert.Zero(t, s.Revenue)
	assert.NotNil(t, s.ByStatus)
	assert.NotNil(t, s.ByMethod)
}

func TestExportXLSX(t *testing.T) {
	reservations, rooms := sample()
	path := filepath.Join(t.TempDir(), "reservations.xlsx")

	require.NoError(t, ExportXLSX(path, reservations, Summarize(reservations, rooms)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, len(reservations)+1)
	assert.Equal(t, headers, rows[0])
	assert.Equal(t, "RES1", rows[1][0])
	assert.Equal(t, "Ada", rows[1][1])
	assert.Equal(t, "101", rows[1][4])
	assert.Equal(t, "2024-12-01", rows[1][6])
	assert.Equal(t, "2024-12-04", rows[1][7])
	assert.Equal(t, "CANCELLED", rows[2][10])
	assert.Equal(t, "Cash", rows[2][12])

	bookings, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "4", bookings)
	revenue, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "900", revenue)
}
