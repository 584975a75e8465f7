package report

import (
	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/room"
)

// Summary is the money and occupancy picture at a point in time.
type Summary struct {
	Bookings       int
	ByStatus       map[booking.Status]int
	Revenue        float64
	Outstanding    float64
	ByMethod       map[booking.PaymentMethod]float64
	AvailableRooms int
	TotalRooms     int
}

// Summarize walks every reservation once. Revenue counts paid reservations
// whatever their status, since a cancellation does not refund. Outstanding
// is what confirmed or completed stays still owe.
func Summarize(reservations []*booking.Reservation, rooms []*room.Room) Summary {
	s := Summary{
		Bookings:   len(reservations),
		ByStatus:   map[booking.Status]int{},
		ByMethod:   map[booking.PaymentMethod]float64{},
		TotalRooms: len(rooms),
	}

	for _, r := range reservations {
		s.ByStatus[r.Status]++
		switch {
		case r.PaymentCompleted:
			s.Revenue += r.TotalAmount
			s.ByMethod[r.PaymentMethod] += r.TotalAmount
		case r.Status != booking.Cancelled:
			s.Outstanding += r.TotalAmount
		}
	}

	for _, r := range rooms {
		if r.Available {
			s.AvailableRooms++
		}
	}
	return s
}
