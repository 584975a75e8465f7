package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/room"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	// Pending exists in the lifecycle but no operation produces it yet:
	// Book confirms immediately.
	Pending   Status = "PENDING"
	Confirmed Status = "CONFIRMED"
	Cancelled Status = "CANCELLED"
	Completed Status = "COMPLETED"
)

// PaymentMethod is how a reservation was settled.
type PaymentMethod string

const (
	CreditCard PaymentMethod = "Credit Card"
	DebitCard  PaymentMethod = "Debit Card"
	Cash       PaymentMethod = "Cash"
)

// PaymentMethods lists accepted methods in menu order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{CreditCard, DebitCard, Cash}
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case CreditCard, DebitCard, Cash:
		return true
	}
	return false
}

// Reservation is a booking of one room by one guest for a date range.
// Guest and Room point at the records held by the guest directory and the
// room catalog; they are fixed at creation.
type Reservation struct {
	ID               string
	Guest            *guest.Guest
	Room             *room.Room
	CheckIn          time.Time
	CheckOut         time.Time
	Status           Status
	TotalAmount      float64
	PaymentCompleted bool
	PaymentMethod    PaymentMethod
	PaymentRef       string
	CreatedAt        time.Time
}

// Nights is the billed number of nights.
func (r *Reservation) Nights() int {
	return nights(r.CheckIn, r.CheckOut)
}

func (r *Reservation) String() string {
	payment := "Pending"
	if r.PaymentCompleted {
		payment = "Completed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reservation ID: %s\n", r.ID)
	fmt.Fprintf(&b, "Guest: %s\n", r.Guest.Name)
	fmt.Fprintf(&b, "Room: %d (%s)\n", r.Room.Number, r.Room.Category)
	fmt.Fprintf(&b, "Check-in: %s\n", r.CheckIn.Format(time.DateOnly))
	fmt.Fprintf(&b, "Check-out: %s\n", r.CheckOut.Format(time.DateOnly))
	fmt.Fprintf(&b, "Total: $%.2f\n", r.TotalAmount)
	fmt.Fprintf(&b, "Status: %s\n", r.Status)
	fmt.Fprintf(&b, "Payment: %s", payment)
	if r.PaymentCompleted && r.PaymentMethod != "" {
		fmt.Fprintf(&b, " (%s)", r.PaymentMethod)
	}
	return b.String()
}

// Record is the persisted form of a reservation. Guest and room are stored
// by key and re-resolved on load.
type Record struct {
	ID               string        `json:"id"`
	GuestID          string        `json:"guestId"`
	RoomNumber       int           `json:"roomNumber"`
	CheckIn          time.Time     `json:"checkIn"`
	CheckOut         time.Time     `json:"checkOut"`
	Status           Status        `json:"status"`
	TotalAmount      float64       `json:"totalAmount"`
	PaymentCompleted bool          `json:"paymentCompleted"`
	PaymentMethod    PaymentMethod `json:"paymentMethod,omitempty"`
	PaymentRef       string        `json:"paymentRef,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

func (r *Reservation) record() Record {
	return Record{
		ID:               r.ID,
		GuestID:          r.Guest.ID,
		RoomNumber:       r.Room.Number,
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		Status:           r.Status,
		TotalAmount:      r.TotalAmount,
		PaymentCompleted: r.PaymentCompleted,
		PaymentMethod:    r.PaymentMethod,
		PaymentRef:       r.PaymentRef,
		CreatedAt:        r.CreatedAt,
	}
}
