package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/room"
)

func (s *Shell) SearchRooms(ctx context.Context) error {
	s.banner("SEARCH AVAILABLE ROOMS")

	filter := room.AnyCategory
	yes, err := s.confirm("Filter by category? (Y/N): ")
	if err != nil {
		return err
	}
	if yes {
		categories := room.Categories()
		s.println("\nSelect category:")
		for i, c := range categories {
			s.printf("%d. %s ($%.2f/night)\n", i+1, c, c.Rate())
		}
		i, err := s.choose("Enter choice: ", len(categories))
		switch {
		case err == nil:
			filter = categories[i]
		case errors.Is(err, apperror.ErrValidation):
			s.println("Invalid choice. Showing all categories.")
		default:
			return err
		}
	}

	s.println("\nAvailable Rooms:")
	s.rule(70)
	rooms := s.front.SearchRooms(filter)
	for _, r := range rooms {
		s.println(r)
	}
	if len(rooms) == 0 {
		s.println("No available rooms found.")
	}
	s.rule(70)
	return nil
}

func (s *Shell) BookRoom(ctx context.Context) error {
	s.banner("BOOK A ROOM")

	g, err := s.selectGuest(ctx)
	if err != nil {
		return fmt.Errorf("booking cancelled: %w", err)
	}

	rooms := s.front.SearchRooms(room.AnyCategory)
	if len(rooms) == 0 {
		s.println("No rooms available.")
		return nil
	}
	s.println("\nAvailable Rooms:")
	s.rule(70)
	for i, r := range rooms {
		s.printf("%d. %s\n", i+1, r)
	}
	s.rule(70)

	i, err := s.choose(fmt.Sprintf("\nSelect room number (1-%d): ", len(rooms)), len(rooms))
	if err != nil {
		return err
	}
	selected := rooms[i]

	in, err := s.ask("Check-in date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}
	checkIn, err := booking.ParseDate(in)
	if err != nil {
		return err
	}
	out, err := s.ask("Check-out date (yyyy-MM-dd): ")
	if err != nil {
		return err
	}
	checkOut, err := booking.ParseDate(out)
	if err != nil {
		return err
	}

	res, err := s.front.Book(ctx, g.ID, selected.Number, checkIn, checkOut)
	if err != nil {
		return err
	}

	s.banner("RESERVATION CREATED SUCCESSFULLY!")
	s.println(res)
	s.println(separator)
	return nil
}

// selectGuest picks an existing guest or registers a new one. With no
// guests on file it goes straight to registration.
func (s *Shell) selectGuest(ctx context.Context) (*guest.Guest, error) {
	s.println("\nGuest Information:")
	s.println("1. Existing Guest")
	s.println("2. New Guest")
	choice, err := s.choose("Enter choice (1 or 2): ", 2)
	if err != nil {
		return nil, err
	}
	if choice == 1 {
		return s.registerGuest(ctx)
	}

	guests := s.front.Guests()
	if len(guests) == 0 {
		s.println("No existing guests found. Please create a new guest.")
		return s.registerGuest(ctx)
	}

	s.println("\nExisting Guests:")
	s.rule(70)
	for i, g := range guests {
		s.printf("%d. %s\n", i+1, g)
	}
	s.rule(70)
	i, err := s.choose(fmt.Sprintf("Select guest (1-%d): ", len(guests)), len(guests))
	if err != nil {
		return nil, err
	}
	return guests[i], nil
}

func (s *Shell) registerGuest(ctx context.Context) (*guest.Guest, error) {
	s.println("\nEnter Guest Details:")
	name, err := s.ask("Name: ")
	if err != nil {
		return nil, err
	}
	email, err := s.ask("Email: ")
	if err != nil {
		return nil, err
	}
	phone, err := s.ask("Phone: ")
	if err != nil {
		return nil, err
	}

	g, err := s.front.AddGuest(ctx, name, email, phone)
	if err != nil {
		return nil, err
	}
	s.println("\nGuest added successfully!")
	s.println(g)
	return g, nil
}

func (s *Shell) ListReservations(ctx context.Context) error {
	s.banner("ALL RESERVATIONS")

	reservations := s.front.Reservations()
	if len(reservations) == 0 {
		s.println("No reservations found.")
		return nil
	}
	for i, res := range reservations {
		s.printf("\nReservation #%d\n", i+1)
		s.rule(50)
		s.println(res)
	}
	s.println(separator)
	return nil
}

func (s *Shell) ViewReservation(ctx context.Context) error {
	s.banner("VIEW BOOKING DETAILS")

	id, err := s.ask("Enter Reservation ID: ")
	if err != nil {
		return err
	}
	res, err := s.front.Reservation(id)
	if err != nil {
		return err
	}

	s.printf("\n%s\n", separator)
	s.println(res)
	s.println(separator)
	return nil
}

func (s *Shell) CancelReservation(ctx context.Context) error {
	s.banner("CANCEL RESERVATION")

	id, err := s.ask("Enter Reservation ID to cancel: ")
	if err != nil {
		return err
	}
	res, err := s.front.Reservation(id)
	if err != nil {
		return err
	}
	// Checked again by Cancel; this only spares a pointless confirmation.
	switch res.Status {
	case booking.Cancelled:
		s.println("This reservation is already cancelled.")
		return nil
	case booking.Completed:
		s.println("This stay has already been checked out and cannot be cancelled.")
		return nil
	}

	s.println("\nReservation Details:")
	s.println(res)
	yes, err := s.confirm("\nAre you sure you want to cancel? (Y/N): ")
	if err != nil {
		return err
	}
	if !yes {
		s.println("Cancellation aborted.")
		return nil
	}

	_, err = s.front.Cancel(ctx, res.ID)
	switch {
	case errors.Is(err, apperror.ErrAlreadyCancelled):
		s.println("This reservation is already cancelled.")
		return nil
	case errors.Is(err, apperror.ErrAlreadyCompleted):
		s.println("This stay has already been checked out and cannot be cancelled.")
		return nil
	case err != nil:
		return err
	}
	s.println("\nReservation cancelled successfully!")
	return nil
}

func (s *Shell) ProcessPayment(ctx context.Context) error {
	s.banner("PROCESS PAYMENT")

	id, err := s.ask("Enter Reservation ID: ")
	if err != nil {
		return err
	}
	res, err := s.front.Reservation(id)
	if err != nil {
		return err
	}

	s.println("\n--- Payment Details ---")
	s.printf("Total Amount: $%.2f\n", res.TotalAmount)
	s.println("\nPayment Methods:")
	methods := booking.PaymentMethods()
	for i, m := range methods {
		s.printf("%d. %s\n", i+1, m)
	}
	i, err := s.choose(fmt.Sprintf("Select payment method (1-%d): ", len(methods)), len(methods))
	if err != nil {
		return err
	}

	s.println("\nProcessing payment...")
	payCtx, stop := s.interruptible(ctx)
	paid, err := s.front.Pay(payCtx, res.ID, methods[i])
	stop()
	switch {
	case errors.Is(err, context.Canceled):
		s.println("Payment cancelled.")
		return nil
	case errors.Is(err, apperror.ErrAlreadyCancelled):
		s.println("Cannot process payment for cancelled reservation.")
		return nil
	case errors.Is(err, apperror.ErrAlreadyPaid):
		s.println("Payment already completed for this reservation.")
		s.printf("Amount Paid: $%.2f\n", res.TotalAmount)
		return nil
	case err != nil:
		return err
	}
	res = paid

	s.banner("PAYMENT SUCCESSFUL!")
	s.printf("Amount Paid: $%.2f\n", res.TotalAmount)
	s.printf("Payment Method: %s\n", res.PaymentMethod)
	s.printf("Payment Reference: %s\n", res.PaymentRef)
	s.printf("Reservation Status: %s\n", res.Status)
	s.println(separator)
	return nil
}

func (s *Shell) AddGuest(ctx context.Context) error {
	s.banner("ADD NEW GUEST")
	_, err := s.registerGuest(ctx)
	return err
}

func (s *Shell) ListRooms(ctx context.Context) error {
	s.banner("ALL ROOMS")

	rooms := s.front.Rooms()
	s.rule(70)
	for _, r := range rooms {
		s.println(r)
	}
	s.rule(70)

	available := s.front.AvailableRooms()
	s.printf("\nTotal Rooms: %d | Available: %d | Occupied: %d\n", len(rooms), available, len(rooms)-available)
	return nil
}

func (s *Shell) CheckOut(ctx context.Context) error {
	s.banner("CHECK OUT")

	id, err := s.ask("Enter Reservation ID: ")
	if err != nil {
		return err
	}
	res, err := s.front.CheckOut(ctx, id)
	if err != nil {
		return err
	}
	s.printf("\nChecked out %s. Room %d is available again.\n", res.ID, res.Room.Number)
	if !res.PaymentCompleted {
		s.printf("Outstanding balance: $%.2f\n", res.TotalAmount)
	}
	return nil
}

func (s *Shell) ShowSummary(ctx context.Context) error {
	s.banner("BOOKING SUMMARY")

	sum := s.front.Summary()
	s.printf("Total Bookings: %d\n", sum.Bookings)
	for _, st := range []booking.Status{booking.Confirmed, booking.Cancelled, booking.Completed} {
		s.printf("  %-10s %d\n", st, sum.ByStatus[st])
	}
	s.printf("Revenue: $%.2f\n", sum.Revenue)
	for _, m := range booking.PaymentMethods() {
		s.printf("  %-12s $%.2f\n", m, sum.ByMethod[m])
	}
	s.printf("Outstanding: $%.2f\n", sum.Outstanding)
	s.printf("Rooms Available: %d of %d\n", sum.AvailableRooms, sum.TotalRooms)
	s.println(separator)
	return nil
}

func (s *Shell) Export(ctx context.Context) error {
	s.banner("EXPORT RESERVATIONS")

	path, err := s.ask("File path (blank for default): ")
	if err != nil {
		return err
	}
	written, err := s.front.Export(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	s.printf("Exported %d reservations to %s\n", len(s.front.Reservations()), written)
	return nil
}

func (s *Shell) Exit(context.Context) error {
	return ErrExit
}
