package main

import "github.com/hidenkeys/hotelres/shell"

// menuRoutes lays out the front-desk menu. Keys 1-9 keep their historical
// meaning; later additions go after Exit.
func menuRoutes(sh *shell.Shell) {
	sh.Handle("1", "Search Available Rooms", sh.SearchRooms)
	sh.Handle("2", "Book a Room", sh.BookRoom)
	sh.Handle("3", "View All Reservations", sh.ListReservations)
	sh.Handle("4", "View Booking Details", sh.ViewReservation)
	sh.Handle("5", "Cancel Reservation", sh.CancelReservation)
	sh.Handle("6", "Process Payment", sh.ProcessPayment)
	sh.Handle("7", "Add Guest", sh.AddGuest)
	sh.Handle("8", "View All Rooms", sh.ListRooms)
	sh.Handle("9", "Exit", sh.Exit)
	sh.Handle("10", "Check Out", sh.CheckOut)
	sh.Handle("11", "Booking Summary", sh.ShowSummary)
	sh.Handle("12", "Export Reservations", sh.Export)
}
