package report

import (
	"fmt"
	"time"

	"github.com/hidenkeys/hotelres/booking"
	"github.com/xuri/excelize/v2"
)

const (
	reservationsSheet = "Reservations"
	summarySheet      = "Summary"
)

var headers = []string{
	"ReservationID", "GuestName", "Email", "Phone", "RoomNumber", "Category",
	"CheckinDate", "CheckoutDate", "NumberOfNights", "Amount", "Status",
	"IsPaid", "PaymentMethod", "PaymentRef",
}

// ExportXLSX writes every reservation as a row of a spreadsheet at path,
// followed by a summary sheet.
func ExportXLSX(path string, reservations []*booking.Reservation, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reservationsSheet); err != nil {
		return err
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(reservationsSheet, cell, header); err != nil {
			return err
		}
	}

	for i, r := range reservations {
		row := []any{
			r.ID, r.Guest.Name, r.Guest.Email, r.Guest.Phone, r.Room.Number, string(r.Room.Category),
			r.CheckIn.Format(time.DateOnly), r.CheckOut.Format(time.DateOnly), r.Nights(), r.TotalAmount,
			string(r.Status), r.PaymentCompleted, string(r.PaymentMethod), r.PaymentRef,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(reservationsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := writeSummary(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeSummary(f *excelize.File, s Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][]any{
		{"Bookings", s.Bookings},
		{"Revenue", s.Revenue},
		{"Outstanding", s.Outstanding},
		{"AvailableRooms", s.AvailableRooms},
		{"TotalRooms", s.TotalRooms},
	}
	for _, status := range []booking.Status{booking.Pending, booking.Confirmed, booking.Cancelled, booking.Completed} {
		rows = append(rows, []any{"Status " + string(status), s.ByStatus[status]})
	}
	for _, m := range booking.PaymentMethods() {
		rows = append(rows, []any{"Paid by " + string(m), s.ByMethod[m]})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
