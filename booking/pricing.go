package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/room"
)

const secondsPerDay = 24 * 60 * 60

// Date truncates t to its calendar date at UTC midnight.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a yyyy-mm-dd date. Anything else, including impossible
// dates such as 2024-02-30, is a validation error.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use yyyy-MM-dd (e.g. 2024-12-25)", apperror.ErrValidation, s)
	}
	return d, nil
}

// nights is the whole number of days between the two instants, truncated,
// with a floor of one. It works on Unix seconds since a time.Duration
// cannot span more than about 292 years.
func nights(checkIn, checkOut time.Time) int {
	n := (checkOut.Unix() - checkIn.Unix()) / secondsPerDay
	if n < 1 {
		n = 1
	}
	return int(n)
}

// Quote prices a stay: nights times the category's nightly rate.
func Quote(category room.Category, checkIn, checkOut time.Time) (int, float64) {
	n := nights(checkIn, checkOut)
	return n, float64(n) * category.Rate()
}
