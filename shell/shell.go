// Package shell is the numbered text menu the front desk works through. It
// reads one command at a time, runs it to completion against the hotel and
// renders the outcome. Only a failure of the input stream ends the loop
// early.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/booking"
	"github.com/hidenkeys/hotelres/guest"
	"github.com/hidenkeys/hotelres/report"
	"github.com/hidenkeys/hotelres/room"
	"go.uber.org/zap"
)

var separator = strings.Repeat("=", 50)

// ErrExit is returned by a handler to leave the menu loop.
var ErrExit = errors.New("exit")

// Front is the set of hotel operations the menu drives.
type Front interface {
	SearchRooms(filter room.Category) []*room.Room
	Rooms() []*room.Room
	AvailableRooms() int
	AddGuest(ctx context.Context, name, email, phone string) (*guest.Guest, error)
	Guests() []*guest.Guest
	Book(ctx context.Context, guestID string, roomNumber int, checkIn, checkOut time.Time) (*booking.Reservation, error)
	Reservations() []*booking.Reservation
	Reservation(id string) (*booking.Reservation, error)
	Cancel(ctx context.Context, id string) (*booking.Reservation, error)
	Pay(ctx context.Context, id string, method booking.PaymentMethod) (*booking.Reservation, error)
	CheckOut(ctx context.Context, id string) (*booking.Reservation, error)
	Summary() report.Summary
	Export(path string) (string, error)
}

// HandlerFunc runs one menu command.
type HandlerFunc func(ctx context.Context) error

type entry struct {
	key   string
	title string
	fn    HandlerFunc
}

type Shell struct {
	front     Front
	in        *bufio.Scanner
	out       io.Writer
	log       *zap.Logger
	entries   []entry
	interrupt []os.Signal
}

func New(front Front, in io.Reader, out io.Writer, log *zap.Logger) *Shell {
	return &Shell{front: front, in: bufio.NewScanner(in), out: out, log: log}
}

// Handle adds a menu entry. Entries are listed in the order they are added.
func (s *Shell) Handle(key, title string, fn HandlerFunc) {
	s.entries = append(s.entries, entry{key: key, title: title, fn: fn})
}

// CancelOn makes sigs abort a payment that is being processed. Outside of
// that wait the signals keep their default effect.
func (s *Shell) CancelOn(sigs ...os.Signal) {
	s.interrupt = sigs
}

func (s *Shell) interruptible(ctx context.Context) (context.Context, context.CancelFunc) {
	if len(s.interrupt) == 0 {
		return context.WithCancel(ctx)
	}
	return signal.NotifyContext(ctx, s.interrupt...)
}

// Run shows the menu until a handler returns ErrExit or input runs out. It
// returns an error only when reading input fails.
func (s *Shell) Run(ctx context.Context) error {
	s.banner("Welcome to the Hotel Reservation System")

	for {
		s.menu()
		choice, err := s.readLine()
		if err != nil {
			return s.inputEnded(err)
		}
		if choice == "" {
			s.println("Please enter a valid choice.")
			continue
		}

		e, ok := s.lookup(choice)
		if !ok {
			s.printf("Invalid choice. Please enter a number between 1 and %d.\n", len(s.entries))
			continue
		}

		err = e.fn(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrExit):
			s.banner("Thank you for using Hotel Reservation System!")
			return nil
		case isInputEnd(err):
			return s.inputEnded(err)
		default:
			s.fail(e.title, err)
		}
	}
}

func (s *Shell) lookup(key string) (entry, bool) {
	for _, e := range s.entries {
		if e.key == key {
			return e, true
		}
	}
	return entry{}, false
}

func (s *Shell) menu() {
	s.banner("HOTEL RESERVATION SYSTEM MENU")
	for _, e := range s.entries {
		s.printf("%s. %s\n", e.key, e.title)
	}
	s.println(separator)
	s.printf("Enter your choice (1-%d): ", len(s.entries))
}

// fail reports a handler error. Persistence failures are logged as errors,
// everything else is something the user can correct.
func (s *Shell) fail(command string, err error) {
	s.printf("Error: %v\n", err)
	if errors.Is(err, apperror.ErrPersistence) {
		s.log.Error("command failed", zap.String("command", command), zap.Error(err))
		return
	}
	s.log.Info("command rejected", zap.String("command", command), zap.Error(err))
}

func (s *Shell) inputEnded(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Info("input closed, leaving menu")
		return nil
	}
	s.log.Error("reading input failed", zap.Error(err))
	return err
}

func isInputEnd(err error) bool {
	var readErr *inputError
	return errors.Is(err, io.EOF) || errors.As(err, &readErr)
}

type inputError struct{ err error }

func (e *inputError) Error() string { return "read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// readLine returns the next trimmed line, io.EOF once input is exhausted,
// or an *inputError if the reader failed.
func (s *Shell) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", &inputError{err: err}
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) ask(label string) (string, error) {
	s.printf("%s", label)
	return s.readLine()
}

func (s *Shell) confirm(label string) (bool, error) {
	answer, err := s.ask(label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(answer, "Y"), nil
}

// choose reads a 1-based selection out of n and returns it 0-based.
func (s *Shell) choose(label string, n int) (int, error) {
	answer, err := s.ask(label)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", apperror.ErrValidation, answer)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: selection must be between 1 and %d", apperror.ErrValidation, n)
	}
	return i - 1, nil
}

func (s *Shell) banner(title string) {
	s.printf("\n%s\n", separator)
	s.println(center(title, len(separator)))
	s.println(separator)
}

func (s *Shell) rule(width int) {
	s.println(strings.Repeat("-", width))
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}

func center(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
