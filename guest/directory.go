package guest

import (
	"context"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/ident"
	"github.com/hidenkeys/hotelres/storage"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"reflect"
	"strings"
	"time"
)

const idPrefix = "G"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

type Directory struct {
	guests []*Guest
	ids    *ident.Generator
	store  storage.Saver
	now    func() time.Time
	log    *zap.Logger
}

func NewDirectory(guests []Guest, store storage.Saver, log *zap.Logger) *Directory {
	d := &Directory{
		ids:   ident.New(idPrefix),
		store: store,
		now:   time.Now,
		log:   log,
	}
	for i := range guests {
		g := guests[i]
		d.guests = append(d.guests, &g)
		d.ids.Observe(g.ID)
	}
	return d
}

// WithClock replaces the time source for ids and timestamps.
func (d *Directory) WithClock(now func() time.Time) *Directory {
	d.now = now
	d.ids.WithClock(now)
	return d
}

// List returns guests in registration order.
func (d *Directory) List() []*Guest {
	out := make([]*Guest, len(d.guests))
	copy(out, d.guests)
	return out
}

// Register validates and appends a new guest, then persists the directory.
// Every empty field is reported; the returned error matches
// apperror.ErrValidation. If the save fails the guest is not kept.
func (d *Directory) Register(ctx context.Context, name, email, phone string) (*Guest, error) {
	g := &Guest{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}
	if err := validate.Struct(g); err != nil {
		return nil, validationError(err)
	}

	g.ID = d.ids.Next()
	g.CreatedAt = d.now().UTC()
	d.guests = append(d.guests, g)

	if err := d.store.Save(ctx, d.Snapshot()); err != nil {
		d.guests = d.guests[:len(d.guests)-1]
		return nil, fmt.Errorf("register guest: %w", err)
	}

	d.log.Info("guest registered", zap.String("guest_id", g.ID), zap.String("name", g.Name))
	return g, nil
}

// Find looks a guest up by id, ignoring case and surrounding blanks.
func (d *Directory) Find(id string) (*Guest, error) {
	id = strings.TrimSpace(id)
	for _, g := range d.guests {
		if strings.EqualFold(g.ID, id) {
			return g, nil
		}
	}
	return nil, fmt.Errorf("guest %q: %w", id, apperror.ErrNotFound)
}

func (d *Directory) Snapshot() storage.Snapshot {
	items := make([]Guest, len(d.guests))
	for i, g := range d.guests {
		items[i] = *g
	}
	return storage.Snapshot{Name: storage.Guests, Items: items}
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperror.ErrValidation, err)
	}

	var combined error
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, fmt.Errorf("%s cannot be empty: %w", fe.Field(), apperror.ErrValidation))
	}
	return combined
}
