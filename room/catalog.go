package room

import (
	"context"
	"fmt"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/storage"
	"go.uber.org/zap"
)

// Catalog holds the room inventory and the live availability of each room.
// Rooms are never added after seeding and never removed.
type Catalog struct {
	rooms []*Room
	store storage.Saver
	log   *zap.Logger
}

// NewCatalog wraps rooms loaded from storage. Pointers handed out by the
// catalog stay valid for its lifetime.
func NewCatalog(rooms []Room, store storage.Saver, log *zap.Logger) *Catalog {
	c := &Catalog{store: store, log: log}
	for i := range rooms {
		r := rooms[i]
		c.rooms = append(c.rooms, &r)
	}
	return c
}

// Seed populates the fixed inventory when the catalog is empty and persists
// it straight away. It is a no-op otherwise.
func (c *Catalog) Seed(ctx context.Context) error {
	if len(c.rooms) > 0 {
		return nil
	}

	for i := 1; i <= 5; i++ {
		c.rooms = append(c.rooms, &Room{Number: 100 + i, Category: Standard, Capacity: 2, Available: true})
	}
	for i := 1; i <= 5; i++ {
		c.rooms = append(c.rooms, &Room{Number: 200 + i, Category: Deluxe, Capacity: 3, Available: true})
	}
	for i := 1; i <= 3; i++ {
		c.rooms = append(c.rooms, &Room{Number: 300 + i, Category: Suite, Capacity: 4, Available: true})
	}

	if err := c.store.Save(ctx, c.Snapshot()); err != nil {
		c.rooms = nil
		return err
	}

	c.log.Info("hotel rooms seeded", zap.Int("rooms", len(c.rooms)))
	return nil
}

// ListAvailable returns bookable rooms in inventory order, restricted to
// filter unless it is AnyCategory.
func (c *Catalog) ListAvailable(filter Category) []*Room {
	var out []*Room
	for _, r := range c.rooms {
		if r.Available && (filter == AnyCategory || r.Category == filter) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Catalog) ListAll() []*Room {
	out := make([]*Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

func (c *Catalog) CountAvailable() int {
	n := 0
	for _, r := range c.rooms {
		if r.Available {
			n++
		}
	}
	return n
}

// Get finds a room by its number.
func (c *Catalog) Get(number int) (*Room, error) {
	for _, r := range c.rooms {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, fmt.Errorf("room %d: %w", number, apperror.ErrNotFound)
}

// SetAvailability changes the flag in memory only; the caller persists.
func (c *Catalog) SetAvailability(r *Room, available bool) {
	r.Available = available
}

// Snapshot is the rooms collection as the gateway stores it.
func (c *Catalog) Snapshot() storage.Snapshot {
	items := make([]Room, len(c.rooms))
	for i, r := range c.rooms {
		items[i] = *r
	}
	return storage.Snapshot{Name: storage.Rooms, Items: items}
}
