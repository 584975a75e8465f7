package guest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hidenkeys/hotelres/apperror"
	"github.com/hidenkeys/hotelres/storage"
)

type recordingStore struct {
	saved []storage.Snapshot
	err   error
}

func (s *recordingStore) Save(_ context.Context, snapshots ...storage.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, snapshots...)
	return nil
}

func clock() func() time.Time {
	return func() time.Time { return time.UnixMilli(1733011200000) }
}

func TestRegister_Success(t *testing.T) {
	store := &recordingStore{}
	d := NewDirectory(nil, store, zap.NewNop()).WithClock(clock())

	g, err := d.Register(context.Background(), "  Ada Lovelace ", "ada@example.com", " 555-0100")

	require.NoError(t, err)
	assert.Equal(t, "G1733011200000", g.ID)
	assert.Equal(t, "Ada Lovelace", g.Name)
	assert.Equal(t, "555-0100", g.Phone)
	assert.Equal(t, []*Guest{g}, d.List())

	require.Len(t, store.saved, 1)
	assert.Equal(t, storage.Guests, store.saved[0].Name)
	assert.Equal(t, []Guest{*g}, store.saved[0].Items)
}

func TestRegister_EmptyEmailRejected(t *testing.T) {
	store := &recordingStore{}
	d := NewDirectory(nil, store, zap.NewNop())

	g, err := d.Register(context.Background(), "Ada", "   ", "555-0100")

	assert.Nil(t, g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.Contains(t, err.Error(), "email cannot be empty")
	assert.Empty(t, d.List())
	assert.Empty(t, store.saved)
}

func TestRegister_ReportsEveryEmptyField(t *testing.T) {
	d := NewDirectory(nil, &recordingStore{}, zap.NewNop())

	_, err := d.Register(context.Background(), "", "", "")

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "name")
	assert.Contains(t, errs[1].Error(), "email")
	assert.Contains(t, errs[2].Error(), "phone")
	for _, e := range errs {
		assert.True(t, errors.Is(e, apperror.ErrValidation))
	}
}

func TestRegister_SaveFailureRollsBack(t *testing.T) {
	store := &recordingStore{err: errors.New("disk full")}
	d := NewDirectory(nil, store, zap.NewNop())

	_, err := d.Register(context.Background(), "Ada", "ada@example.com", "555")

	require.Error(t, err)
	assert.Empty(t, d.List())
}

func TestRegister_IdsUniqueWithinSameMillisecond(t *testing.T) {
	d := NewDirectory(nil, &recordingStore{}, zap.NewNop()).WithClock(clock())

	a, err := d.Register(context.Background(), "A", "a@x", "1")
	require.NoError(t, err)
	b, err := d.Register(context.Background(), "B", "b@x", "2")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewDirectory_ContinuesAfterLoadedIds(t *testing.T) {
	loaded := []Guest{{ID: "G1733011200005", Name: "Old", Email: "o@x", Phone: "1"}}
	d := NewDirectory(loaded, &recordingStore{}, zap.NewNop()).WithClock(clock())

	g, err := d.Register(context.Background(), "New", "n@x", "2")

	require.NoError(t, err)
	assert.Equal(t, "G1733011200006", g.ID)
	assert.Len(t, d.List(), 2)
}

func TestFind_CaseInsensitiveAndTrimmed(t *testing.T) {
	d := NewDirectory([]Guest{{ID: "G123", Name: "Ada"}}, &recordingStore{}, zap.NewNop())

	g, err := d.Find("  g123 ")
	require.NoError(t, err)
	assert.Equal(t, "Ada", g.Name)

	_, err = d.Find("G999")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
