package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pathways.rf2lab.org/internal/dashboard"
	"pathways.rf2lab.org/internal/dataset"
)

func newTestFactory(t *testing.T) Factory {
	t.Helper()
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	r, err := dashboard.NewRenderer(ds, dashboard.DefaultOptions())
	require.NoError(t, err)
	return func(string) (*dashboard.Session, error) {
		return dashboard.NewSession(r)
	}
}

func TestNewStoreValidates(t *testing.T) {
	_, err := NewStore(nil, time.Minute, 0)
	assert.Error(t, err)

	_, err = NewStore(newTestFactory(t), 0, 0)
	assert.Error(t, err)
}

func TestStoreCreateAndWith(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	id, err := store.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	err = store.With(id, func(s *dashboard.Session) error {
		_, err := s.SelectIndustry("Technology")
		return err
	})
	require.NoError(t, err)

	var industry string
	require.NoError(t, store.With(id, func(s *dashboard.Session) error {
		industry = s.Selection().Industry
		return nil
	}))
	assert.Equal(t, "Technology", industry)
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	a, err := store.Create()
	require.NoError(t, err)
	b, err := store.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	require.NoError(t, store.With(a, func(s *dashboard.Session) error {
		_, err := s.SelectIndustry("Heavy Manufacturing")
		return err
	}))

	require.NoError(t, store.With(b, func(s *dashboard.Session) error {
		assert.Equal(t, "Food & Beverage", s.Selection().Industry)
		return nil
	}))
}

func TestStoreUnknownSession(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	for _, id := range []string{"", "not-a-uuid", "7d444840-9dc0-11d1-b245-5ffdce74fad2"} {
		err := store.With(id, func(*dashboard.Session) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound, id)
	}
}

func TestStoreWithPropagatesErrors(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	id, err := store.Create()
	require.NoError(t, err)

	err = store.With(id, func(s *dashboard.Session) error {
		_, err := s.SelectIndustry("Unknown")
		return err
	})
	assert.ErrorIs(t, err, dashboard.ErrInvalidSelection)
}

func TestStoreEnsure(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	id, created, err := store.Ensure("")
	require.NoError(t, err)
	assert.True(t, created)

	same, created, err := store.Ensure(id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, same)

	other, created, err := store.Ensure("stale-cookie")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, id, other)
	assert.Equal(t, 2, store.Len())

	store.Delete(other)
	assert.Equal(t, 1, store.Len())
}

func TestStoreFactoryError(t *testing.T) {
	boom := errors.New("boom")
	store, err := NewStore(func(string) (*dashboard.Session, error) { return nil, boom }, time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	_, err = store.Create()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestStoreSweepExpiresIdleSessions(t *testing.T) {
	store, err := NewStore(newTestFactory(t), 10*time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	idle, err := store.Create()
	require.NoError(t, err)
	active, err := store.Create()
	require.NoError(t, err)

	current = current.Add(8 * time.Minute)
	require.NoError(t, store.With(active, func(*dashboard.Session) error { return nil }))

	current = current.Add(5 * time.Minute)
	assert.Equal(t, 1, store.Sweep())

	assert.ErrorIs(t, store.With(idle, func(*dashboard.Session) error { return nil }), ErrNotFound)
	assert.NoError(t, store.With(active, func(*dashboard.Session) error { return nil }))
}

func TestStoreEnsureExpiredSession(t *testing.T) {
	store, err := NewStore(newTestFactory(t), 10*time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	stale, err := store.Create()
	require.NoError(t, err)

	current = current.Add(20 * time.Minute)
	id, created, err := store.Ensure(stale)
	require.NoError(t, err)
	assert.True(t, created, "an idle session must not be revived")
	assert.NotEqual(t, stale, id)
	assert.Equal(t, 1, store.Len())

	assert.Equal(t, 0, store.Sweep())
	assert.NoError(t, store.With(id, func(*dashboard.Session) error { return nil }))
	assert.ErrorIs(t, store.With(stale, func(*dashboard.Session) error { return nil }), ErrNotFound)
}

func TestStoreEnsureRefreshesIdleTimer(t *testing.T) {
	store, err := NewStore(newTestFactory(t), 10*time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	id, err := store.Create()
	require.NoError(t, err)

	current = current.Add(8 * time.Minute)
	same, created, err := store.Ensure(id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, same)

	// Past the original deadline but within ttl of the Ensure call.
	current = current.Add(5 * time.Minute)
	assert.Equal(t, 0, store.Sweep())
	assert.NoError(t, store.With(id, func(*dashboard.Session) error { return nil }))
}

func TestStoreConcurrentAccess(t *testing.T) {
	store, err := NewStore(newTestFactory(t), time.Minute, 0)
	require.NoError(t, err)
	defer store.Stop()

	id, err := store.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.With(id, func(s *dashboard.Session) error {
				_, err := s.AdjustCostSensitivity(float64(i))
				return err
			})
			store.Sweep()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}

func TestStoreStopDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	store, err := NewStore(newTestFactory(t), time.Minute, time.Millisecond)
	require.NoError(t, err)

	_, err = store.Create()
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	store.Stop()
	store.Stop()
}
