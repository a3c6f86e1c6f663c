package session

import (
	"sync"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/network-link-manager/internal/ingest"
	"github.com/donaldgifford/network-link-manager/internal/metrics"
	"github.com/donaldgifford/network-link-manager/pkg/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T, capacity int, ttl time.Duration) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s, err := NewStore(capacity, ttl, WithClock(clock.Now), WithLogger(logger.Discard()))
	require.NoError(t, err)
	return s, clock
}

func TestWorkspace_ReferenceLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Now()
	w := NewWorkspace("ws-1", now)

	_, _, ok := w.Reference()
	assert.False(t, ok)
	assert.False(t, w.ClearReference())

	up := &ingest.Upload{Name: "phoenix.csv", Content: []byte("Source,Destination")}
	w.SetReference(up, now)

	up.Content[0] = 'X'
	got, setAt, ok := w.Reference()
	require.True(t, ok)
	assert.Equal(t, "phoenix.csv", got.Name)
	assert.Equal(t, "Source,Destination", string(got.Content), "stored copy is independent of the caller")
	assert.Equal(t, now, setAt)

	w.SetReference(&ingest.Upload{Name: "phoenix-v2.csv", Content: []byte("a")}, now.Add(time.Minute))
	got, _, _ = w.Reference()
	assert.Equal(t, "phoenix-v2.csv", got.Name, "at most one reference is held")

	assert.True(t, w.ClearReference())
	_, _, ok = w.Reference()
	assert.False(t, ok)
}

func TestNewStore_InvalidCapacity(t *testing.T) {
	t.Parallel()

	_, err := NewStore(0, time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating session cache")
}

func TestStore_CreateGetDelete(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 4, time.Hour)

	w := s.Create()
	require.NotEmpty(t, w.ID())
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(w.ID())
	require.NoError(t, err)
	assert.Same(t, w, got)

	assert.True(t, s.Delete(w.ID()))
	assert.False(t, s.Delete(w.ID()))

	_, err = s.Get(w.ID())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UnknownID(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 4, time.Hour)
	_, err := s.Get("does-not-exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CapacityEvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 2, time.Hour)

	a := s.Create()
	b := s.Create()

	// Touch a so b becomes least recently used.
	_, err := s.Get(a.ID())
	require.NoError(t, err)

	before := ptestutil.ToFloat64(metrics.SessionsEvictedTotal.WithLabelValues(reasonCapacity))
	c := s.Create()
	after := ptestutil.ToFloat64(metrics.SessionsEvictedTotal.WithLabelValues(reasonCapacity))

	assert.Equal(t, 2, s.Len())
	assert.GreaterOrEqual(t, after-before, 1.0)

	_, err = s.Get(b.ID())
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(a.ID())
	require.NoError(t, err)
	_, err = s.Get(c.ID())
	require.NoError(t, err)
}

func TestStore_IdleExpiryOnGet(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t, 4, 10*time.Minute)
	w := s.Create()

	clock.Advance(9 * time.Minute)
	_, err := s.Get(w.ID())
	require.NoError(t, err, "activity within ttl keeps the session alive")

	clock.Advance(9 * time.Minute)
	_, err = s.Get(w.ID())
	require.NoError(t, err)

	clock.Advance(11 * time.Minute)
	_, err = s.Get(w.ID())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, s.Len())
}

func TestStore_Sweep(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t, 8, 10*time.Minute)

	stale := s.Create()
	stale.SetReference(&ingest.Upload{Name: "ref.csv", Content: []byte("x")}, clock.Now())

	clock.Advance(6 * time.Minute)
	fresh := s.Create()

	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, _, ok := stale.Reference()
	assert.False(t, ok, "evicted workspaces release their reference")

	_, err := s.Get(fresh.ID())
	require.NoError(t, err)

	assert.Zero(t, s.Sweep())
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t, 2, 0)
	w := s.Create()

	clock.Advance(1000 * time.Hour)
	assert.Zero(t, s.Sweep())
	_, err := s.Get(w.ID())
	require.NoError(t, err)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 16, time.Hour)
	w := s.Create()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Get(w.ID())
			if !assert.NoError(t, err) {
				return
			}
			got.SetReference(&ingest.Upload{Name: "ref.csv", Content: []byte{byte(i)}}, time.Now())
			_, _, _ = got.Reference()
			s.Create()
		}()
	}
	wg.Wait()

	_, _, ok := w.Reference()
	assert.True(t, ok)
}

func TestNewSweeper_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 2, time.Hour)
	sw, err := NewSweeper(s, 5*time.Minute, logger.Discard())
	require.NoError(t, err)
	assert.Len(t, sw.Entries(), 1)
}

func TestSweeper_StartStop(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t, 2, time.Hour)
	sw, err := NewSweeper(s, time.Hour, logger.Discard())
	require.NoError(t, err)

	sw.Start()
	ctx := sw.Stop()
	<-ctx.Done()
}

func TestSweeper_RunExpires(t *testing.T) {
	t.Parallel()

	s, clock := newTestStore(t, 2, time.Minute)
	s.Create()
	clock.Advance(2 * time.Minute)

	sw, err := NewSweeper(s, time.Hour, logger.Discard())
	require.NoError(t, err)

	sw.run()
	assert.Zero(t, s.Len())
}
