package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage is an in-memory Storage with fault injection
type fakeStorage struct {
	mu       sync.Mutex
	profiles map[string]*Profile
	getErr   error
	putErr   error
	gets     int
	puts     int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{profiles: make(map[string]*Profile)}
}

func (f *fakeStorage) GetProfile(_ context.Context, userID string) (*Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (f *fakeStorage) PutProfile(_ context.Context, p *Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts++
	if f.putErr != nil {
		return f.putErr
	}
	f.profiles[p.UserID] = p.Clone()
	return nil
}

func TestStoreGetCreatesDefault(t *testing.T) {
	store := NewStore(newFakeStorage())

	p := store.Get(context.Background(), "alice")
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.UserID)
	assert.Equal(t, 0, p.TotalFeedbackCount)
}

func TestStoreGetNeverFails(t *testing.T) {
	storage := newFakeStorage()
	storage.getErr = errors.New("disk on fire")
	store := NewStore(storage)

	// A failing fetch still yields a usable default
	p := store.Get(context.Background(), "alice")
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.UserID)
}

func TestStoreGetFallsBackToCachedOnFetchError(t *testing.T) {
	storage := newFakeStorage()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewStore(storage, WithTTL(time.Hour), WithClock(clock))
	ctx := context.Background()

	p := store.Get(ctx, "alice")
	p.AdjustCompetitorInterest("Acme", 0.2)
	require.NoError(t, store.Put(ctx, p))

	// Expire the cache, then break storage
	now = now.Add(2 * time.Hour)
	storage.getErr = errors.New("disk on fire")

	got := store.Get(ctx, "alice")
	assert.InDelta(t, 1.2, got.CompetitorInterest("Acme"), 1e-9, "stale cached copy beats a reset")
}

func TestStoreGetUsesCacheWithinTTL(t *testing.T) {
	storage := newFakeStorage()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store := NewStore(storage, WithTTL(time.Hour), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	p := NewDefault("alice", now)
	require.NoError(t, store.Put(ctx, p))
	fetchesAfterPut := storage.gets

	store.Get(ctx, "alice")
	store.Get(ctx, "alice")
	assert.Equal(t, fetchesAfterPut, storage.gets, "fresh cache must not hit storage")
}

func TestStoreGetRefreshesAfterTTL(t *testing.T) {
	storage := newFakeStorage()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewStore(storage, WithTTL(time.Hour), WithClock(clock))
	ctx := context.Background()

	p := NewDefault("alice", now)
	p.TotalFeedbackCount = 1
	require.NoError(t, store.Put(ctx, p))

	// Another process bumps the durable copy
	durable := p.Clone()
	durable.TotalFeedbackCount = 9
	durable.LastUpdated = now
	storage.profiles["alice"] = durable

	now = now.Add(2 * time.Hour)
	got := store.Get(ctx, "alice")
	assert.Equal(t, 9, got.TotalFeedbackCount, "expired cache must re-fetch")
}

func TestStorePutWritesThrough(t *testing.T) {
	storage := newFakeStorage()
	store := NewStore(storage)
	ctx := context.Background()

	p := NewDefault("alice", time.Now())
	require.NoError(t, store.Put(ctx, p))
	assert.Equal(t, 1, storage.puts)
	assert.NotNil(t, storage.profiles["alice"])
}

func TestStorePutPropagatesStorageError(t *testing.T) {
	storage := newFakeStorage()
	storage.putErr = errors.New("disk full")
	store := NewStore(storage)

	err := store.Put(context.Background(), NewDefault("alice", time.Now()))
	assert.Error(t, err)
}

func TestStoreMemoryOnly(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	p := store.Get(ctx, "alice")
	p.TotalFeedbackCount = 4
	require.NoError(t, store.Put(ctx, p))

	got := store.Get(ctx, "alice")
	assert.Equal(t, 4, got.TotalFeedbackCount)
}

func TestStoreHandsOutCopies(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	a := store.Get(ctx, "alice")
	a.AdjustCompetitorInterest("Acme", 0.3)

	b := store.Get(ctx, "alice")
	assert.InDelta(t, 1.0, b.CompetitorInterest("Acme"), 1e-9, "caller mutations must not leak into the cache")
}

func TestStoreInvalidate(t *testing.T) {
	storage := newFakeStorage()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	store := NewStore(storage, WithTTL(time.Hour), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	p := NewDefault("alice", now)
	require.NoError(t, store.Put(ctx, p))
	fetchesAfterPut := storage.gets

	store.Invalidate("alice")
	store.Get(ctx, "alice")
	assert.Equal(t, fetchesAfterPut+1, storage.gets, "invalidated entry must hit storage")
}

func TestStoreLockSerializesPerUser(t *testing.T) {
	store := NewStore(nil)
	ctx := context.Background()

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				unlock := store.Lock("alice")
				p := store.Get(ctx, "alice")
				p.TotalFeedbackCount++
				_ = store.Put(ctx, p)
				unlock()
			}
		}()
	}
	wg.Wait()

	got := store.Get(ctx, "alice")
	assert.Equal(t, workers*perWorker, got.TotalFeedbackCount)
}
