package profile

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTTL is how long a cached profile is trusted before it is
// re-fetched from durable storage
const DefaultTTL = time.Hour

// Storage is the narrow durable persistence interface the store reads
// through. GetProfile returns (nil, nil) when no profile exists yet.
type Storage interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	PutProfile(ctx context.Context, p *Profile) error
}

// Store is a read-through/write-through TTL cache of user profiles.
// Capacity is unbounded: the tool serves a small, known user population
// and profiles are tiny.
type Store struct {
	storage Storage
	ttl     time.Duration
	clock   func() time.Time

	mu    sync.Mutex
	cache map[string]*Profile
	locks map[string]*sync.Mutex
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithTTL overrides the staleness window
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock overrides the time source (tests)
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) { s.clock = clock }
}

// NewStore creates a profile store backed by the given storage. A nil
// storage yields a purely in-memory store.
func NewStore(storage Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: storage,
		ttl:     DefaultTTL,
		clock:   time.Now,
		cache:   make(map[string]*Profile),
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the user's profile, creating one with defaults on first
// request. It never fails: when the underlying fetch errors, the best
// available cached copy (or a fresh default) is returned instead.
// Callers receive an independent copy.
func (s *Store) Get(ctx context.Context, userID string) *Profile {
	now := s.clock()

	s.mu.Lock()
	cached := s.cache[userID]
	s.mu.Unlock()

	if cached != nil && now.Sub(cached.LastUpdated) < s.ttl {
		return cached.Clone()
	}

	if s.storage != nil {
		fetched, err := s.storage.GetProfile(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("profile fetch failed, using cached copy")
			if cached != nil {
				return cached.Clone()
			}
		} else if fetched != nil {
			s.mu.Lock()
			s.cache[userID] = fetched.Clone()
			s.mu.Unlock()
			return fetched
		}
	}

	// Storage has nothing newer; a stale cached copy still beats a reset.
	if cached != nil {
		return cached.Clone()
	}

	fresh := NewDefault(userID, now)
	s.mu.Lock()
	s.cache[userID] = fresh.Clone()
	s.mu.Unlock()
	return fresh
}

// Put stores the profile in the cache and writes it through to durable
// storage. Storage errors propagate: a silently lost profile write would
// corrupt the learning signal with no other way to detect it.
func (s *Store) Put(ctx context.Context, p *Profile) error {
	s.mu.Lock()
	s.cache[p.UserID] = p.Clone()
	s.mu.Unlock()

	if s.storage == nil {
		return nil
	}
	return s.storage.PutProfile(ctx, p)
}

// Lock serializes read-modify-write cycles for a single user. Feedback
// for different users needs no coordination. The returned function
// releases the lock.
func (s *Store) Lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Invalidate drops the cached copy for a user, forcing the next Get to
// hit durable storage
func (s *Store) Invalidate(userID string) {
	s.mu.Lock()
	delete(s.cache, userID)
	s.mu.Unlock()
}
