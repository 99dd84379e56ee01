package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/homeservices/site/internal/models"
	apperrors "github.com/homeservices/site/pkg/errors"
	"github.com/homeservices/site/pkg/logger"
	"github.com/homeservices/site/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Store keeps the view state of every visitor in memory, keyed by session id.
// Entries expire after ttl of inactivity; nothing is persisted.
type Store struct {
	cache *gocache.Cache
	ttl   time.Duration

	// serializes Touch and Update, so a Touch cannot put back a state that
	// an Update has already replaced
	mu sync.Mutex
}

// NewStore creates a session store
func NewStore(ttl time.Duration) *Store {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	cache := gocache.New(ttl, cleanup)
	cache.OnEvicted(func(id string, _ interface{}) {
		logger.Debug("Session expired", zap.String("session_id", id))
		metrics.SessionsActive.Set(float64(cache.ItemCount()))
	})

	return &Store{
		cache: cache,
		ttl:   ttl,
	}
}

// NewID returns a fresh random session id
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether id looks like an id issued by NewID
func IsValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Start creates a new session with the state of a freshly loaded page
func (s *Store) Start() (string, *models.ViewState) {
	id := NewID()
	state := models.NewViewState()

	s.cache.Set(id, state.Clone(), s.ttl)

	metrics.SessionsStarted.Inc()
	metrics.SessionsActive.Set(float64(s.cache.ItemCount()))

	return id, state
}

// Get returns a copy of the state for id
func (s *Store) Get(id string) (*models.ViewState, bool) {
	state, found := s.load(id)
	if !found {
		return nil, false
	}
	return state.Clone(), true
}

// load returns the stored state itself. Stored states are never mutated in
// place, every write replaces them with a fresh clone.
func (s *Store) load(id string) (*models.ViewState, bool) {
	data, found := s.cache.Get(id)
	if !found {
		return nil, false
	}

	state, ok := data.(*models.ViewState)
	if !ok {
		logger.Error("Invalid session data type", zap.String("session_id", id))
		s.cache.Delete(id)
		return nil, false
	}

	return state, true
}

// Touch extends the lifetime of a session without changing it
func (s *Store) Touch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, found := s.load(id)
	if !found {
		return false
	}
	s.cache.Set(id, state, s.ttl)
	return true
}

// save replaces the state for id; callers hold s.mu
func (s *Store) save(id string, state *models.ViewState) {
	s.cache.Set(id, state.Clone(), s.ttl)
	metrics.SessionsActive.Set(float64(s.cache.ItemCount()))
}

// Update applies fn to the state for id and stores the result, even when fn
// returns an error: a rejected submission still records its field errors.
// A missing session is started from a fresh page state.
func (s *Store) Update(id string, fn func(*models.ViewState) error) (*models.ViewState, error) {
	if id == "" {
		return nil, apperrors.InternalError("empty session id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, found := s.Get(id)
	if !found {
		state = models.NewViewState()
	}

	err := fn(state)
	s.save(id, state)

	return state.Clone(), err
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
