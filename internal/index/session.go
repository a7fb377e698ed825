package index

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State is the load lifecycle of a session.
type State string

const (
	StateIdle           State = "idle"
	StateChecking       State = "checking"
	StatePriorityLoaded State = "priority_loaded"
	StateFullyLoaded    State = "fully_loaded"
	StateCached         State = "cached" // fully loaded, lexicon restored from cache
	StateFailed         State = "failed"
)

// Session owns one index lifecycle. Sources are acquired at most once; the
// built index is immutable and swapped atomically on reload; a failed load
// leaves the session answering "index unavailable" instead of erroring.
type Session struct {
	id     string
	loader *Loader
	logger *zap.Logger

	mu         sync.RWMutex
	state      State
	index      *SearchIndex
	loadErr    error
	generation uint64
}

// NewSession creates an idle session around the given loader.
func NewSession(loader *Loader, logger *zap.Logger) *Session {
	return &Session{
		id:     uuid.NewString(),
		loader: loader,
		logger: logger,
		state:  StateIdle,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Generation increments on every successful load. Callers that derive data
// from the index can compare generations to notice a reload.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Index returns the built index, or nil plus the load error when the session
// is unavailable. Before the first Load both return values are nil.
func (s *Session) Index() (*SearchIndex, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index, s.loadErr
}

// Load acquires the sources and builds the index. A second call after a
// successful load is a no-op; after a failure it retries.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateFullyLoaded || s.state == StateCached {
		s.mu.Unlock()
		return nil
	}
	s.state = StateChecking
	s.mu.Unlock()

	idx, fromCache, err := s.loader.Acquire(ctx, func() {
		s.setState(StatePriorityLoaded)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		if s.logger != nil {
			s.logger.Error("index load failed", zap.String("session", s.id), zap.Error(err))
		}
		return err
	}
	s.index = idx
	s.loadErr = nil
	s.generation++
	if fromCache {
		s.state = StateCached
	} else {
		s.state = StateFullyLoaded
	}
	if s.logger != nil {
		s.logger.Info("index loaded",
			zap.String("session", s.id),
			zap.String("state", string(s.state)),
			zap.Int("lexicon_words", len(idx.Words())),
			zap.Int("verses", len(idx.Verses())),
		)
	}
	return nil
}

// Reload forces a fresh acquisition, swapping the index under the lock. Used
// when the source data files change on disk; the cached lexicon copy is
// dropped first so the reload sees the new data.
func (s *Session) Reload(ctx context.Context) error {
	s.loader.invalidateCache(ctx)
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
	return s.Load(ctx)
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}
