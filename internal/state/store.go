package state

import (
	"sync"
	"time"
)

// Store coordinates concurrent dispatches and reads of State.
// The zero value is ready to use.
type Store struct {
	mu      sync.RWMutex
	state   State
	version uint64
	now     func() time.Time

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewStore returns a Store seeded with initial. A nil clock uses time.Now.
func NewStore(initial State, clock func() time.Time) *Store {
	return &Store{state: initial.Clone(), now: clock}
}

// Dispatch applies a through Reduce and notifies subscribers with the result.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	s.state = Reduce(s.state, a, now())
	s.version++
	snap := s.state.Clone()
	s.mu.Unlock()

	s.notify(snap)
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Version increases by one with every dispatch.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers fn to receive a copy of the state after each dispatch.
// Callbacks run on the dispatching goroutine and must not block. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(State))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(snap State) {
	s.subMu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap.Clone())
	}
}
