package state

import (
	"sync"

	"github.com/five82/tote/internal/shopping"
)

// Selection tracks which list the user has open. One instance is created by
// the application and handed to everything that needs it.
type Selection struct {
	mu      sync.RWMutex
	active  shopping.ID
	subs    map[int]func(shopping.ID)
	nextSub int
}

// Active returns the selected list id, or zero.
func (s *Selection) Active() shopping.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Select changes the active list and notifies subscribers when it differs.
func (s *Selection) Select(id shopping.ID) {
	s.mu.Lock()
	if s.active == id {
		s.mu.Unlock()
		return
	}
	s.active = id
	fns := make([]func(shopping.ID), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(id)
	}
}

// Clear deselects the active list.
func (s *Selection) Clear() {
	s.Select(0)
}

// Subscribe registers fn for selection changes and returns an unsubscribe
// function.
func (s *Selection) Subscribe(fn func(shopping.ID)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(shopping.ID))
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Follow keeps the selection valid against store: once no fetch is running
// and the active list is absent from the collection, the selection clears.
func (s *Selection) Follow(store *Store) func() {
	return store.Subscribe(func(st State) {
		active := s.Active()
		if active == 0 {
			return
		}
		if _, _, ok := st.Find(active); ok {
			return
		}
		if !st.Loading {
			s.Clear()
		}
	})
}
