package lists

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/five82/tote/internal/shopping"
)

// entityLocks serializes mutations per entity key. Entries are dropped once
// no caller holds or waits on them.
type entityLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// acquire blocks until key is free or ctx is done. Keys are always taken in
// the order the caller lists them.
func (l *entityLocks) acquire(ctx context.Context, keys ...string) (func(), error) {
	held := make([]string, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.unlock(held[i])
		}
	}
	for _, key := range keys {
		if err := l.lock(ctx, key); err != nil {
			release()
			return nil, err
		}
		held = append(held, key)
	}
	return release, nil
}

func (l *entityLocks) lock(ctx context.Context, key string) error {
	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*lockEntry)
	}
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	if err := e.sem.Acquire(ctx, 1); err != nil {
		l.drop(key, e)
		return err
	}
	return nil
}

func (l *entityLocks) unlock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return
	}
	e.sem.Release(1)
	l.drop(key, e)
}

func (l *entityLocks) drop(key string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *entityLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

const defaultKey = "default"

func listKey(id shopping.ID) string {
	return "list:" + id.String()
}

func itemKey(listID, itemID shopping.ID) string {
	return "item:" + listID.String() + ":" + itemID.String()
}
