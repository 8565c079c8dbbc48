package ledger

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Locker serializes balance operations per account inside one process.
// Locks are taken in ascending ID order so two transfers over the same pair
// of accounts cannot deadlock.
type Locker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{entries: make(map[uuid.UUID]*lockEntry)}
}

// Lock acquires every id, waiting at most until ctx is done. Duplicate ids
// are locked once. The returned func releases all of them.
func (l *Locker) Lock(ctx context.Context, ids ...uuid.UUID) (func(), error) {
	ordered := sortedUnique(ids)
	held := make([]uuid.UUID, 0, len(ordered))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, id := range ordered {
		if err := l.acquire(ctx, id); err != nil {
			release()
			return nil, err
		}
		held = append(held, id)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *Locker) acquire(ctx context.Context, id uuid.UUID) error {
	l.mu.Lock()
	e, ok := l.entries[id]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		l.entries[id] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.drop(id, e)
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *Locker) release(id uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e := l.entries[id]
	<-e.ch
	l.drop(id, e)
}

// drop must be called with l.mu held.
func (l *Locker) drop(id uuid.UUID, e *lockEntry) {
	e.refs--
	if e.refs == 0 {
		delete(l.entries, id)
	}
}

func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
