package ledger

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_SerializesSameAccount(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	id := uuid.New()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), id)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				old := atomic.LoadInt32(&maxSeen)
				if n <= old || atomic.CompareAndSwapInt32(&maxSeen, old, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
	assert.Empty(t, l.entries, "entries are dropped once nobody holds or waits")
}

func TestLocker_ContextDeadline(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	id := uuid.New()

	unlock, err := l.Lock(context.Background(), id)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, id)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLocker_PartialAcquireIsReleased(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	a, b := uuid.New(), uuid.New()
	ordered := sortedUnique([]uuid.UUID{a, b})
	first, second := ordered[0], ordered[1]

	hold, err := l.Lock(context.Background(), second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, a, b)
	require.Error(t, err)

	// first must have been released by the failed call.
	unlock, err := l.Lock(context.Background(), first)
	require.NoError(t, err)
	unlock()
	hold()
}

func TestLocker_OppositeOrderDoesNotDeadlock(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	a, b := uuid.New(), uuid.New()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids := []uuid.UUID{a, b}
			if i%2 == 1 {
				ids = []uuid.UUID{b, a}
			}
			unlock, err := l.Lock(ctx, ids...)
			if assert.NoError(t, err) {
				unlock()
			}
		}(i)
	}
	wg.Wait()
}

func TestLocker_DuplicateIDsAndDoubleRelease(t *testing.T) {
	t.Parallel()
	l := NewLocker()
	id := uuid.New()

	unlock, err := l.Lock(context.Background(), id, id)
	require.NoError(t, err)
	unlock()
	unlock()

	again, err := l.Lock(context.Background(), id)
	require.NoError(t, err)
	again()
}
