package postgres

import (
	"context"
	"sync"
)

type lineKey struct {
	cartID int64
	itemID int64
}

// lineLocks hands out one lock per (cart, item) pair. Entries are dropped
// once no goroutine holds or waits for them.
type lineLocks struct {
	mu    sync.Mutex
	locks map[lineKey]*lineLock
}

// lineLock is held while its one-slot channel is full.
type lineLock struct {
	held chan struct{}
	refs int
}

func newLineLocks() *lineLocks {
	return &lineLocks{locks: make(map[lineKey]*lineLock)}
}

// lock waits until the pair is free or ctx is done. On success it returns
// the release func; on ctx expiry it returns ctx.Err() and holds nothing.
func (l *lineLocks) lock(ctx context.Context, k lineKey) (func(), error) {
	l.mu.Lock()
	ll, ok := l.locks[k]
	if !ok {
		ll = &lineLock{held: make(chan struct{}, 1)}
		l.locks[k] = ll
	}
	ll.refs++
	l.mu.Unlock()

	select {
	case ll.held <- struct{}{}:
		return func() {
			<-ll.held
			l.release(k, ll)
		}, nil
	case <-ctx.Done():
		l.release(k, ll)
		return nil, ctx.Err()
	}
}

func (l *lineLocks) release(k lineKey, ll *lineLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	ll.refs--
	if ll.refs == 0 {
		delete(l.locks, k)
	}
}

func (l *lineLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
