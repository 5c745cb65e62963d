package gateway

import "sync"

// convLocks serializes the load-compute-save sequence per conversation id,
// so two concurrent completions against the same conversation cannot drop
// each other's turn. Entries are reference-counted and removed once idle.
type convLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	refs int
	mu   sync.Mutex
}

func newConvLocks() *convLocks {
	return &convLocks{locks: make(map[string]*lockEntry)}
}

// lock acquires the mutex for the given conversation id and returns its
// release function.
func (l *convLocks) lock(id string) (unlock func()) {
	l.mu.Lock()
	e := l.locks[id]
	if e == nil {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
