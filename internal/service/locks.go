package service

import "sync"

// videoLocks hands out one mutex per canonical video reference. Entries
// are dropped once no caller holds or waits on them.
type videoLocks struct {
	mu    sync.Mutex
	locks map[string]*videoLock
}

type videoLock struct {
	mu   sync.Mutex
	refs int
}

func newVideoLocks() *videoLocks {
	return &videoLocks{locks: make(map[string]*videoLock)}
}

// lock blocks until key is free and returns the matching unlock.
func (l *videoLocks) lock(key string) func() {
	l.mu.Lock()
	vl, ok := l.locks[key]
	if !ok {
		vl = &videoLock{}
		l.locks[key] = vl
	}
	vl.refs++
	l.mu.Unlock()

	vl.mu.Lock()

	return func() {
		vl.mu.Unlock()

		l.mu.Lock()
		vl.refs--
		if vl.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *videoLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
