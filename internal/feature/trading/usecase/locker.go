package usecase

import "sync"

// userLocker hands out one mutex per user so settlements for the same user
// run one at a time while different users proceed in parallel.
// Entries are reference counted and removed when the last holder unlocks.
type userLocker struct {
	mu    sync.Mutex
	locks map[uint]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func newUserLocker() *userLocker {
	return &userLocker{locks: make(map[uint]*userLock)}
}

// lock blocks until userID's lock is held and returns the matching unlock.
func (l *userLocker) lock(userID uint) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

// size reports the number of users with a pending or held lock.
func (l *userLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
