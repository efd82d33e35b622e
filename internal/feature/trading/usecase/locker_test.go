package usecase

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserLocker_SerialisesSameUser(t *testing.T) {
	l := newUserLocker()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(1)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, l.size(), "idle users must not keep entries")
}

func TestUserLocker_DifferentUsersDoNotBlock(t *testing.T) {
	l := newUserLocker()

	unlockA := l.lock(1)
	done := make(chan struct{})
	go func() {
		unlockB := l.lock(2)
		unlockB()
		close(done)
	}()
	<-done

	assert.Equal(t, 1, l.size())
	unlockA()
	assert.Zero(t, l.size())
}
