package gateway

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConvLocksSerializesSameID(t *testing.T) {
	locks := newConvLocks()

	var active int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("c1")
			defer unlock()

			assert.Equal(t, int32(1), atomic.AddInt32(&active, 1), "critical section must be exclusive")
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()
}

func TestConvLocksIndependentIDs(t *testing.T) {
	locks := newConvLocks()

	unlockA := locks.lock("a")
	// A held lock on "a" must not block "b"
	done := make(chan struct{})
	go func() {
		unlockB := locks.lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on independent conversation blocked")
	}
	unlockA()
}

func TestConvLocksCleanup(t *testing.T) {
	locks := newConvLocks()

	unlock := locks.lock("c1")
	unlock()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "idle entries must be removed")
}
