package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := New()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			kl.Lock("emp-1:2024-02-15")
			defer kl.Unlock("emp-1:2024-02-15")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	kl := New()

	kl.Lock("emp-1:2024-02-15")
	done := make(chan struct{})
	go func() {
		// A different employee-day must not block.
		kl.Lock("emp-2:2024-02-15")
		kl.Unlock("emp-2:2024-02-15")
		close(done)
	}()
	<-done
	kl.Unlock("emp-1:2024-02-15")
}

func TestKeyLock_ReleasesEntries(t *testing.T) {
	kl := New()
	kl.Lock("k")
	kl.Unlock("k")

	kl.mu.Lock()
	defer kl.mu.Unlock()
	assert.Empty(t, kl.locks)
}
