package auth

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoginLimiter_Allow(t *testing.T) {
	l := NewLoginLimiter(0.001, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("a"), "attempt %d", i+1)
	}
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Tracked())
}

func TestLoginLimiter_Disabled(t *testing.T) {
	l := NewLoginLimiter(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("a"))
	}

	var nilLimiter *LoginLimiter
	assert.True(t, nilLimiter.Allow("a"))
}

func TestLoginLimiter_Concurrent(t *testing.T) {
	l := NewLoginLimiter(0.001, 10)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
