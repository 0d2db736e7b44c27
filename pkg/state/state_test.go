package state

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryClaimFoundOnce(t *testing.T) {
	s := New()
	assert.False(t, s.IsFound())

	assert.True(t, s.TryClaimFound())
	assert.True(t, s.IsFound())

	assert.False(t, s.TryClaimFound())
	assert.True(t, s.IsFound())
}

func TestTryClaimFoundConcurrent(t *testing.T) {
	const goroutines = 64

	s := New()
	var winners atomic.Int32
	var start, wg sync.WaitGroup
	start.Add(1)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start.Wait()
			if s.TryClaimFound() {
				winners.Add(1)
			}
		}()
	}
	start.Done()
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
	assert.True(t, s.IsFound())
}

func TestAddAttempts(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddAttempts(500)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(8*100*500), s.Attempts())
}
