package favorite

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Toggle(t *testing.T) {
	s := NewSet()

	assert.False(t, s.Has("dune"))
	assert.True(t, s.Toggle("dune"))
	assert.True(t, s.Has("dune"))
	assert.False(t, s.Toggle("dune"))
	assert.False(t, s.Has("dune"))
}

func TestSet_ConcurrentToggles(t *testing.T) {
	s := NewSet()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("emma")
		}()
	}
	wg.Wait()

	// An even number of toggles ends where it started.
	assert.False(t, s.Has("emma"))
}
