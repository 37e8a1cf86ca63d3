package events

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmit(t *testing.T) {
	var e Emitter
	var got []string

	e.On("event", func(args ...any) { got = append(got, "first") })
	e.On("event", func(args ...any) { got = append(got, args[0].(string)) })

	assert.True(t, e.Emit("event", "second"))
	assert.Equal(t, []string{"first", "second"}, got)
	assert.False(t, e.Emit("other"))
}

func TestOnce(t *testing.T) {
	var e Emitter
	calls := 0
	e.Once("event", func(...any) { calls++ })
	e.On("event", func(...any) {})

	e.Emit("event")
	e.Emit("event")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, e.ListenerCount("event"))
}

func TestOnceOnlyListenerClearsEvent(t *testing.T) {
	var e Emitter
	e.Once("event", func(...any) {})

	assert.True(t, e.Emit("event"))
	assert.False(t, e.Emit("event"))
	assert.Zero(t, e.ListenerCount("event"))
}

func TestOff(t *testing.T) {
	var e Emitter
	e.On("event", func(...any) { t.Fatal("listener should be removed") })
	e.Off("event")
	assert.False(t, e.Emit("event"))
}

func TestListenerMayEmit(t *testing.T) {
	var e Emitter
	var inner bool
	e.On("outer", func(...any) { e.Emit("inner") })
	e.On("inner", func(...any) { inner = true })

	e.Emit("outer")
	assert.True(t, inner)
}

func TestConcurrentEmit(t *testing.T) {
	var e Emitter
	var n atomic.Int64
	e.On("tick", func(...any) { n.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Emit("tick")
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), n.Load())
}
