package performance

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounceCoalesces(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls int32

	for i := 0; i < 10; i++ {
		d.Debounce("save", func() { atomic.AddInt32(&calls, 1) })
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&calls) == 1
	}, time.Second, 10*time.Millisecond)

	// No trailing second call.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDebounceIndependentKeys(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var a, b int32

	d.Debounce("a", func() { atomic.AddInt32(&a, 1) })
	d.Debounce("b", func() { atomic.AddInt32(&b, 1) })

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&a) == 1 && atomic.LoadInt32(&b) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	d.Debounce("save", func() { atomic.AddInt32(&calls, 1) })
	d.Cancel("save")

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestFlushCancelsPendingAndRuns(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var pending, flushed int32

	d.Debounce("save", func() { atomic.AddInt32(&pending, 1) })
	d.Flush("save", func() { atomic.AddInt32(&flushed, 1) })
	assert.Equal(t, int32(1), atomic.LoadInt32(&flushed))
	assert.Zero(t, atomic.LoadInt32(&pending))

	// Flush runs even when nothing is pending.
	d.Flush("save", func() { atomic.AddInt32(&flushed, 1) })
	assert.Equal(t, int32(2), atomic.LoadInt32(&flushed))
}

func TestClear(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	d.Debounce("a", func() { atomic.AddInt32(&calls, 1) })
	d.Debounce("b", func() { atomic.AddInt32(&calls, 1) })
	d.Clear()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
