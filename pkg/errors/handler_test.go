package errors

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoWarningsMatchesBothKinds(t *testing.T) {
	wrapped := fmt.Errorf("remove warning 3: %w", ErrNoWarnings)

	assert.True(t, Is(wrapped, ErrNoWarnings))
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.True(t, Is(wrapped, ErrOutOfRange))
	assert.False(t, Is(wrapped, ErrStorageUnavailable))
}

func TestHandlerShutsDownOnTooManyErrors(t *testing.T) {
	var shutdown, exitCode atomic.Int32
	exitCode.Store(-1)

	h := NewErrorHandler("", func() { shutdown.Add(1) })
	h.maxErrors = 2
	h.checkInterval = 10 * time.Millisecond
	h.resetInterval = time.Hour
	h.exitFunc = func(code int) { exitCode.Store(int32(code)) }
	h.start()
	defer h.Stop()

	for i := 0; i < 3; i++ {
		h.HandlePanic("boom")
	}

	require.Eventually(t, func() bool { return exitCode.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), shutdown.Load())
}

func TestGoRecoversPanics(t *testing.T) {
	done := make(chan struct{})
	Go(func() {
		defer close(done)
		panic("handler exploded")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not finish")
	}
}
