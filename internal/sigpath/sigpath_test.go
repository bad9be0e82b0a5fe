package sigpath

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChannel(t *testing.T) Channel {
	t.Helper()
	dir := t.TempDir()
	return Channel{
		ReadyPath: filepath.Join(dir, "ready"),
		ExitPath:  filepath.Join(dir, "exit"),
	}
}

func TestWaitReadyImmediate(t *testing.T) {
	c := testChannel(t)
	require.NoError(t, os.WriteFile(c.ReadyPath, nil, 0o644))

	err := c.WaitReady(time.Millisecond, 1, nil)
	assert.NoError(t, err)
}

func TestWaitReadyTimeout(t *testing.T) {
	c := testChannel(t)

	start := time.Now()
	err := c.WaitReady(time.Millisecond, 3, nil)
	assert.ErrorIs(t, err, ErrTimeout)
	// Two sleeps for three attempts; the last attempt must not sleep.
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitReadyChildGone(t *testing.T) {
	c := testChannel(t)

	calls := 0
	err := c.WaitReady(time.Millisecond, 10, func() bool {
		calls++
		return calls >= 2
	})
	assert.ErrorIs(t, err, ErrChildGone)
	assert.Equal(t, 2, calls)
}

func TestWaitReadyChildGoneBeatsReadyPath(t *testing.T) {
	c := testChannel(t)
	require.NoError(t, os.WriteFile(c.ReadyPath, nil, 0o644))

	err := c.WaitReady(time.Millisecond, 10, func() bool { return true })
	assert.ErrorIs(t, err, ErrChildGone)
}

func TestWaitReadyAppearsMidWait(t *testing.T) {
	c := testChannel(t)

	done := make(chan error, 1)
	go func() {
		done <- c.WaitReady(5*time.Millisecond, 100, nil)
	}()
	time.Sleep(15 * time.Millisecond)
	require.NoError(t, os.WriteFile(c.ReadyPath, nil, 0o644))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WaitReady did not observe the ready path")
	}
}

func TestSignalExitDoesNotRequirePath(t *testing.T) {
	c := testChannel(t)
	c.SignalExit() // the stat itself is the signal; no panic, no error
}
