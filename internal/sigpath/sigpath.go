// Package sigpath implements the filesystem-path signal channel between the
// orchestrator and the virtual-file host.
//
// The channel is two well-known paths, not ordinary file I/O: the ready path
// coming into existence means the host is serving, and a stat of the exit
// path tells the host to shut down. The readiness wait is a bounded polling
// loop, which is the system's only timeout.
package sigpath

import (
	"errors"
	"os"
	"time"
)

// ErrTimeout is returned when the ready path never appears within the bound.
var ErrTimeout = errors.New("timed out waiting for ready path")

// ErrChildGone is returned when the host process dies before the ready path
// appears.
var ErrChildGone = errors.New("host exited before becoming ready")

// Channel is a one-shot signal channel rooted at two fixed paths.
type Channel struct {
	ReadyPath string
	ExitPath  string
}

// WaitReady polls once per interval, up to attempts times, for the ready path
// to exist. childGone is consulted before each stat; when it reports true the
// wait stops immediately with ErrChildGone. The sleep happens only between
// attempts, so the worst-case wait is (attempts-1) intervals plus the stats.
func (c Channel) WaitReady(interval time.Duration, attempts int, childGone func() bool) error {
	for i := 0; i < attempts; i++ {
		if childGone != nil && childGone() {
			return ErrChildGone
		}
		if _, err := os.Stat(c.ReadyPath); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
		if i < attempts-1 {
			time.Sleep(interval)
		}
	}
	return ErrTimeout
}

// SignalExit stats the exit path. The stat itself is the signal; the path is
// not expected to exist, so the error is discarded.
func (c Channel) SignalExit() {
	_, _ = os.Stat(c.ExitPath)
}
