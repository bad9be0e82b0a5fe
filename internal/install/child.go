package install

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/conn-castle/sideload/internal/messages"
)

// Child is a first-class handle on the virtual-file host process. The
// orchestrator owns it exclusively and releases it (waits on it) exactly once
// on every exit path.
type Child interface {
	// TryWait reports whether the process has exited, without blocking.
	// code is only meaningful when done is true.
	TryWait() (done bool, code int)
	// Wait blocks until the process exits and returns its exit code.
	Wait() (int, error)
	// Kill terminates the process forcibly (uncatchable).
	Kill() error
}

// Spawner starts a virtual-file host serving the given package path.
type Spawner interface {
	Spawn(packagePath string) (Child, error)
}

// SelfSpawner re-executes the current binary's host subcommand, giving the
// host its mandatory dedicated process.
type SelfSpawner struct{}

// Spawn starts `<self> host --package <path>` and returns its handle.
func (SelfSpawner) Spawn(packagePath string) (Child, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf(messages.ChildSpawnFmt, err)
	}
	cmd := exec.Command(exe, "host", "--package", packagePath)
	cmd.Stderr = os.Stderr
	return startChild(cmd)
}

// execChild wraps exec.Cmd with a wait goroutine so TryWait is a non-blocking
// channel select. The goroutine is the single reaper; Wait and TryWait only
// observe its result.
type execChild struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func startChild(cmd *exec.Cmd) (Child, error) {
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf(messages.ChildSpawnFmt, err)
	}
	c := &execChild{cmd: cmd, done: make(chan struct{})}
	go func() {
		c.waitErr = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

func (c *execChild) TryWait() (bool, int) {
	select {
	case <-c.done:
		return true, c.exitCode()
	default:
		return false, 0
	}
}

func (c *execChild) Wait() (int, error) {
	<-c.done
	code := c.exitCode()
	if code < 0 {
		return code, c.waitErr
	}
	return code, nil
}

func (c *execChild) Kill() error {
	return c.cmd.Process.Kill()
}

// exitCode is -1 when the process was terminated by a signal.
func (c *execChild) exitCode() int {
	if c.waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(c.waitErr, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
