package install

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/conn-castle/sideload/internal/messages"
)

// Installer performs the actual package verification and installation. Its
// internals are out of scope here; the orchestrator only interprets outcomes.
type Installer interface {
	Install(path string, isRetry bool, verify bool, retryCount int, allowDowngrade bool) Outcome
}

// Updater exit codes, part of the contract with the external updater binary.
const (
	updaterCodeSuccess    = 0
	updaterCodeError      = 1
	updaterCodeNone       = 2
	updaterCodeUnverified = 3
	updaterCodeDowngrade  = 4
)

const defaultUpdaterBinary = "recovery-updater"

// ExecInstaller invokes the external updater binary and maps its exit status
// to an Outcome.
type ExecInstaller struct {
	// Binary is the updater binary name; defaults to "recovery-updater".
	Binary string
	// UI receives installer failure messages.
	UI UI
}

func (e ExecInstaller) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return defaultUpdaterBinary
}

// Install runs the updater against path with the given verification and
// downgrade policy.
func (e ExecInstaller) Install(path string, isRetry bool, verify bool, retryCount int, allowDowngrade bool) Outcome {
	args := []string{path, fmt.Sprintf("--retry-count=%d", retryCount)}
	if isRetry {
		args = append(args, "--retry")
	}
	if !verify {
		args = append(args, "--skip-verification")
	}
	if allowDowngrade {
		args = append(args, "--allow-downgrade")
	}

	cmd := exec.Command(e.binary(), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return OutcomeSuccess
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		e.print(messages.InstallerStartFailedFmt, err)
		return OutcomeError
	}
	switch exitErr.ExitCode() {
	case updaterCodeError:
		return OutcomeError
	case updaterCodeNone:
		return OutcomeNone
	case updaterCodeUnverified:
		return OutcomeUnverifiedPackage
	case updaterCodeDowngrade:
		return OutcomeDowngradeBlocked
	}
	e.print(messages.InstallerUnknownCodeFmt, exitErr.ExitCode())
	return OutcomeError
}

func (e ExecInstaller) print(format string, args ...any) {
	if e.UI != nil {
		e.UI.Print(format, args...)
	}
}
