package install

import (
	"errors"
	"time"

	"github.com/conn-castle/sideload/internal/bootmsg"
	"github.com/conn-castle/sideload/internal/browse"
	"github.com/conn-castle/sideload/internal/fusehost"
	"github.com/conn-castle/sideload/internal/messages"
	"github.com/conn-castle/sideload/internal/sigpath"
	"github.com/conn-castle/sideload/internal/volume"
)

// How long we wait for the host-provided package file to appear: one stat per
// second, ten attempts.
const (
	readyPollInterval = time.Second
	readyPollAttempts = 10
)

// Confirmer gathers explicit user approval for risky re-invocations.
type Confirmer interface {
	ConfirmUnverifiedInstall() bool
	ConfirmDowngrade() bool
}

// UI prints user-visible progress and failure messages. Every failure path
// prints before returning; nothing fails silently.
type UI interface {
	Print(format string, args ...any)
}

// Orchestrator glues mounting, browsing, the virtual-file host, and the
// installer together for one install attempt. It is single-use and
// non-reentrant; only it may mutate the volume's mount state.
type Orchestrator struct {
	Mounter    *volume.Mounter
	Volumes    volume.Manager
	Menu       browse.MenuPresenter
	Spawner    Spawner
	Installer  Installer
	BootMarker bootmsg.Writer
	Confirm    Confirmer
	UI         UI

	// Test seams; zero values select the real channel and poll bounds.
	signals      sigpath.Channel
	pollInterval time.Duration
	pollAttempts int
}

// Apply installs a package chosen interactively from the given volume.
// The volume is unmounted on every return path except the navigate-home
// branch, which deliberately leaves it mounted for a subsequent attempt.
func (o *Orchestrator) Apply(v *volume.Descriptor) Outcome {
	if err := o.Mounter.Mount(v); err != nil {
		o.UI.Print(messages.InstallMountFailedFmt, err)
		return OutcomeError
	}

	result, err := browse.Browse(v.MountPoint, o.Menu, o.UI)
	if err != nil {
		o.UI.Print(messages.InstallFailedFmt, err)
		o.Volumes.Unmount(v.ID)
		return OutcomeError
	}
	switch result.Kind {
	case browse.WentHome:
		// Back to the main menu; the volume stays mounted for the next attempt.
		return OutcomeNone
	case browse.Cancelled:
		o.Volumes.Unmount(v.ID)
		return OutcomeNone
	}

	o.UI.Print(messages.InstallStartingFmt, result.Path)

	// Best effort: an interrupted install should reboot back into recovery.
	if o.BootMarker != nil {
		if err := o.BootMarker.SetPendingReboot(nil); err != nil {
			o.UI.Print(messages.InstallBootMarkerErrorFmt, err)
		}
	}

	child, err := o.Spawner.Spawn(result.Path)
	if err != nil {
		o.UI.Print(messages.InstallSpawnFailedFmt, err)
		o.Volumes.Unmount(v.ID)
		return OutcomeError
	}

	signals := o.signals
	if signals == (sigpath.Channel{}) {
		signals = fusehost.SignalChannel()
	}
	interval, attempts := o.pollInterval, o.pollAttempts
	if interval == 0 {
		interval = readyPollInterval
	}
	if attempts == 0 {
		attempts = readyPollAttempts
	}

	outcome := OutcomeError
	waited := false
	err = signals.WaitReady(interval, attempts, func() bool {
		done, _ := child.TryWait()
		return done
	})
	switch {
	case err == nil:
		// Readiness detected; the installer runs exactly once from here
		// (plus any confirmed re-invocation).
		outcome = o.installFromHost(signals.ReadyPath)
	case errors.Is(err, sigpath.ErrChildGone):
		o.UI.Print(messages.InstallHostDied)
		waited = true
	case errors.Is(err, sigpath.ErrTimeout):
		o.UI.Print(messages.InstallHostTimedOut)
		_ = child.Kill()
	default:
		o.UI.Print(messages.InstallFailedFmt, err)
		_ = child.Kill()
	}

	if waited {
		// The host is already dead; just validate its status.
		if _, code := child.TryWait(); code != 0 {
			o.UI.Print(messages.InstallHostExitErrorFmt, code)
		}
	} else {
		// The stat on the exit pathname signals the host to shut down.
		signals.SignalExit()
		code, werr := child.Wait()
		if werr != nil {
			o.UI.Print(messages.InstallHostExitErrorFmt, werr)
		} else if code != 0 {
			o.UI.Print(messages.InstallHostExitErrorFmt, code)
		}
	}

	o.Volumes.Unmount(v.ID)
	return outcome
}

// installFromHost invokes the installer against the host-provided path with
// verification on and downgrades blocked, then handles the two confirmable
// branch points. Declining a confirmation finalizes the first outcome.
func (o *Orchestrator) installFromHost(hostPath string) Outcome {
	outcome := o.Installer.Install(hostPath, false, true, 0, false)
	if outcome == OutcomeUnverifiedPackage && o.Confirm.ConfirmUnverifiedInstall() {
		outcome = o.Installer.Install(hostPath, false, false, 0, false)
	} else if outcome == OutcomeDowngradeBlocked && o.Confirm.ConfirmDowngrade() {
		outcome = o.Installer.Install(hostPath, false, false, 0, true)
	}
	return outcome
}
