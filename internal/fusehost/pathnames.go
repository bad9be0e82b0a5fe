// Package fusehost serves one package file's bytes through the well-known
// sideload mount point. It must run in a dedicated child process: a FUSE
// request serviced on the same stack that issued the triggering access
// deadlocks on the kernel/userspace turnaround.
package fusehost

import "github.com/conn-castle/sideload/internal/sigpath"

// The pathname contract between the orchestrator and the host. These values
// are bit-exact on both sides and are not configurable.
const (
	// MountPoint is where the host mounts the single-file filesystem.
	MountPoint = "/sideload"
	// PackageName is the one file the filesystem exposes.
	PackageName = "package.zip"
	// HostPathname exists once the host is ready; its existence is the
	// ready signal the orchestrator polls for.
	HostPathname = MountPoint + "/" + PackageName
	// ExitName is the magic directory entry whose lookup shuts the host down.
	ExitName = "exit"
	// ExitPathname is the path the orchestrator stats to request shutdown.
	ExitPathname = MountPoint + "/" + ExitName
)

// BlockSize is the fixed I/O block size for package reads.
const BlockSize = 65536

// SignalChannel returns the signal channel rooted at the host pathnames,
// keeping both ends of the contract on the same constants.
func SignalChannel() sigpath.Channel {
	return sigpath.Channel{ReadyPath: HostPathname, ExitPath: ExitPathname}
}
