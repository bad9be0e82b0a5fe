package messages

// Install messages cover the orchestrator, browsing, and installer adapter.
const (
	// InstallStartingFmt announces the install of a selected package.
	InstallStartingFmt = "\n-- Install %s ...\n"

	InstallMountFailedFmt     = "Failed to mount external storage: %v\n"
	InstallSpawnFailedFmt     = "Failed to start the virtual-file host: %v\n"
	InstallHostTimedOut       = "Timed out waiting for the host-provided package.\n"
	InstallHostDied           = "The virtual-file host exited before the package was ready.\n"
	InstallHostExitErrorFmt   = "Error exit from the virtual-file host: %v\n"
	InstallBootMarkerErrorFmt = "Failed to set the reboot marker: %v\n"
	InstallFailedFmt          = "Installation aborted: %v\n"

	// BrowseOpenDirErrorFmt reports an unreadable directory during browsing.
	BrowseOpenDirErrorFmt = "error opening %s: %v\n"

	// InstallerStartFailedFmt reports an updater binary that would not run.
	InstallerStartFailedFmt = "updater failed to start: %v\n"
	InstallerUnknownCodeFmt = "updater returned unknown status %d\n"
)
