package messages

// System messages for internal operations.
const (
	// VolumeTableMissingFileFmt reports an unreadable volume table.
	VolumeTableMissingFileFmt   = "read volume table %s: %w"
	VolumeTableInvalidFmt       = "invalid volume table %s: %w"
	VolumeTableUnknownKeysFmt   = "volume table %s has unrecognized keys: %w"
	VolumeTableNoVolumes        = "volume table declares no volumes"
	VolumeTableMissingIDFmt     = "volume %d: id is required"
	VolumeTableMissingMountFmt  = "volume %q: mount_point is required"
	VolumeTableMissingFSTypeFmt = "volume %q: fs_type is required"
	VolumeTableUnknownFlagFmt   = "volume %q: unknown mount flag %q"
	VolumeTableDuplicateIDFmt   = "duplicate volume id %q"

	// MountUnsupportedFSFmt reports an fstype mismatch on the raw fallback path.
	MountUnsupportedFSFmt = "unsupported filesystem on %s: %q (want %q)"
	MountSyscallFailedFmt = "mount %s on %s: %w"
	MountVolumeManagerFmt = "volume manager failed to mount %q"

	// ProviderOpenFmt reports a package file the host cannot open.
	ProviderOpenFmt    = "open package %s: %w"
	ProviderStatFmt    = "stat package %s: %w"
	ProviderNotFileFmt = "package %s is not a regular file"
	ProviderEmptyFmt   = "package %s is empty"

	// HostMountFailedFmt reports a FUSE mount failure in the host process.
	HostMountFailedFmt      = "mount sideload filesystem at %s: %w"
	HostCreateMountPointFmt = "create mount point %s: %w"

	// BootMarkerEncodeTooLong reports oversized bootloader message options.
	BootMarkerEncodeTooLongFmt = "bootloader message options exceed %d bytes"
	BootMarkerOpenFmt          = "open misc device %s: %w"
	BootMarkerWriteFmt         = "write bootloader message to %s: %w"

	// ChildSpawnFmt reports a virtual-file host that could not be started.
	ChildSpawnFmt = "spawn virtual-file host: %w"
)
