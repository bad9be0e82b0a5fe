package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "sideload"
	// RootShort is the short description for the root command.
	RootShort = "Install packages from external storage in recovery"
	RootLong  = "sideload mounts removable storage, lets you pick a package, and installs it\nthrough a virtual single-file filesystem hosted in a dedicated process."

	VersionTemplate = "{{.Version}}\n"
	VersionFullFmt  = "%s (%s)"
	VersionCommit   = "commit %s"

	// ApplyUse is the apply command usage.
	ApplyUse   = "apply"
	ApplyShort = "Mount storage, choose a package, and install it"
	ApplyLong  = "Mount the removable-storage volume, browse it for a package, and install the\nselected package through the virtual-file host."

	ApplyFlagVolume = "Volume id to install from"
	ApplyFlagTable  = "Path to the volume table"

	ApplyUnknownVolumeFmt = "unknown volume %q in %s"
	ApplyRequiresTerminal = "apply requires an interactive terminal"
	ApplyComplete         = "Install complete."
	ApplyFailed           = "Install failed."

	// HostUse is the host command usage.
	HostUse   = "host"
	HostShort = "Serve one package file through the sideload mount point"
	HostLong  = "Run the virtual-file host. This command is spawned by 'sideload apply' and must\nrun in its own process; do not invoke it by hand unless debugging."

	HostFlagPackage     = "Path of the package file to serve"
	HostPackageRequired = "--package is required"

	// VolumesUse is the volumes command usage.
	VolumesUse   = "volumes"
	VolumesShort = "List the configured storage volumes"

	VolumesHeader = "ID\tMOUNT POINT\tFSTYPE\tFALLBACK"
	VolumesRowFmt = "%s\t%s\t%s\t%s\n"

	// BrowseChoosePackage titles the package selection menu.
	BrowseChoosePackage = "Choose a package to install:"

	ConfirmUnverifiedPrompt = "Signature verification failed. Install anyway?"
	ConfirmDowngradePrompt  = "This package is a downgrade. Install anyway?"
)
