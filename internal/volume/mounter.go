package volume

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/sideload/internal/messages"
)

// ErrUnsupportedFilesystem is returned when the raw block-device fallback is
// required but the volume's declared filesystem type is not the supported one.
var ErrUnsupportedFilesystem = errors.New("unsupported filesystem type")

// ErrVolumeManager is returned when the volume manager reports a mount failure.
var ErrVolumeManager = errors.New("volume manager mount failed")

// ufsBootDeviceSuffix marks boot storage controllers whose volume-manager path
// is broken; such devices get a raw block-device mount instead.
const ufsBootDeviceSuffix = ".ufshc"

// rawFallbackFSType is the only filesystem type the raw fallback mount
// supports. A volume declaring anything else is a hard error, not a retry.
const rawFallbackFSType = "vfat"

// Mounter selects and mounts the removable-storage volume.
type Mounter struct {
	Volumes Manager
	// BootDevice returns the boot storage device name. Defaults to reading
	// the androidboot.bootdevice token from /proc/cmdline.
	BootDevice func() string
	// MountFunc performs the raw mount syscall. Defaults to unix.Mount.
	MountFunc func(source, target, fstype string, flags uintptr, data string) error
}

// Mount mounts v, either through the volume manager or, on UFS boot devices,
// by mounting the volume's fallback block device directly. No retries: the
// caller surfaces any failure as an install failure.
func (m *Mounter) Mount(v *Descriptor) error {
	bootDevice := m.BootDevice
	if bootDevice == nil {
		bootDevice = cmdlineBootDevice
	}
	if strings.HasSuffix(bootDevice(), ufsBootDeviceSuffix) {
		return m.mountRaw(v)
	}
	if !m.Volumes.Mount(v.ID) {
		return fmt.Errorf(messages.MountVolumeManagerFmt+": %w", v.ID, ErrVolumeManager)
	}
	return nil
}

// mountRaw mounts the volume's fallback block device at its declared mount
// point. The declared filesystem type must match the supported type exactly
// before the mount is attempted.
func (m *Mounter) mountRaw(v *Descriptor) error {
	if v.FSType != rawFallbackFSType {
		return fmt.Errorf(messages.MountUnsupportedFSFmt+": %w",
			v.MountPoint, v.FSType, rawFallbackFSType, ErrUnsupportedFilesystem)
	}
	mount := m.MountFunc
	if mount == nil {
		mount = unix.Mount
	}
	if err := mount(v.FallbackBlockDev, v.MountPoint, v.FSType, flagBits(v.Flags), v.FSOptions); err != nil {
		return fmt.Errorf(messages.MountSyscallFailedFmt, v.FallbackBlockDev, v.MountPoint, err)
	}
	return nil
}

// cmdlineBootDevice extracts the androidboot.bootdevice value from the kernel
// command line. Missing or unreadable cmdline yields an empty name.
func cmdlineBootDevice() string {
	data, err := os.ReadFile("/proc/cmdline")
	if err != nil {
		return ""
	}
	for _, token := range strings.Fields(string(data)) {
		if value, ok := strings.CutPrefix(token, "androidboot.bootdevice="); ok {
			return value
		}
	}
	return ""
}
