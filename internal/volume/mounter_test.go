package volume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

type fakeManager struct {
	mountOK   bool
	mounted   []string
	unmounted []string
}

func (m *fakeManager) Mount(id string) bool {
	m.mounted = append(m.mounted, id)
	return m.mountOK
}

func (m *fakeManager) Unmount(id string) bool {
	m.unmounted = append(m.unmounted, id)
	return true
}

type mountCall struct {
	source, target, fstype, data string
	flags                        uintptr
}

func TestMountDelegatesToVolumeManager(t *testing.T) {
	manager := &fakeManager{mountOK: true}
	m := &Mounter{
		Volumes:    manager,
		BootDevice: func() string { return "1d84000.sdhci" },
		MountFunc: func(string, string, string, uintptr, string) error {
			t.Fatal("raw mount must not be attempted on non-UFS devices")
			return nil
		},
	}

	err := m.Mount(&Descriptor{ID: "sdcard", MountPoint: "/sdcard", FSType: "vfat"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sdcard"}, manager.mounted)
}

func TestMountVolumeManagerFailure(t *testing.T) {
	m := &Mounter{
		Volumes:    &fakeManager{mountOK: false},
		BootDevice: func() string { return "1d84000.sdhci" },
	}

	err := m.Mount(&Descriptor{ID: "sdcard", MountPoint: "/sdcard", FSType: "vfat"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVolumeManager)
}

func TestMountUFSRawFallback(t *testing.T) {
	var call *mountCall
	manager := &fakeManager{mountOK: true}
	m := &Mounter{
		Volumes:    manager,
		BootDevice: func() string { return "1d84000.ufshc" },
		MountFunc: func(source, target, fstype string, flags uintptr, data string) error {
			call = &mountCall{source: source, target: target, fstype: fstype, flags: flags, data: data}
			return nil
		},
	}

	v := &Descriptor{
		ID:               "sdcard",
		MountPoint:       "/sdcard",
		FSType:           "vfat",
		Flags:            []string{"noatime"},
		FSOptions:        "shortname=lower",
		FallbackBlockDev: "/dev/block/mmcblk0p1",
	}
	require.NoError(t, m.Mount(v))

	require.NotNil(t, call)
	assert.Equal(t, "/dev/block/mmcblk0p1", call.source)
	assert.Equal(t, "/sdcard", call.target)
	assert.Equal(t, "vfat", call.fstype)
	assert.Equal(t, uintptr(unix.MS_NOATIME), call.flags)
	assert.Equal(t, "shortname=lower", call.data)
	assert.Empty(t, manager.mounted, "volume manager must be bypassed on UFS devices")
}

func TestMountUFSRejectsWrongFilesystem(t *testing.T) {
	attempted := false
	m := &Mounter{
		Volumes:    &fakeManager{mountOK: true},
		BootDevice: func() string { return "1d84000.ufshc" },
		MountFunc: func(string, string, string, uintptr, string) error {
			attempted = true
			return nil
		},
	}

	err := m.Mount(&Descriptor{ID: "sdcard", MountPoint: "/sdcard", FSType: "ext4"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFilesystem)
	assert.False(t, attempted, "mismatched fs type is a hard error, not a mount attempt")
}

func TestMountUFSSyscallFailure(t *testing.T) {
	m := &Mounter{
		Volumes:    &fakeManager{},
		BootDevice: func() string { return "1d84000.ufshc" },
		MountFunc: func(string, string, string, uintptr, string) error {
			return errors.New("no such device")
		},
	}

	err := m.Mount(&Descriptor{ID: "sdcard", MountPoint: "/sdcard", FSType: "vfat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such device")
}
