// Package volume describes mountable removable-storage volumes and mounts them.
package volume

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"

	"github.com/conn-castle/sideload/internal/messages"
)

// DefaultTablePath is where the recovery image ships its volume table.
const DefaultTablePath = "/etc/recovery.volumes.toml"

// defaultFallbackBlockDev is the raw block device used when the boot storage
// controller requires bypassing the volume manager.
const defaultFallbackBlockDev = "/dev/block/mmcblk0p1"

// Descriptor identifies one mountable storage volume. It is resolved once per
// install attempt and unmounted unconditionally when the attempt ends.
type Descriptor struct {
	ID               string   `toml:"id"`
	MountPoint       string   `toml:"mount_point"`
	FSType           string   `toml:"fs_type"`
	Flags            []string `toml:"flags"`
	FSOptions        string   `toml:"fs_options"`
	FallbackBlockDev string   `toml:"fallback_block_dev"`
}

// Table is the parsed volume table.
type Table struct {
	Volumes []Descriptor `toml:"volumes"`
}

// mountFlagBits maps fstab-style option names to mount(2) flag bits.
var mountFlagBits = map[string]uintptr{
	"ro":       unix.MS_RDONLY,
	"nosuid":   unix.MS_NOSUID,
	"nodev":    unix.MS_NODEV,
	"noexec":   unix.MS_NOEXEC,
	"noatime":  unix.MS_NOATIME,
	"relatime": unix.MS_RELATIME,
	"sync":     unix.MS_SYNCHRONOUS,
	"dirsync":  unix.MS_DIRSYNC,
}

// LoadTable reads and validates the volume table from disk.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.VolumeTableMissingFileFmt, path, err)
	}
	return ParseTable(data, path)
}

// ParseTable parses and validates volume table TOML data.
// data is the TOML content; source is used in error messages.
func ParseTable(data []byte, source string) (*Table, error) {
	var table Table
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf(messages.VolumeTableInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf(messages.VolumeTableUnknownKeysFmt, source, err)
	}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf(messages.VolumeTableInvalidFmt, source, err)
	}
	return &table, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var table Table
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&table)
}

func (t *Table) validate() error {
	if len(t.Volumes) == 0 {
		return fmt.Errorf(messages.VolumeTableNoVolumes)
	}
	seen := make(map[string]bool, len(t.Volumes))
	for i := range t.Volumes {
		v := &t.Volumes[i]
		if v.ID == "" {
			return fmt.Errorf(messages.VolumeTableMissingIDFmt, i)
		}
		if seen[v.ID] {
			return fmt.Errorf(messages.VolumeTableDuplicateIDFmt, v.ID)
		}
		seen[v.ID] = true
		if v.MountPoint == "" {
			return fmt.Errorf(messages.VolumeTableMissingMountFmt, v.ID)
		}
		if v.FSType == "" {
			return fmt.Errorf(messages.VolumeTableMissingFSTypeFmt, v.ID)
		}
		for _, name := range v.Flags {
			if _, ok := mountFlagBits[name]; !ok {
				return fmt.Errorf(messages.VolumeTableUnknownFlagFmt, v.ID, name)
			}
		}
		if v.FallbackBlockDev == "" {
			v.FallbackBlockDev = defaultFallbackBlockDev
		}
	}
	return nil
}

// ForID returns the descriptor with the given volume id.
func (t *Table) ForID(id string) (*Descriptor, bool) {
	for i := range t.Volumes {
		if t.Volumes[i].ID == id {
			return &t.Volumes[i], true
		}
	}
	return nil, false
}

// ForMountPoint returns the descriptor declared for the given mount point.
func (t *Table) ForMountPoint(path string) (*Descriptor, bool) {
	for i := range t.Volumes {
		if t.Volumes[i].MountPoint == path {
			return &t.Volumes[i], true
		}
	}
	return nil, false
}

// flagBits resolves fstab-style option names into mount(2) flag bits.
// Unknown names are rejected during table validation, so they are skipped here.
func flagBits(names []string) uintptr {
	var bits uintptr
	for _, name := range names {
		bits |= mountFlagBits[name]
	}
	return bits
}
