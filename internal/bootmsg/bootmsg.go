// Package bootmsg writes the bootloader control block that makes the device
// reboot back into recovery while an install from external storage is in
// flight. The marker is best-effort: callers log a failed write and continue.
package bootmsg

import (
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/sideload/internal/messages"
)

// Writer records a pending-reboot marker before the risky install step.
type Writer interface {
	SetPendingReboot(options []string) error
}

// Fixed control block layout, bit-compatible with the bootloader:
// command(32) status(32) recovery(768) stage(32) reserved(1184) = 2048 bytes.
const (
	commandSize  = 32
	statusSize   = 32
	recoverySize = 768
	stageSize    = 32
	blockSize    = 2048

	bootCommand  = "boot-recovery"
	recoveryHead = "recovery\n"
)

// DefaultMiscDevice is where the control block lives on most devices.
const DefaultMiscDevice = "/dev/block/by-name/misc"

// BCBWriter writes the control block at offset 0 of the misc block device.
type BCBWriter struct {
	// MiscDevice overrides DefaultMiscDevice, mainly for tests.
	MiscDevice string
}

func (w BCBWriter) device() string {
	if w.MiscDevice != "" {
		return w.MiscDevice
	}
	return DefaultMiscDevice
}

// SetPendingReboot encodes the control block with the given recovery options
// and writes it to the misc device.
func (w BCBWriter) SetPendingReboot(options []string) error {
	block, err := encode(options)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(w.device(), os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf(messages.BootMarkerOpenFmt, w.device(), err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteAt(block, 0); err != nil {
		return fmt.Errorf(messages.BootMarkerWriteFmt, w.device(), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf(messages.BootMarkerWriteFmt, w.device(), err)
	}
	return nil
}

// encode lays out the fixed-size control block. The recovery field is
// "recovery\n" followed by one option per line.
func encode(options []string) ([]byte, error) {
	var recovery strings.Builder
	recovery.WriteString(recoveryHead)
	for _, opt := range options {
		recovery.WriteString(opt)
		recovery.WriteByte('\n')
	}
	if recovery.Len() > recoverySize {
		return nil, fmt.Errorf(messages.BootMarkerEncodeTooLongFmt, recoverySize)
	}

	block := make([]byte, blockSize)
	copy(block[0:commandSize], bootCommand)
	copy(block[commandSize+statusSize:commandSize+statusSize+recoverySize], recovery.String())
	return block, nil
}
