package volume

import (
	"os"
	"os/exec"
)

// Manager mounts and unmounts volumes by id through the recovery volume
// manager. It reports only success or failure; no further detail is available
// from the daemon's control protocol.
type Manager interface {
	Mount(id string) bool
	Unmount(id string) bool
}

// VoldClient drives the volume-manager control binary.
type VoldClient struct {
	// Binary is the control binary name; defaults to "minivold-ctl".
	Binary string
}

const defaultVoldBinary = "minivold-ctl"

func (c VoldClient) binary() string {
	if c.Binary != "" {
		return c.Binary
	}
	return defaultVoldBinary
}

// Mount asks the volume manager to mount the volume with the given id.
func (c VoldClient) Mount(id string) bool {
	return c.run("mount", id)
}

// Unmount asks the volume manager to unmount the volume with the given id.
func (c VoldClient) Unmount(id string) bool {
	return c.run("unmount", id)
}

func (c VoldClient) run(op string, id string) bool {
	cmd := exec.Command(c.binary(), op, id)
	cmd.Stderr = os.Stderr
	return cmd.Run() == nil
}
