package fusehost

import (
	"fmt"
	"os"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/rs/zerolog"

	"github.com/conn-castle/sideload/internal/messages"
)

// Run serves the package at path through the sideload mount point until the
// exit pathname is looked up, then unmounts and returns. The process exit
// status derived from the returned error is the host's validity indicator:
// nil means the package was served and shut down cleanly.
func Run(path string, logger zerolog.Logger) error {
	provider, err := NewFileProvider(path, BlockSize)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Close() }()

	if err := os.MkdirAll(MountPoint, 0o755); err != nil {
		return fmt.Errorf(messages.HostCreateMountPointFmt, MountPoint, err)
	}

	root := newSideloadRoot(provider)
	server, err := fs.Mount(MountPoint, root, &fs.Options{
		MountOptions: fuse.MountOptions{
			Name:         "sideload",
			FsName:       "sideload",
			Options:      []string{"ro"},
			MaxWrite:     BlockSize,
			MaxReadAhead: BlockSize,
		},
	})
	if err != nil {
		return fmt.Errorf(messages.HostMountFailedFmt, MountPoint, err)
	}

	logger.Info().
		Str("package", path).
		Int64("size", provider.Size()).
		Str("mount_point", MountPoint).
		Msg("serving package")

	<-root.exit
	logger.Info().Msg("exit requested, unmounting")
	shutdown(server, logger)
	return nil
}

// serverControl is the subset of the FUSE server used during teardown.
type serverControl interface {
	Unmount() error
	Wait()
}

// shutdown unmounts the filesystem and waits for the serve loop to drain.
// The package was already served and shutdown was requested, so an unmount
// failure is logged rather than turned into a nonzero host exit; the exit
// status only reports whether the package could be served at all.
func shutdown(server serverControl, logger zerolog.Logger) {
	if err := server.Unmount(); err != nil {
		logger.Error().Err(err).Msg("unmount failed")
		return
	}
	server.Wait()
}
