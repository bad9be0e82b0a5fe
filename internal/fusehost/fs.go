package fusehost

import (
	"context"
	"io"
	"sync"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

const packageIno = 2

// sideloadRoot is the read-only root directory exposing exactly one regular
// file. A lookup of the exit name requests shutdown and answers ENOENT.
type sideloadRoot struct {
	fs.Inode

	provider *FileProvider
	exitOnce sync.Once
	exit     chan struct{}
}

var _ = (fs.NodeLookuper)((*sideloadRoot)(nil))
var _ = (fs.NodeReaddirer)((*sideloadRoot)(nil))

func newSideloadRoot(provider *FileProvider) *sideloadRoot {
	return &sideloadRoot{provider: provider, exit: make(chan struct{})}
}

// requestExit signals shutdown; safe to trigger more than once.
func (r *sideloadRoot) requestExit() {
	r.exitOnce.Do(func() { close(r.exit) })
}

func (r *sideloadRoot) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	switch name {
	case ExitName:
		// The stat itself is the shutdown signal; the entry never exists.
		r.requestExit()
		return nil, syscall.ENOENT
	case PackageName:
		child := r.NewInode(ctx, &packageNode{provider: r.provider},
			fs.StableAttr{Mode: fuse.S_IFREG, Ino: packageIno})
		out.Mode = fuse.S_IFREG | 0o444
		out.Size = uint64(r.provider.Size())
		return child, 0
	}
	return nil, syscall.ENOENT
}

func (r *sideloadRoot) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	return fs.NewListDirStream([]fuse.DirEntry{
		{Name: PackageName, Mode: fuse.S_IFREG, Ino: packageIno},
	}), 0
}

// packageNode serves the package file bytes.
type packageNode struct {
	fs.Inode

	provider *FileProvider
}

var _ = (fs.NodeGetattrer)((*packageNode)(nil))
var _ = (fs.NodeOpener)((*packageNode)(nil))
var _ = (fs.NodeReader)((*packageNode)(nil))

func (n *packageNode) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	out.Mode = fuse.S_IFREG | 0o444
	out.Size = uint64(n.provider.Size())
	return 0
}

func (n *packageNode) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	if flags&(syscall.O_WRONLY|syscall.O_RDWR) != 0 {
		return nil, 0, syscall.EACCES
	}
	return nil, fuse.FOPEN_KEEP_CACHE, 0
}

func (n *packageNode) Read(ctx context.Context, f fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	nread, err := n.provider.ReadAt(dest, off)
	if err != nil && err != io.EOF {
		return nil, syscall.EIO
	}
	return fuse.ReadResultData(dest[:nread]), 0
}
