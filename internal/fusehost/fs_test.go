package fusehost

import (
	"context"
	"syscall"
	"testing"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(t *testing.T) *FileProvider {
	t.Helper()
	p, err := NewFileProvider(writePackage(t, []byte("0123456789")), BlockSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestLookupExitNameSignalsShutdown(t *testing.T) {
	root := newSideloadRoot(testProvider(t))

	var out fuse.EntryOut
	node, errno := root.Lookup(context.Background(), ExitName, &out)
	assert.Nil(t, node, "the exit entry never exists")
	assert.Equal(t, syscall.ENOENT, errno)

	select {
	case <-root.exit:
	default:
		t.Fatal("exit lookup did not request shutdown")
	}
}

func TestLookupUnknownNameDoesNotSignal(t *testing.T) {
	root := newSideloadRoot(testProvider(t))

	var out fuse.EntryOut
	node, errno := root.Lookup(context.Background(), "other.zip", &out)
	assert.Nil(t, node)
	assert.Equal(t, syscall.ENOENT, errno)

	select {
	case <-root.exit:
		t.Fatal("a miss on an ordinary name must not request shutdown")
	default:
	}
}

func TestRequestExitIdempotent(t *testing.T) {
	root := newSideloadRoot(testProvider(t))
	root.requestExit()
	root.requestExit()
	<-root.exit
}

func TestReaddirListsOnlyPackage(t *testing.T) {
	root := newSideloadRoot(testProvider(t))

	stream, errno := root.Readdir(context.Background())
	require.Equal(t, syscall.Errno(0), errno)

	require.True(t, stream.HasNext())
	entry, errno := stream.Next()
	require.Equal(t, syscall.Errno(0), errno)
	assert.Equal(t, PackageName, entry.Name)
	assert.Equal(t, uint32(fuse.S_IFREG), entry.Mode)
	assert.Equal(t, uint64(packageIno), entry.Ino)
	assert.False(t, stream.HasNext(), "the directory holds exactly one entry")
}

func TestPackageNodeGetattr(t *testing.T) {
	node := &packageNode{provider: testProvider(t)}

	var out fuse.AttrOut
	errno := node.Getattr(context.Background(), nil, &out)
	require.Equal(t, syscall.Errno(0), errno)
	assert.Equal(t, uint64(10), out.Size)
	assert.Equal(t, uint32(fuse.S_IFREG|0o444), out.Mode)
}

func TestPackageNodeOpenRejectsWrites(t *testing.T) {
	node := &packageNode{provider: testProvider(t)}
	ctx := context.Background()

	_, _, errno := node.Open(ctx, uint32(syscall.O_WRONLY))
	assert.Equal(t, syscall.EACCES, errno)

	_, _, errno = node.Open(ctx, uint32(syscall.O_RDWR))
	assert.Equal(t, syscall.EACCES, errno)

	fh, flags, errno := node.Open(ctx, uint32(syscall.O_RDONLY))
	require.Equal(t, syscall.Errno(0), errno)
	assert.Nil(t, fh)
	assert.Equal(t, uint32(fuse.FOPEN_KEEP_CACHE), flags)
}

func TestPackageNodeRead(t *testing.T) {
	node := &packageNode{provider: testProvider(t)}

	res, errno := node.Read(context.Background(), nil, make([]byte, 8), 6)
	require.Equal(t, syscall.Errno(0), errno)

	data, status := res.Bytes(nil)
	require.Equal(t, fuse.OK, status)
	assert.Equal(t, "6789", string(data), "reads clamp at the package size")
}
