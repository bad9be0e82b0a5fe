package fusehost

import (
	"fmt"
	"os"

	"github.com/conn-castle/sideload/internal/messages"
)

// FileProvider reads a package file in fixed-size blocks. Construction
// validates that the file can actually be served; a provider that cannot read
// its file never exists.
type FileProvider struct {
	file      *os.File
	size      int64
	blockSize int
}

// NewFileProvider opens path and validates it is a readable, non-empty
// regular file.
func NewFileProvider(path string, blockSize int) (*FileProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ProviderOpenFmt, path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf(messages.ProviderStatFmt, path, err)
	}
	if !fi.Mode().IsRegular() {
		_ = f.Close()
		return nil, fmt.Errorf(messages.ProviderNotFileFmt, path)
	}
	if fi.Size() == 0 {
		_ = f.Close()
		return nil, fmt.Errorf(messages.ProviderEmptyFmt, path)
	}
	return &FileProvider{file: f, size: fi.Size(), blockSize: blockSize}, nil
}

// Size returns the package file size in bytes.
func (p *FileProvider) Size() int64 {
	return p.size
}

// BlockSize returns the fixed I/O block size.
func (p *FileProvider) BlockSize() int {
	return p.blockSize
}

// ReadAt reads len(dest) bytes at offset off, clamped to the file size.
func (p *FileProvider) ReadAt(dest []byte, off int64) (int, error) {
	if off >= p.size {
		return 0, nil
	}
	if remain := p.size - off; int64(len(dest)) > remain {
		dest = dest[:remain]
	}
	return p.file.ReadAt(dest, off)
}

// Close releases the underlying file.
func (p *FileProvider) Close() error {
	return p.file.Close()
}
