package fs

import (
	"fmt"
	"io"
	"os"
)

// DefaultMmapThreshold is the file size from which ReadFile maps the file
// instead of reading it through a buffer.
const DefaultMmapThreshold = 8 * 1024 * 1024 // 8 MiB

// OSFS is a production implementation of FS using the standard library.
type OSFS struct {
	// MmapThreshold overrides DefaultMmapThreshold when positive.
	MmapThreshold int64
}

func NewOSFS() *OSFS {
	return &OSFS{}
}

func (r *OSFS) Stat(path string) (os.FileInfo, error) {
	return stat(path)
}

// ReadFile returns the file contents. Files at or above the mmap threshold
// are copied out of a read-only mapping.
func (r *OSFS) ReadFile(path string) ([]byte, error) {
	threshold := r.MmapThreshold
	if threshold <= 0 {
		threshold = DefaultMmapThreshold
	}
	fi, err := stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() || fi.Size() < threshold {
		return readFile(path)
	}
	return readMapped(path)
}

func readMapped(path string) ([]byte, error) {
	ra, err := mmapOpen(path)
	if err != nil {
		return nil, err
	}
	defer ra.Close()

	data := make([]byte, ra.Len())
	if _, err := ra.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read mapped %q: %w", path, err)
	}
	return data, nil
}

func (r *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return readDir(path)
}

func (r *OSFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return writeFile(path, data, perm)
}

func (r *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return mkdirAll(path, perm)
}

func (r *OSFS) Remove(path string) error {
	return remove(path)
}

func (r *OSFS) Rename(oldPath, newPath string) error {
	return rename(oldPath, newPath)
}

func (r *OSFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f, err := createTemp(dir, pattern)
	if err != nil {
		return nil, "", err
	}
	return f, f.Name(), nil
}

func (r *OSFS) IsNotExist(err error) bool {
	return isNotExist(err)
}

func (r *OSFS) IsDir(path string) bool {
	return IsDir(path)
}

func (r *OSFS) Exists(path string) bool {
	return exists(path)
}
