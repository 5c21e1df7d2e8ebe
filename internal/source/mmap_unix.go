//go:build unix

package source

import (
	"fmt"
	"io"
	"os"
	"syscall"
)

// Map memory-maps the file at path read-only.
//
// The returned release function unmaps the file and closes it; data must not
// be used after release is called. An empty file yields an empty slice.
// Pipes, character devices and other non-regular files are read into memory
// instead, since their reported size is not their content length.
func Map(path string) (data []byte, release func(), err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		f.Close()
		return nil, nil, fmt.Errorf("open %s: %w", path, ErrIsDirectory)
	}

	if !stat.Mode().IsRegular() {
		defer f.Close()
		data, err = io.ReadAll(f)
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", path, err)
		}
		return data, func() {}, nil
	}

	size := stat.Size()
	if size == 0 {
		return []byte{}, func() { f.Close() }, nil
	}

	data, err = syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	release = func() {
		_ = syscall.Munmap(data)
		f.Close()
	}
	return data, release, nil
}
