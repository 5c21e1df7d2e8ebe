//go:build !unix

package source

import (
	"fmt"
	"os"
)

// Map reads the whole file at path; platforms without mmap get a copy.
// release is a no-op kept for parity with the unix version.
func Map(path string) (data []byte, release func(), err error) {
	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("open %s: %w", path, ErrIsDirectory)
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, func() {}, nil
}
