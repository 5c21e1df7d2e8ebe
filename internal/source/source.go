// Package source loads input buffers for the table engine.
// It is the only place that touches the filesystem.
package source

import (
	"errors"
	"fmt"
	"io"
)

// ErrIsDirectory is returned when a path names a directory.
var ErrIsDirectory = errors.New("is a directory")

// ReadAll drains r into a buffer.
func ReadAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// WithFile maps path, passes its contents to fn and releases the mapping
// when fn returns. fn must not retain data.
func WithFile(path string, fn func(data []byte) error) error {
	data, release, err := Map(path)
	if err != nil {
		return err
	}
	defer release()
	return fn(data)
}
