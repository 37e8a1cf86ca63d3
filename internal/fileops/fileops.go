// Package fileops wraps the handful of file system calls the file recipes use.
package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Read returns the contents of path as a string.
func Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// Write replaces path with data.
func Write(ctx context.Context, path, data string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(data), filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MkdirWrite creates dir and writes name inside it. It fails if dir already
// exists, so a second run reports the conflict instead of silently succeeding.
func MkdirWrite(dir, name, data string) (string, error) {
	if err := os.Mkdir(dir, dirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), filePerm); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
