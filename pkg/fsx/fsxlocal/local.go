// Package fsxlocal implements fsx.FileSystem on the local disk, for
// development and tests.
package fsxlocal

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/Ejeanjules/capstone-project/pkg/fsx"
)

type LocalFileSystem struct {
	root string
}

var _ fsx.FileSystem = (*LocalFileSystem)(nil)

func NewLocalFileSystem(root string) *LocalFileSystem {
	return &LocalFileSystem{root: root}
}

func (f *LocalFileSystem) Join(parts ...string) string {
	return filepath.Join(parts...)
}

func (f *LocalFileSystem) abs(path string) string {
	return filepath.Join(f.root, filepath.FromSlash(path))
}

func (f *LocalFileSystem) WriteFile(_ context.Context, path string, data []byte) error {
	target := f.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (f *LocalFileSystem) WriteFileStream(ctx context.Context, path string, r io.Reader) error {
	target := f.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, r)
	return err
}

func (f *LocalFileSystem) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(f.abs(path))
}

func (f *LocalFileSystem) ReadFileStream(_ context.Context, path string) (io.ReadCloser, error) {
	return os.Open(f.abs(path))
}

func (f *LocalFileSystem) DeleteFile(_ context.Context, path string) error {
	return os.Remove(f.abs(path))
}
