package vfs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agpipeline/resultcheck/go/skerr"
)

// Local returns an FS which uses the local filesystem with the given root.
// Relative paths are resolved against the root.
func Local(root string) FS {
	return &localFS{root: root}
}

// localFS is an implementation of FS which uses the local filesystem.
type localFS struct {
	root string
}

// Open implements FS.
func (l *localFS) Open(_ context.Context, name string) (File, error) {
	if !filepath.IsAbs(name) {
		name = filepath.Join(l.root, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, skerr.Wrap(err)
	}
	return &localFile{file: f}, nil
}

// Close implements FS.
func (l *localFS) Close(_ context.Context) error {
	return nil
}

// localFile is an implementation of File which wraps an os.File.
type localFile struct {
	file *os.File
}

// Stat implements File.
func (f *localFile) Stat(_ context.Context) (fs.FileInfo, error) {
	return f.file.Stat()
}

// Read implements File.
func (f *localFile) Read(_ context.Context, buf []byte) (int, error) {
	return f.file.Read(buf)
}

// ReadDir implements File.
func (f *localFile) ReadDir(_ context.Context, n int) ([]fs.FileInfo, error) {
	return f.file.Readdir(n)
}

// Close implements File.
func (f *localFile) Close(_ context.Context) error {
	return f.file.Close()
}

var _ File = &localFile{}
