/*
Package vfs provides interfaces for dealing with virtual file systems.

The interfaces here are taken from io/fs, except they include a Context. The
directory walkers in go/filesearch are written against these interfaces so
their ordering guarantees can be asserted against the in-memory
implementation in mem.go.
*/
package vfs

import (
	"context"
	"io"
	"io/fs"

	"github.com/agpipeline/resultcheck/go/skerr"
)

// FS represents a virtual filesystem.
type FS interface {
	// Open the given path. If the path is a directory, implementations
	// should return a File whose ReadDir works.
	Open(ctx context.Context, name string) (File, error)

	// Close causes any resources associated with the FS to be cleaned up.
	Close(ctx context.Context) error
}

// File represents a virtual file.
type File interface {
	// Close the File.
	Close(ctx context.Context) error
	// Read behaves like io.Reader. It should return an error if this is a
	// directory.
	Read(ctx context.Context, buf []byte) (int, error)
	// Stat returns the FileInfo associated with the File.
	Stat(ctx context.Context) (fs.FileInfo, error)
	// ReadDir returns the contents of the File if it is a directory, and
	// returns an error otherwise. Should behave the same as os.File.Readdir.
	ReadDir(ctx context.Context, n int) ([]fs.FileInfo, error)
}

// ReadFile is analogous to os.ReadFile.
func ReadFile(ctx context.Context, fs FS, path string) (rv []byte, rvErr error) {
	f, err := fs.Open(ctx, path)
	if err != nil {
		return nil, skerr.Wrap(err)
	}
	defer func() {
		closeErr := f.Close(ctx)
		if rvErr == nil {
			rvErr = closeErr
		}
	}()
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(ctx, buf)
		rv = append(rv, buf[:n]...)
		if err == io.EOF {
			return rv, nil
		}
		if err != nil {
			return nil, skerr.Wrap(err)
		}
	}
}

// ReadDir is analogous to os.ReadDir, except that entries are returned in
// the order produced by the underlying directory listing.
func ReadDir(ctx context.Context, fs FS, path string) (rv []fs.FileInfo, rvErr error) {
	f, err := fs.Open(ctx, path)
	if err != nil {
		return nil, skerr.Wrap(err)
	}
	defer func() {
		closeErr := f.Close(ctx)
		if rvErr == nil {
			rvErr = closeErr
		}
	}()
	return f.ReadDir(ctx, -1)
}

// Stat is analogous to os.Stat.
func Stat(ctx context.Context, fs FS, path string) (rv fs.FileInfo, rvErr error) {
	f, err := fs.Open(ctx, path)
	if err != nil {
		return nil, skerr.Wrap(err)
	}
	defer func() {
		closeErr := f.Close(ctx)
		if rvErr == nil {
			rvErr = closeErr
		}
	}()
	return f.Stat(ctx)
}
