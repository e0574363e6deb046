package vfs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/agpipeline/resultcheck/go/skerr"
)

// MemEntry is one entry (file or directory) in an in-memory FS.
type MemEntry interface {
	entryName() string
	fileInfo() fs.FileInfo
}

// MemFile is a file in an in-memory FS.
type MemFile struct {
	Name     string
	Contents []byte
}

func (f *MemFile) entryName() string {
	return f.Name
}

func (f *MemFile) fileInfo() fs.FileInfo {
	return FileInfo{
		Name: f.Name,
		Size: int64(len(f.Contents)),
		Mode: 0644,
	}.Get()
}

// MemDir is a directory in an in-memory FS. Entries keep the order in which
// they were added, which is the order ReadDir returns them in. That makes
// directory-listing order fully controllable in tests.
type MemDir struct {
	Name    string
	Entries []MemEntry
}

func (d *MemDir) entryName() string {
	return d.Name
}

func (d *MemDir) fileInfo() fs.FileInfo {
	return FileInfo{
		Name:  d.Name,
		Mode:  os.ModeDir | 0755,
		IsDir: true,
	}.Get()
}

// Add appends entries to the directory and returns it for chaining.
func (d *MemDir) Add(entries ...MemEntry) *MemDir {
	d.Entries = append(d.Entries, entries...)
	return d
}

// InMemory returns an FS rooted at the given directory.
func InMemory(root *MemDir) FS {
	return &memFS{root: root}
}

type memFS struct {
	root *MemDir
}

// Open implements FS.
func (m *memFS) Open(_ context.Context, name string) (File, error) {
	name = strings.Trim(name, "/")
	if name == "." || name == "" {
		return &memHandle{entry: m.root}, nil
	}
	var cur MemEntry = m.root
	for _, part := range strings.Split(name, "/") {
		dir, ok := cur.(*MemDir)
		if !ok {
			return nil, skerr.Fmt("%s is not a directory", cur.entryName())
		}
		var next MemEntry
		for _, e := range dir.Entries {
			if e.entryName() == part {
				next = e
				break
			}
		}
		if next == nil {
			return nil, skerr.Wrapf(fs.ErrNotExist, "open %s", name)
		}
		cur = next
	}
	return &memHandle{entry: cur}, nil
}

// Close implements FS.
func (m *memFS) Close(_ context.Context) error {
	return nil
}

// memHandle is an open File backed by a MemEntry.
type memHandle struct {
	entry  MemEntry
	offset int
}

// Stat implements File.
func (h *memHandle) Stat(_ context.Context) (fs.FileInfo, error) {
	return h.entry.fileInfo(), nil
}

// Read implements File.
func (h *memHandle) Read(_ context.Context, buf []byte) (int, error) {
	file, ok := h.entry.(*MemFile)
	if !ok {
		return 0, skerr.Fmt("%s is a directory", h.entry.entryName())
	}
	if h.offset >= len(file.Contents) {
		return 0, io.EOF
	}
	n := copy(buf, file.Contents[h.offset:])
	h.offset += n
	return n, nil
}

// ReadDir implements File.
func (h *memHandle) ReadDir(_ context.Context, n int) ([]fs.FileInfo, error) {
	dir, ok := h.entry.(*MemDir)
	if !ok {
		return nil, skerr.Fmt("%s is not a directory", h.entry.entryName())
	}
	rv := make([]fs.FileInfo, 0, len(dir.Entries))
	for _, e := range dir.Entries {
		rv = append(rv, e.fileInfo())
	}
	if n > 0 && n < len(rv) {
		rv = rv[:n]
	}
	return rv, nil
}

// Close implements File.
func (h *memHandle) Close(_ context.Context) error {
	return nil
}

var _ File = &memHandle{}

// FileInfo implements fs.FileInfo by simply filling out the return values
// for all of the methods.
type FileInfo struct {
	Name    string
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
	Sys     interface{}
}

// Get returns an fs.FileInfo backed by this FileInfo.
func (fi FileInfo) Get() *FileInfoImpl {
	return &FileInfoImpl{fi}
}

// FileInfoImpl implements fs.FileInfo.
type FileInfoImpl struct {
	FileInfo
}

// Name implements fs.FileInfo.
func (fi *FileInfoImpl) Name() string {
	return fi.FileInfo.Name
}

// Size implements fs.FileInfo.
func (fi *FileInfoImpl) Size() int64 {
	return fi.FileInfo.Size
}

// Mode implements fs.FileInfo.
func (fi *FileInfoImpl) Mode() os.FileMode {
	return fi.FileInfo.Mode
}

// ModTime implements fs.FileInfo.
func (fi *FileInfoImpl) ModTime() time.Time {
	return fi.FileInfo.ModTime
}

// IsDir implements fs.FileInfo.
func (fi *FileInfoImpl) IsDir() bool {
	return fi.FileInfo.IsDir
}

// Sys implements fs.FileInfo.
func (fi *FileInfoImpl) Sys() interface{} {
	return fi.FileInfo.Sys
}

var _ fs.FileInfo = &FileInfoImpl{}
