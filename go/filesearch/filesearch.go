// Package filesearch locates comparison files inside dataset trees.
//
// The search order is load-bearing: callers rely on the first match in a
// depth-first walk where every plain file in a directory is considered
// before any subdirectory is descended into. Hidden entries (leading dot)
// are invisible to both the locator and the folder filter.
package filesearch

import (
	"context"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agpipeline/resultcheck/go/vfs"
)

// hidden returns true for dot-files and dot-directories.
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// FindMatch returns the path of the first file under root whose path ends
// with the given ending. Within one directory all files are checked before
// any subdirectory is entered; subdirectories are each fully explored, in
// listing order, before their next sibling. Returns false if root does not
// exist, is not a directory, or contains no match.
func FindMatch(ctx context.Context, fsys vfs.FS, root, ending string) (string, bool) {
	info, err := vfs.Stat(ctx, fsys, root)
	if err != nil || !info.IsDir() {
		return "", false
	}

	entries, err := vfs.ReadDir(ctx, fsys, root)
	if err != nil {
		return "", false
	}

	// First try to find the file. Save any subdirectories for later.
	var subdirs []fs.FileInfo
	for _, entry := range entries {
		if hidden(entry.Name()) {
			continue
		}
		if entry.IsDir() {
			subdirs = append(subdirs, entry)
			continue
		}
		path := filepath.Join(root, entry.Name())
		if strings.HasSuffix(path, ending) {
			return path, true
		}
	}

	for _, dir := range subdirs {
		if found, ok := FindMatch(ctx, fsys, filepath.Join(root, dir.Name()), ending); ok {
			return found, true
		}
	}

	return "", false
}

// FilteredFolders returns the names of the immediate subdirectories of root
// whose full path matches re. A nil re matches everything. Returns false
// when no subdirectory qualifies; callers must treat that as "no filtering
// available", never as an empty work list.
func FilteredFolders(ctx context.Context, fsys vfs.FS, root string, re *regexp.Regexp) ([]string, bool) {
	entries, err := vfs.ReadDir(ctx, fsys, root)
	if err != nil {
		return nil, false
	}

	var found []string
	for _, entry := range entries {
		if hidden(entry.Name()) || !entry.IsDir() {
			continue
		}
		if re == nil || re.MatchString(filepath.Join(root, entry.Name())) {
			found = append(found, entry.Name())
		}
	}
	if len(found) == 0 {
		return nil, false
	}
	return found, true
}
