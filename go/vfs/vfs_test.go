package vfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rootFile"), []byte("hello world"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "inner"), []byte("inner contents"), 0644))

	fs := Local(dir)
	defer func() {
		require.NoError(t, fs.Close(ctx))
	}()

	fi, err := Stat(ctx, fs, ".")
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	contents, err := ReadFile(ctx, fs, "rootFile")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), contents)

	contents, err = ReadFile(ctx, fs, filepath.Join("sub", "inner"))
	require.NoError(t, err)
	assert.Equal(t, []byte("inner contents"), contents)

	infos, err := ReadDir(ctx, fs, ".")
	require.NoError(t, err)
	assert.Len(t, infos, 2)

	_, err = Stat(ctx, fs, "missing")
	assert.Error(t, err)
}

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	root := (&MemDir{}).Add(
		&MemFile{Name: "b.txt", Contents: []byte("bbb")},
		&MemFile{Name: "a.txt", Contents: []byte("aaa")},
		(&MemDir{Name: "sub"}).Add(
			&MemFile{Name: "c.txt", Contents: []byte("ccc")},
		),
	)
	fs := InMemory(root)

	// ReadDir preserves insertion order, not lexical order.
	infos, err := ReadDir(ctx, fs, ".")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "b.txt", infos[0].Name())
	assert.Equal(t, "a.txt", infos[1].Name())
	assert.Equal(t, "sub", infos[2].Name())
	assert.True(t, infos[2].IsDir())

	contents, err := ReadFile(ctx, fs, "sub/c.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("ccc"), contents)

	fi, err := Stat(ctx, fs, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(3), fi.Size())
	assert.False(t, fi.IsDir())

	_, err = Stat(ctx, fs, "sub/missing")
	assert.Error(t, err)

	// Reading a directory as a file fails.
	_, err = ReadFile(ctx, fs, "sub")
	assert.Error(t, err)
}
