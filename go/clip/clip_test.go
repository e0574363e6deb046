package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agpipeline/resultcheck/go/executil"
)

func TestParseBounds(t *testing.T) {
	b, err := ParseBounds("1.5,2,3.5,4")
	require.NoError(t, err)
	assert.Equal(t, Bounds{MinX: 1.5, MinY: 2, MaxX: 3.5, MaxY: 4}, b)
}

func TestParseBounds_Normalizes(t *testing.T) {
	// Corner pairs may be given in any order.
	b, err := ParseBounds("3.5, 4, 1.5, 2")
	require.NoError(t, err)
	assert.Equal(t, Bounds{MinX: 1.5, MinY: 2, MaxX: 3.5, MaxY: 4}, b)
}

func TestParseBounds_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1,2,3",
		"1,2,3,4,5",
		"1,2,three,4",
	}
	for _, in := range tests {
		t.Run(fmt.Sprintf("%q", in), func(t *testing.T) {
			_, err := ParseBounds(in)
			assert.Error(t, err)
		})
	}
}

func TestGDALClip_Success(t *testing.T) {
	ctx := executil.FakeTestsContext("Test_FakeExe_GDALTranslate_Success")
	g := &GDAL{Bounds: Bounds{MinX: 1, MinY: 2, MaxX: 3, MaxY: 4}}

	dstDir := t.TempDir()
	dstPath, err := g.Clip(ctx, filepath.Join("masters", "scene_out.tif"), dstDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dstDir, "scene_out.tif"), dstPath)
	assert.Equal(t, 1, executil.FakeCommandsReturned(ctx))
}

func TestGDALClip_CommandFails(t *testing.T) {
	ctx := executil.FakeTestsContext("Test_FakeExe_GDALTranslate_Failure")
	g := &GDAL{}

	_, err := g.Clip(ctx, "scene_out.tif", t.TempDir())
	assert.Error(t, err)
}

// Test_FakeExe_GDALTranslate_Success pretends to be gdal_translate and
// asserts the -projwin window is upper-left then lower-right.
func Test_FakeExe_GDALTranslate_Success(t *testing.T) {
	if !executil.IsCallingFakeCommand() {
		return
	}
	args := executil.OriginalArgs()
	require.Len(t, args, 8)
	assert.Equal(t, "gdal_translate", args[0])
	assert.Equal(t, []string{"-projwin", "1", "4", "3", "2"}, args[1:6])
	assert.Equal(t, filepath.Join("masters", "scene_out.tif"), args[6])

	os.Exit(0)
}

// Test_FakeExe_GDALTranslate_Failure pretends to be a gdal_translate run
// that reports an error.
func Test_FakeExe_GDALTranslate_Failure(t *testing.T) {
	if !executil.IsCallingFakeCommand() {
		return
	}
	fmt.Println("ERROR 1: projwin outside of raster extent")
	os.Exit(1)
}
