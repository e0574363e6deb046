package diff

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agpipeline/resultcheck/go/imgtext"
)

func TestStartIndex(t *testing.T) {
	assert.Equal(t, 13, StartIndex(0.05))
	assert.Equal(t, 0, StartIndex(0))
	assert.Equal(t, 26, StartIndex(0.10))
}

func TestHistogram_IdenticalImages(t *testing.T) {
	img := imgtext.MustToNRGBA(`! PIXTEXT
	2 2
	0x112233ff 0xaabbccff
	0x00 0xff`)
	hist := Histogram(img, img)

	// All four pixels land in bucket 0 on every channel.
	for ch := 0; ch < 3; ch++ {
		assert.Equal(t, 4, hist[ch][0])
	}

	// Never a breach, for any tolerance.
	_, breached := hist.Check(StartIndex(0.05), 100)
	assert.False(t, breached)
	_, breached = hist.Check(0, 100)
	assert.False(t, breached)
}

func TestHistogram_CountsPerChannel(t *testing.T) {
	master := imgtext.MustToNRGBA(`! PIXTEXT
	2 1
	0x101010ff 0x101010ff`)
	source := imgtext.MustToNRGBA(`! PIXTEXT
	2 1
	0x301020ff 0x101010ff`)
	hist := Histogram(master, source)

	// Red differs by 0x20 on one pixel, blue by 0x10, green not at all.
	assert.Equal(t, 1, hist[0][0x20])
	assert.Equal(t, 1, hist[0][0])
	assert.Equal(t, 2, hist[1][0])
	assert.Equal(t, 1, hist[2][0x10])
}

func TestHistogram_CorrespondingPixelsComparedAcrossOrigins(t *testing.T) {
	// Same dimensions, different bounds origins. Pixels must be paired up
	// relative to each image's own origin.
	master := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	source := image.NewNRGBA(image.Rect(5, 7, 7, 9))
	master.SetNRGBA(1, 1, color.NRGBA{R: 50, A: 0xff})
	source.SetNRGBA(6, 8, color.NRGBA{R: 50, A: 0xff})

	hist := Histogram(master, source)
	for ch := 0; ch < 3; ch++ {
		assert.Equal(t, 4, hist[ch][0])
	}
	assert.Equal(t, 0, hist[0][50])
}

// diffPair returns a 100x100 black master and a source with n pixels set to
// the given per-channel value in the red channel.
func diffPair(n int, value uint8) (*image.NRGBA, *image.NRGBA) {
	master := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	source := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 0; i < n; i++ {
		source.SetNRGBA(i%100, i/100, color.NRGBA{R: value, A: 0xff})
	}
	return master, source
}

func TestCheck_BelowBinMaxPasses(t *testing.T) {
	// 40 pixels differing by 200 stay under the 100-per-bucket limit.
	master, source := diffPair(40, 200)
	hist := Histogram(master, source)

	require.Equal(t, 40, hist[0][200])
	_, breached := hist.Check(StartIndex(0.05), 100)
	assert.False(t, breached)
}

func TestCheck_AboveBinMaxFails(t *testing.T) {
	// 150 pixels differing by 200 exceed the 100-per-bucket limit.
	master, source := diffPair(150, 200)
	hist := Histogram(master, source)

	breach, breached := hist.Check(StartIndex(0.05), 100)
	require.True(t, breached)
	assert.Equal(t, "red", breach.Channel)
	assert.Equal(t, 200, breach.Bin)
	assert.Equal(t, 150, breach.Count)
	assert.Contains(t, breach.String(), "red channel")
}

func TestCheck_LowBucketsIgnored(t *testing.T) {
	// Many pixels with a small difference (below the start bucket) are
	// treated as noise.
	master, source := diffPair(5000, 10)
	hist := Histogram(master, source)

	require.Equal(t, 5000, hist[0][10])
	_, breached := hist.Check(StartIndex(0.05), 100)
	assert.False(t, breached)

	// With the window opened at 0 the same pair fails.
	_, breached = hist.Check(0, 100)
	assert.True(t, breached)
}

func TestCheck_StartIndexFallsBackToZero(t *testing.T) {
	master, source := diffPair(150, 10)
	hist := Histogram(master, source)

	// An out-of-range start index means the whole histogram is inspected.
	_, breached := hist.Check(NumBins, 100)
	assert.True(t, breached)
}
