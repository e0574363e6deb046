package diff

import (
	"fmt"
	"image"

	"github.com/agpipeline/resultcheck/go/util"
)

// NumBins is the number of equal-width buckets the per-pixel absolute
// differences are binned into. With 8-bit channels every integer delta maps
// 1:1 onto a bucket index.
const NumBins = 256

// channelNames indexes the color channels of a DiffHistogram.
var channelNames = [3]string{"red", "green", "blue"}

// DiffHistogram holds one 256-bucket histogram of per-pixel absolute
// differences for each of the R, G and B channels.
type DiffHistogram [3][NumBins]int

// Histogram computes the per-channel difference histogram of two images.
// Both images must have the same dimensions; pixels are addressed relative
// to each image's own bounds, so their origins need not agree.
func Histogram(master, source *image.NRGBA) *DiffHistogram {
	mMin := master.Bounds().Min
	sMin := source.Bounds().Min
	hist := &DiffHistogram{}
	for y := 0; y < master.Bounds().Dy(); y++ {
		for x := 0; x < master.Bounds().Dx(); x++ {
			m := master.NRGBAAt(mMin.X+x, mMin.Y+y)
			s := source.NRGBAAt(sMin.X+x, sMin.Y+y)
			hist[0][absDiff(m.R, s.R)]++
			hist[1][absDiff(m.G, s.G)]++
			hist[2][absDiff(m.B, s.B)]++
		}
	}
	return hist
}

// Breach describes the first histogram bucket found over the allowed count.
type Breach struct {
	Channel string
	Bin     int
	Count   int
}

func (b Breach) String() string {
	return fmt.Sprintf("%s channel has %d pixels in difference bucket %d", b.Channel, b.Count, b.Bin)
}

// Check scans each channel's buckets from startIdx upward and reports the
// first bucket whose count exceeds binMax. Buckets below startIdx are
// expected compression and rounding noise and never fail. A startIdx beyond
// the last bucket falls back to 0.
func (h *DiffHistogram) Check(startIdx, binMax int) (Breach, bool) {
	if startIdx >= NumBins {
		startIdx = 0
	}
	for ch := range h {
		for bin := startIdx; bin < NumBins; bin++ {
			if h[ch][bin] > binMax {
				return Breach{Channel: channelNames[ch], Bin: bin, Count: h[ch][bin]}, true
			}
		}
	}
	return Breach{}, false
}

// StartIndex derives the first inspected bucket from a fractional
// tolerance, e.g. 0.05 with 256 buckets gives bucket 13.
func StartIndex(fraction float64) int {
	return util.CeilFrac(NumBins, fraction)
}

// absDiff takes two uint8 values m and n and computes |m - n| as an int
// suitable for further arithmetic without the risk of overflowing.
func absDiff(m, n uint8) int {
	if m > n {
		return int(m - n)
	}
	return int(n - m)
}
