package png

import (
	"fmt"

	"github.com/cocosip/go-raster/internal/imath"
	"github.com/cocosip/go-raster/raster"
)

// Per-row filter types from the PNG standard
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
)

// paeth is the predictor from the PNG standard
func paeth(a, b, c uint8) uint8 {
	pa := int(b) - int(c)
	pb := int(a) - int(c)
	pc := imath.Abs(pa + pb)
	pa = imath.Abs(pa)
	pb = imath.Abs(pb)
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

// unfilterRow reverses one row filter in place. prev is the
// reconstructed previous row, all zeros for the first row.
func unfilterRow(ft uint8, cur, prev []byte, bpp int) error {
	switch ft {
	case ftNone:
	case ftSub:
		for i := bpp; i < len(cur); i++ {
			cur[i] += cur[i-bpp]
		}
	case ftUp:
		for i := range cur {
			cur[i] += prev[i]
		}
	case ftAverage:
		for i := 0; i < bpp; i++ {
			cur[i] += prev[i] / 2
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bpp]) + int(prev[i])) / 2)
		}
	case ftPaeth:
		for i := 0; i < bpp; i++ {
			cur[i] += prev[i]
		}
		for i := bpp; i < len(cur); i++ {
			cur[i] += paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	default:
		return &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: -1,
			Detail: fmt.Sprintf("row filter %d", ft),
		}
	}
	return nil
}

// filterRow filters cur against prev with the given type into dst
func filterRow(ft uint8, dst, cur, prev []byte, bpp int) {
	switch ft {
	case ftNone:
		copy(dst, cur)
	case ftSub:
		copy(dst[:bpp], cur[:bpp])
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - cur[i-bpp]
		}
	case ftUp:
		for i := range cur {
			dst[i] = cur[i] - prev[i]
		}
	case ftAverage:
		for i := 0; i < bpp; i++ {
			dst[i] = cur[i] - prev[i]/2
		}
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - uint8((int(cur[i-bpp])+int(prev[i]))/2)
		}
	case ftPaeth:
		for i := 0; i < bpp; i++ {
			dst[i] = cur[i] - prev[i]
		}
		for i := bpp; i < len(cur); i++ {
			dst[i] = cur[i] - paeth(cur[i-bpp], prev[i], prev[i-bpp])
		}
	}
}

// chooseFilter picks the filter with the minimum sum of absolute
// residuals, the usual compressibility heuristic, and returns the
// filtered row via scratch
func chooseFilter(scratch [][]byte, cur, prev []byte, bpp int) (uint8, []byte) {
	best := uint8(ftNone)
	bestSum := -1
	for ft := uint8(ftNone); ft <= ftPaeth; ft++ {
		filterRow(ft, scratch[ft], cur, prev, bpp)
		sum := 0
		for _, v := range scratch[ft] {
			sum += imath.Abs(int(int8(v)))
		}
		if bestSum < 0 || sum < bestSum {
			best, bestSum = ft, sum
		}
	}
	return best, scratch[best]
}
