package raster

import "github.com/disintegration/imaging"

// FilterType selects the resampling filter used by Resized
type FilterType uint8

const (
	// FilterNearest picks the nearest source pixel
	FilterNearest FilterType = iota

	// FilterBox averages source pixels per destination pixel
	FilterBox

	// FilterLinear interpolates linearly
	FilterLinear

	// FilterHamming uses a Hamming window
	FilterHamming

	// FilterCatmullRom is a sharp cubic filter
	FilterCatmullRom

	// FilterMitchell is the Mitchell-Netravali cubic filter
	FilterMitchell

	// FilterLanczos uses a 3-lobed Lanczos window
	FilterLanczos

	// FilterTile repeats the source image instead of resampling
	FilterTile
)

// String returns a human-readable name
func (t FilterType) String() string {
	switch t {
	case FilterNearest:
		return "nearest"
	case FilterBox:
		return "box"
	case FilterLinear:
		return "linear"
	case FilterHamming:
		return "hamming"
	case FilterCatmullRom:
		return "catmull-rom"
	case FilterMitchell:
		return "mitchell"
	case FilterLanczos:
		return "lanczos"
	case FilterTile:
		return "tile"
	}
	return "unknown"
}

// resample maps the filter onto its imaging equivalent.
// FilterTile has no equivalent and is handled directly.
func (t FilterType) resample() (imaging.ResampleFilter, bool) {
	switch t {
	case FilterNearest:
		return imaging.NearestNeighbor, true
	case FilterBox:
		return imaging.Box, true
	case FilterLinear:
		return imaging.Linear, true
	case FilterHamming:
		return imaging.Hamming, true
	case FilterCatmullRom:
		return imaging.CatmullRom, true
	case FilterMitchell:
		return imaging.MitchellNetravali, true
	case FilterLanczos:
		return imaging.Lanczos, true
	}
	return imaging.ResampleFilter{}, false
}

// Resized returns the image resampled to width x height with the given
// filter. FilterTile repeats the source image across the new size.
func (img *Image[P]) Resized(width, height int, filter FilterType) (*Image[P], error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	if filter == FilterTile {
		out := img.emptyLike(width, height)
		for y := 0; y < height; y++ {
			sy := y % img.height
			for x := 0; x < width; x++ {
				out.pix[y*width+x] = img.pix[sy*img.width+x%img.width]
			}
		}
		return out, nil
	}

	rf, ok := filter.resample()
	if !ok {
		return nil, &FeatureError{Feature: "resize filter " + filter.String()}
	}
	resized, err := FromImage[P](imaging.Resize(img.ToNRGBA(), width, height, rf))
	if err != nil {
		return nil, err
	}

	// Resampling goes through rgba; restore the source tag on Dynamic images
	var zero P
	if _, ok := any(zero).(Dynamic); ok {
		ct, _ := encodeModel(img)
		resized.Map(func(_, _ int, p P) P {
			return any(dynamicFromRGBA(ct, p.RGBA())).(P)
		})
	}

	resized.format = img.format
	resized.overlay = img.overlay
	return resized, nil
}
