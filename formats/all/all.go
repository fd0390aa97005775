// Package all registers every built-in codec in the default registry.
//
// Import it for its side effects:
//
//	import _ "github.com/cocosip/go-raster/formats/all"
//
// The import groups fix the registration order, which is the detection
// probe order: codecs with long, mutually exclusive signatures first,
// then BMP's two-byte magic, then DICOM's offset-128 probe. Programs
// that want a smaller binary import only the format packages they use
// instead, in whatever order suits them.
package all

import (
	_ "github.com/cocosip/go-raster/formats/gif"
	_ "github.com/cocosip/go-raster/formats/jpeg"
	_ "github.com/cocosip/go-raster/formats/png"
	_ "github.com/cocosip/go-raster/formats/qoi"
	_ "github.com/cocosip/go-raster/formats/tiff"
	_ "github.com/cocosip/go-raster/formats/webp"

	_ "github.com/cocosip/go-raster/formats/bmp"

	_ "github.com/cocosip/go-raster/formats/dicom"
)
