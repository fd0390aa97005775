// Package raster provides generic in-memory raster images and a
// pluggable image codec framework.
//
// An Image[P] stores pixels of a single representation (L, LA, Rgb,
// Rgba, Bit or the runtime-tagged Dynamic) in a contiguous row-major
// buffer. Codecs translate between encoded bytes and raw frames; the
// registry binds them to formats and detects formats from magic bytes.
// Format packages register themselves when imported:
//
//	import (
//	    "github.com/cocosip/go-raster/raster"
//	    _ "github.com/cocosip/go-raster/formats/all"
//	)
//
//	img, err := raster.Decode[raster.Rgba](data)
//
// The core is synchronous and does no internal locking; the codec
// registry is the only shared state and is safe for concurrent reads.
package raster
