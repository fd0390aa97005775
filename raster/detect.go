package raster

import (
	"bytes"
	"io"
)

// Signature is a magic byte sequence at a fixed offset.
// Most formats sit at offset 0; DICOM puts "DICM" after a 128-byte preamble.
type Signature struct {
	Offset int
	Magic  []byte
}

// matches reports whether data carries the magic at the signature's offset
func (s Signature) matches(data []byte) bool {
	if len(data) < s.Offset+len(s.Magic) {
		return false
	}
	return bytes.Equal(data[s.Offset:s.Offset+len(s.Magic)], s.Magic)
}

// end returns the number of leading bytes needed to test the signature
func (s Signature) end() int {
	return s.Offset + len(s.Magic)
}

// DetectFormat identifies the format of encoded data by its magic bytes
// using the default registry. Registrations are tried in registration
// order and the first match wins. FormatUnknown is returned when nothing
// matches; short or empty input is fine.
func DetectFormat(data []byte) Format {
	return defaultRegistry.Detect(data)
}

// DetectReader identifies the format of the data in r without consuming
// it. The returned reader replays the probed bytes followed by the rest
// of r.
func DetectReader(r io.Reader) (Format, io.Reader, error) {
	return defaultRegistry.DetectReader(r)
}
