package raster

import (
	"fmt"
	"strings"
)

// Format identifies an image encoding
type Format string

const (
	// FormatUnknown is the zero Format
	FormatUnknown Format = ""

	FormatPNG   Format = "png"
	FormatJPEG  Format = "jpeg"
	FormatGIF   Format = "gif"
	FormatBMP   Format = "bmp"
	FormatWebP  Format = "webp"
	FormatTIFF  Format = "tiff"
	FormatQOI   Format = "qoi"
	FormatDICOM Format = "dicom"
)

// String returns the format name
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// orUnknown substitutes a generic name for the zero Format in error text
func (f Format) orUnknown() Format {
	if f == FormatUnknown {
		return "image"
	}
	return f
}

// Extension returns the canonical file extension including the dot
func (f Format) Extension() string {
	switch f {
	case FormatPNG:
		return ".png"
	case FormatJPEG:
		return ".jpg"
	case FormatGIF:
		return ".gif"
	case FormatBMP:
		return ".bmp"
	case FormatWebP:
		return ".webp"
	case FormatTIFF:
		return ".tiff"
	case FormatQOI:
		return ".qoi"
	case FormatDICOM:
		return ".dcm"
	}
	return ""
}

// MimeType returns the MIME type of the format
func (f Format) MimeType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatWebP:
		return "image/webp"
	case FormatTIFF:
		return "image/tiff"
	case FormatQOI:
		return "image/qoi"
	case FormatDICOM:
		return "application/dicom"
	}
	return "application/octet-stream"
}

// FormatFromExtension maps a file path or bare extension to a Format
func FormatFromExtension(path string) (Format, error) {
	ext := path
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		ext = path[i+1:]
	}
	switch strings.ToLower(ext) {
	case "png", "apng":
		return FormatPNG, nil
	case "jpg", "jpeg", "jfif":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp", "dib":
		return FormatBMP, nil
	case "webp":
		return FormatWebP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "qoi":
		return FormatQOI, nil
	case "dcm", "dicom":
		return FormatDICOM, nil
	}
	return FormatUnknown, fmt.Errorf("extension %q: %w", ext, ErrUnknownFormat)
}

// FormatFromMime maps a MIME type to a Format
func FormatFromMime(mime string) (Format, error) {
	switch strings.ToLower(mime) {
	case "image/png", "image/apng":
		return FormatPNG, nil
	case "image/jpeg", "image/jpg":
		return FormatJPEG, nil
	case "image/gif":
		return FormatGIF, nil
	case "image/bmp", "image/x-bmp", "image/x-ms-bmp":
		return FormatBMP, nil
	case "image/webp":
		return FormatWebP, nil
	case "image/tiff":
		return FormatTIFF, nil
	case "image/qoi", "image/x-qoi":
		return FormatQOI, nil
	case "application/dicom":
		return FormatDICOM, nil
	}
	return FormatUnknown, fmt.Errorf("mime type %q: %w", mime, ErrUnknownFormat)
}
