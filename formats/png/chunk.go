package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/cocosip/go-raster/raster"
)

// chunk is one decoded chunk with its absolute file offset
type chunk struct {
	offset int64
	typ    string
	data   []byte
}

// ancillary reports whether the chunk may be skipped by a decoder
// that does not understand it
func (c *chunk) ancillary() bool {
	return c.typ[0]&0x20 != 0
}

// chunkReader walks the chunk sequence of an encoded file, verifying
// each checksum as it goes
type chunkReader struct {
	data []byte
	pos  int
}

func (r *chunkReader) next() (chunk, error) {
	if len(r.data)-r.pos < 12 {
		return chunk{}, fmt.Errorf("png: chunk at offset %d: %w", r.pos, raster.ErrInsufficientData)
	}
	length := binary.BigEndian.Uint32(r.data[r.pos:])
	if length > 0x7fffffff {
		return chunk{}, &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: int64(r.pos),
			Detail: fmt.Sprintf("chunk length %d out of range", length),
		}
	}
	if int64(len(r.data)-r.pos-12) < int64(length) {
		return chunk{}, fmt.Errorf("png: chunk at offset %d needs %d bytes: %w",
			r.pos, length, raster.ErrInsufficientData)
	}
	n := int(length)
	c := chunk{
		offset: int64(r.pos),
		typ:    string(r.data[r.pos+4 : r.pos+8]),
		data:   r.data[r.pos+8 : r.pos+8+n],
	}
	want := binary.BigEndian.Uint32(r.data[r.pos+8+n:])
	if got := crc32.ChecksumIEEE(r.data[r.pos+4 : r.pos+8+n]); got != want {
		return chunk{}, &raster.CorruptError{
			Format: raster.FormatPNG,
			Offset: int64(r.pos + 8 + n),
			Detail: fmt.Sprintf("%s checksum mismatch", c.typ),
		}
	}
	r.pos += 12 + n
	return c, nil
}

// appendChunk serializes one chunk with its checksum
func appendChunk(out []byte, typ string, body []byte) []byte {
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	n := len(out)
	out = append(out, typ...)
	out = append(out, body...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(out[n:]))
}
