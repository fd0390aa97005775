package raster

import (
	"bytes"
	"io"
	"sync"
)

// Registration binds a Format to its codec and detection rules.
// A format matches when any one of its signatures matches and the
// optional Sniff probe (for checks beyond fixed bytes) accepts the data.
type Registration struct {
	Format     Format
	Codec      Codec
	Signatures []Signature

	// Sniff runs after a signature matches and can reject the data on
	// structural grounds, e.g. TIFF refusing camera raw containers.
	Sniff func(data []byte) bool

	// SniffLen is the number of leading bytes Sniff wants to see.
	// Zero means the signature bytes are enough.
	SniffLen int
}

// Registry maps formats to codecs and drives content detection.
// Detection walks registrations in registration order; the first match
// wins, so order is part of the contract. Codec packages register
// themselves during init, and the table is treated as immutable once
// the program is running.
type Registry struct {
	mu    sync.RWMutex
	regs  []Registration
	index map[Format]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{index: make(map[Format]int)}
}

var defaultRegistry = NewRegistry()

// Register adds a codec registration to the default registry
func Register(reg Registration) {
	defaultRegistry.Register(reg)
}

// Lookup retrieves the codec for a format from the default registry
func Lookup(f Format) (Codec, error) {
	return defaultRegistry.Lookup(f)
}

// Registered returns the formats in the default registry in registration order
func Registered() []Format {
	return defaultRegistry.Registered()
}

// Register adds a codec registration. Registering a format again
// replaces the previous codec in place, keeping its detection position,
// so applications can override a built-in. It panics on a registration
// without a format or codec.
func (r *Registry) Register(reg Registration) {
	if reg.Format == FormatUnknown {
		panic("raster: Register with empty format")
	}
	if reg.Codec == nil {
		panic("raster: Register with nil codec for format " + string(reg.Format))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[reg.Format]; ok {
		r.regs[i] = reg
		return
	}
	r.index[reg.Format] = len(r.regs)
	r.regs = append(r.regs, reg)
}

// Lookup retrieves the codec for a format
func (r *Registry) Lookup(f Format) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[f]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return r.regs[i].Codec, nil
}

// Registered returns all registered formats in registration order
func (r *Registry) Registered() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, len(r.regs))
	for i, reg := range r.regs {
		formats[i] = reg.Format
	}
	return formats
}

// Detect identifies the format of encoded data by its magic bytes.
// The first matching registration wins.
func (r *Registry) Detect(data []byte) Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.regs {
		if reg.matches(data) {
			return reg.Format
		}
	}
	return FormatUnknown
}

func (reg *Registration) matches(data []byte) bool {
	for _, sig := range reg.Signatures {
		if sig.matches(data) {
			if reg.Sniff != nil && !reg.Sniff(data) {
				return false
			}
			return true
		}
	}
	return false
}

// DetectReader identifies the format of the data in r without consuming
// it. The returned reader replays the probed bytes followed by the rest
// of r. Short input is not an error; it simply detects as FormatUnknown.
func (r *Registry) DetectReader(rd io.Reader) (Format, io.Reader, error) {
	buf := make([]byte, r.probeLen())
	n, err := io.ReadFull(rd, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return FormatUnknown, nil, err
	}
	buf = buf[:n]
	return r.Detect(buf), io.MultiReader(bytes.NewReader(buf), rd), nil
}

// probeLen returns the number of leading bytes needed to test every
// registered signature and sniff probe
func (r *Registry) probeLen() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, reg := range r.regs {
		for _, sig := range reg.Signatures {
			n = max(n, sig.end())
		}
		n = max(n, reg.SniffLen)
	}
	return n
}
