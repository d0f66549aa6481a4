package tilemap

import (
	"errors"
	"strings"
)

// Format selects the bit layout of a packed tilemap entry. The two layouts
// are incompatible and there is no default; the zero value is invalid.
type Format int

const (
	_ Format = iota
	// FormatA packs the tile index in bits 0-9, a 3-bit palette index in
	// bits 10-12, horizontal flip in bit 13, vertical flip in bit 14 and
	// sprite priority in bit 15
	FormatA
	// FormatB packs the tile index in bits 0-9, horizontal flip in bit 10,
	// vertical flip in bit 11 and a 4-bit palette index in bits 12-15. There
	// is no priority bit.
	FormatB
)

// ErrFormat is returned when an unknown Format is used
var ErrFormat = errors.New("tilemap: unknown format")

// Valid reports whether f is a known format
func (f Format) Valid() bool {
	return f == FormatA || f == FormatB
}

// Palettes returns the number of sub-palettes an entry can address
func (f Format) Palettes() int {
	switch f {
	case FormatA:
		return 8
	case FormatB:
		return 16
	}
	return 0
}

// HasPriority reports whether entries carry a priority bit
func (f Format) HasPriority() bool {
	return f == FormatA
}

func (f Format) String() string {
	switch f {
	case FormatA:
		return "a"
	case FormatB:
		return "b"
	}
	return "unknown"
}

// ParseFormat returns the Format named by s, either "a" or "b"
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a":
		return FormatA, nil
	case "b":
		return FormatB, nil
	}
	return 0, ErrFormat
}
