/*
Package tilemap implements background tilemaps; a grid of up to 256 by 256
packed 16-bit entries, each referencing a tile, a sub-palette and a set of
flags.

Two incompatible entry layouts exist, selected with a Format. A tilemap is
exported row by row as one little-endian packed entry per cell so the
resulting size is always width * height * 2 bytes.
*/
package tilemap

import "errors"

const (
	// MaxSize is the largest width or height of a tilemap
	MaxSize = 256
	// MinSize is the smallest width or height of a tilemap
	MinSize = 1
)

// ErrLength is returned when importing a tilemap from a buffer that doesn't
// match the requested dimensions
var ErrLength = errors.New("tilemap: incorrect length")

// Tilemap is a width by height grid of entries stored row by row
type Tilemap struct {
	format  Format
	width   int
	height  int
	entries []Entry
}

func clampSize(v int) int {
	switch {
	case v < MinSize:
		return MinSize
	case v > MaxSize:
		return MaxSize
	default:
		return v
	}
}

func grid(f Format, width, height int) []Entry {
	entries := make([]Entry, width*height)
	for i := range entries {
		entries[i] = DefaultEntry(f)
	}
	return entries
}

// New returns a tilemap of default entries. The width and height are each
// clamped to 1-256.
func New(f Format, width, height int) (*Tilemap, error) {
	if !f.Valid() {
		return nil, ErrFormat
	}

	width, height = clampSize(width), clampSize(height)

	return &Tilemap{
		format:  f,
		width:   width,
		height:  height,
		entries: grid(f, width, height),
	}, nil
}

// Format returns the entry layout used by the tilemap
func (m *Tilemap) Format() Format {
	return m.format
}

// Width returns the width of the tilemap
func (m *Tilemap) Width() int {
	return m.width
}

// Height returns the height of the tilemap
func (m *Tilemap) Height() int {
	return m.height
}

func (m *Tilemap) inBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Entry returns the entry at x, y. It returns false if the coordinates are
// outside of the tilemap.
func (m *Tilemap) Entry(x, y int) (Entry, bool) {
	if !m.inBounds(x, y) {
		return Entry{}, false
	}
	return m.entries[y*m.width+x], true
}

// SetEntry sets the entry at x, y. Coordinates outside of the tilemap or an
// entry of a different Format are ignored.
func (m *Tilemap) SetEntry(x, y int, e Entry) {
	if m.inBounds(x, y) && e.format == m.format {
		m.entries[y*m.width+x] = e
	}
}

// Resize changes the dimensions of the tilemap, each clamped to 1-256.
// Entries within both the old and new bounds are kept, anything outside of
// the new bounds is lost and any new cells contain the default entry.
func (m *Tilemap) Resize(width, height int) {
	width, height = clampSize(width), clampSize(height)

	if width == m.width && height == m.height {
		return
	}

	entries := grid(m.format, width, height)

	w, h := m.width, m.height
	if width < w {
		w = width
	}
	if height < h {
		h = height
	}

	for y := 0; y < h; y++ {
		copy(entries[y*width:y*width+w], m.entries[y*m.width:y*m.width+w])
	}

	m.width, m.height, m.entries = width, height, entries
}

// Clear sets every entry to the default entry
func (m *Tilemap) Clear() {
	m.Fill(DefaultEntry(m.format))
}

// Fill sets every entry to e. An entry of a different Format is ignored.
func (m *Tilemap) Fill(e Entry) {
	if e.format != m.format {
		return
	}
	for i := range m.entries {
		m.entries[i] = e
	}
}

// Clone returns a copy of the tilemap
func (m *Tilemap) Clone() *Tilemap {
	n := *m
	n.entries = append([]Entry(nil), m.entries...)
	return &n
}

// Export returns the tilemap in binary form
func (m *Tilemap) Export() []byte {
	b := make([]byte, 0, len(m.entries)<<1)
	for _, e := range m.entries {
		v := e.Uint16()
		b = append(b, byte(v&0xff), byte(v>>8))
	}
	return b
}

// MarshalBinary encodes the tilemap into binary form and returns the result
func (m *Tilemap) MarshalBinary() ([]byte, error) {
	return m.Export(), nil
}

// Import decodes a tilemap of the given dimensions from binary form. The
// dimensions are clamped the same way as New before checking the length of
// b.
func Import(b []byte, f Format, width, height int) (*Tilemap, error) {
	m, err := New(f, width, height)
	if err != nil {
		return nil, err
	}

	if len(b) != len(m.entries)<<1 {
		return nil, ErrLength
	}

	for i := range m.entries {
		// Can't fail, the format has already been checked
		m.entries[i], _ = FromUint16(f, uint16(b[i<<1])|uint16(b[i<<1+1])<<8)
	}

	return m, nil
}
