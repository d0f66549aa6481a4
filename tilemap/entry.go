package tilemap

const (
	// MaxTile is the largest tile index an entry can hold
	MaxTile = 1<<10 - 1

	tileMask = MaxTile

	paletteShiftA = 10
	hFlipBitA     = 1 << 13
	vFlipBitA     = 1 << 14
	priorityBitA  = 1 << 15

	hFlipBitB     = 1 << 10
	vFlipBitB     = 1 << 11
	paletteShiftB = 12
)

// Entry is a single tilemap cell. The zero value has no Format and packs to
// 0; use NewEntryA, NewEntryB or DefaultEntry.
type Entry struct {
	format   Format
	tile     uint16
	palette  uint8
	hFlip    bool
	vFlip    bool
	priority bool
}

func clamp(v, hi int) int {
	switch {
	case v < 0:
		return 0
	case v > hi:
		return hi
	default:
		return v
	}
}

// NewEntryA returns a FormatA entry, the tile index is clamped to 0-1023 and
// the palette index to 0-7
func NewEntryA(tile, palette int, hFlip, vFlip, priority bool) Entry {
	e := Entry{format: FormatA, hFlip: hFlip, vFlip: vFlip, priority: priority}
	e.SetTile(tile)
	e.SetPalette(palette)
	return e
}

// NewEntryB returns a FormatB entry, the tile index is clamped to 0-1023 and
// the palette index to 0-15
func NewEntryB(tile, palette int, hFlip, vFlip bool) Entry {
	e := Entry{format: FormatB, hFlip: hFlip, vFlip: vFlip}
	e.SetTile(tile)
	e.SetPalette(palette)
	return e
}

// DefaultEntry returns the empty entry for f; tile 0, palette 0 and no flags
func DefaultEntry(f Format) Entry {
	if !f.Valid() {
		return Entry{}
	}
	return Entry{format: f}
}

// FromUint16 unpacks v using the layout of f
func FromUint16(f Format, v uint16) (Entry, error) {
	switch f {
	case FormatA:
		return Entry{
			format:   f,
			tile:     v & tileMask,
			palette:  uint8(v >> paletteShiftA & 0x7),
			hFlip:    v&hFlipBitA != 0,
			vFlip:    v&vFlipBitA != 0,
			priority: v&priorityBitA != 0,
		}, nil
	case FormatB:
		return Entry{
			format:  f,
			tile:    v & tileMask,
			palette: uint8(v >> paletteShiftB & 0xf),
			hFlip:   v&hFlipBitB != 0,
			vFlip:   v&vFlipBitB != 0,
		}, nil
	}
	return Entry{}, ErrFormat
}

// Uint16 packs the entry using the layout of its Format
func (e Entry) Uint16() uint16 {
	v := e.tile & tileMask
	switch e.format {
	case FormatA:
		v |= uint16(e.palette&0x7) << paletteShiftA
		if e.hFlip {
			v |= hFlipBitA
		}
		if e.vFlip {
			v |= vFlipBitA
		}
		if e.priority {
			v |= priorityBitA
		}
	case FormatB:
		v |= uint16(e.palette&0xf) << paletteShiftB
		if e.hFlip {
			v |= hFlipBitB
		}
		if e.vFlip {
			v |= vFlipBitB
		}
	default:
		return 0
	}
	return v
}

// Format returns the layout of the entry
func (e Entry) Format() Format { return e.format }

// Tile returns the tile index
func (e Entry) Tile() int { return int(e.tile) }

// Palette returns the sub-palette index
func (e Entry) Palette() int { return int(e.palette) }

// HFlip reports whether the tile is mirrored horizontally
func (e Entry) HFlip() bool { return e.hFlip }

// VFlip reports whether the tile is mirrored vertically
func (e Entry) VFlip() bool { return e.vFlip }

// Priority reports whether the tile is drawn in front of sprites. It is
// always false for FormatB.
func (e Entry) Priority() bool { return e.priority }

// SetTile sets the tile index, clamped to 0-1023
func (e *Entry) SetTile(tile int) {
	e.tile = uint16(clamp(tile, MaxTile))
}

// SetPalette sets the sub-palette index, clamped to the range of the Format
func (e *Entry) SetPalette(palette int) {
	if n := e.format.Palettes(); n > 0 {
		e.palette = uint8(clamp(palette, n-1))
	}
}

// SetHFlip sets horizontal mirroring
func (e *Entry) SetHFlip(hFlip bool) { e.hFlip = hFlip }

// SetVFlip sets vertical mirroring
func (e *Entry) SetVFlip(vFlip bool) { e.vFlip = vFlip }

// SetPriority sets sprite priority, it has no effect for FormatB
func (e *Entry) SetPriority(priority bool) {
	if e.format.HasPriority() {
		e.priority = priority
	}
}
