/*
Package tile implements an 8 by 8 pixel tile where each pixel is a 4-bit index
into a 16 color sub-palette.

A tile is encoded in 4bpp planar form as 32 bytes; four consecutive 8 byte bit
planes, plane 0 holding the least significant bit of every pixel and plane 3
the most significant. Each byte of a plane is one row of pixels with bit 7 the
leftmost pixel.
*/
package tile

import "errors"

const (
	// Width is the width of a tile in pixels
	Width = 8
	// Height is the height of a tile in pixels
	Height = Width
	// Size is the size in bytes of a tile in planar form
	Size = planes * Height

	planes   = 4
	maxColor = 1<<planes - 1
)

// ErrLength is returned when decoding a tile from a buffer that isn't exactly
// Size bytes
var ErrLength = errors.New("tile: incorrect length")

// Tile is an 8x8 grid of color indices. The zero value is a tile with every
// pixel set to index 0. It implements the encoding.BinaryMarshaler and
// encoding.BinaryUnmarshaler interfaces.
type Tile struct {
	pixels [Height][Width]uint8
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// SetPixel sets the pixel at x, y to color index c. Out of range coordinates
// or indices are ignored.
func (t *Tile) SetPixel(x, y int, c uint8) {
	if inBounds(x, y) && c <= maxColor {
		t.pixels[y][x] = c
	}
}

// Pixel returns the color index of the pixel at x, y or 0 if the coordinates
// are out of range
func (t Tile) Pixel(x, y int) uint8 {
	if !inBounds(x, y) {
		return 0
	}
	return t.pixels[y][x]
}

// Planar returns the tile in 4bpp planar form
func (t Tile) Planar() [Size]byte {
	var b [Size]byte
	for y, row := range t.pixels {
		for x, c := range row {
			bit := byte(0x80) >> uint(x)
			for p := 0; p < planes; p++ {
				if c>>uint(p)&1 != 0 {
					b[p*Height+y] |= bit
				}
			}
		}
	}
	return b
}

// FromPlanar decodes a tile from 4bpp planar form
func FromPlanar(b [Size]byte) Tile {
	var t Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			bit := byte(0x80) >> uint(x)
			var c uint8
			for p := 0; p < planes; p++ {
				if b[p*Height+y]&bit != 0 {
					c |= 1 << uint(p)
				}
			}
			t.pixels[y][x] = c
		}
	}
	return t
}

// MarshalBinary returns the tile in 4bpp planar form
func (t Tile) MarshalBinary() ([]byte, error) {
	b := t.Planar()
	return b[:], nil
}

// UnmarshalBinary decodes the tile from 4bpp planar form. The tile is left
// untouched if b is the wrong length.
func (t *Tile) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return ErrLength
	}
	var tmp [Size]byte
	copy(tmp[:], b)
	*t = FromPlanar(tmp)
	return nil
}

// FlipH returns a copy of the tile mirrored left to right
func (t Tile) FlipH() Tile {
	var n Tile
	for y, row := range t.pixels {
		for x, c := range row {
			n.pixels[y][Width-1-x] = c
		}
	}
	return n
}

// FlipV returns a copy of the tile mirrored top to bottom
func (t Tile) FlipV() Tile {
	var n Tile
	for y, row := range t.pixels {
		n.pixels[Height-1-y] = row
	}
	return n
}
