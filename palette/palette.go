/*
Package palette implements the 15-bit color and 256 color palette used by the
background and sprite layers.

A palette is split into 16 sub-palettes of 16 colors each. When exported it is
written as 512 bytes; one little-endian packed 16-bit value per color with
sub-palette 0 first, ready to be copied into color RAM.
*/
package palette

import "errors"

const (
	subPalettes      = 16
	colorsPerPalette = 16
	numColors        = subPalettes * colorsPerPalette

	// Size is the size in bytes of an exported palette
	Size = numColors << 1
)

// ErrLength is returned when importing a palette from a buffer that isn't
// exactly Size bytes
var ErrLength = errors.New("palette: incorrect length")

// Palette is 16 sub-palettes of 16 colors. The zero value is all black. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Palette struct {
	colors [subPalettes][colorsPerPalette]Color
}

// New returns an all black palette
func New() *Palette {
	return new(Palette)
}

// Color returns color c of sub-palette sub. Both indices wrap modulo 16.
func (p *Palette) Color(sub, c uint8) Color {
	return p.colors[sub%subPalettes][c%colorsPerPalette]
}

// SetColor sets color c of sub-palette sub. Both indices wrap modulo 16.
func (p *Palette) SetColor(sub, c uint8, color Color) {
	p.colors[sub%subPalettes][c%colorsPerPalette] = color
}

// Export returns the palette in binary form
func (p *Palette) Export() []byte {
	b := make([]byte, 0, Size)
	for _, sub := range p.colors {
		for _, c := range sub {
			v := c.RGB555()
			b = append(b, byte(v&0xff), byte(v>>8))
		}
	}
	return b
}

// Import decodes a palette from binary form
func Import(b []byte) (*Palette, error) {
	if len(b) != Size {
		return nil, ErrLength
	}

	p := New()
	for i := 0; i < numColors; i++ {
		v := uint16(b[i<<1]) | uint16(b[i<<1+1])<<8
		p.colors[i/colorsPerPalette][i%colorsPerPalette] = FromRGB555(v)
	}
	return p, nil
}

// MarshalBinary encodes the palette into binary form and returns the result
func (p *Palette) MarshalBinary() ([]byte, error) {
	return p.Export(), nil
}

// UnmarshalBinary decodes the palette from binary form. The palette is left
// untouched if b is the wrong length.
func (p *Palette) UnmarshalBinary(b []byte) error {
	n, err := Import(b)
	if err != nil {
		return err
	}
	*p = *n
	return nil
}
