package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rgb(c Color) [3]uint8 {
	r, g, b := c.RGB()
	return [3]uint8{r, g, b}
}

func TestNewColor(t *testing.T) {
	tables := []struct {
		name    string
		r, g, b int
		want    [3]uint8
	}{
		{"in range", 15, 20, 25, [3]uint8{15, 20, 25}},
		{"too big", 50, 100, 255, [3]uint8{31, 31, 31}},
		{"negative", -1, -100, 0, [3]uint8{0, 0, 0}},
		{"boundary", 31, 0, 32, [3]uint8{31, 0, 31}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, rgb(NewColor(table.r, table.g, table.b)))
		})
	}
}

func TestColorRGB555(t *testing.T) {
	c := NewColor(31, 16, 8)
	assert.Equal(t, uint16(0x7e08), c.RGB555())
	assert.Equal(t, c, FromRGB555(0x7e08))

	assert.Equal(t, uint16(0x0000), NewColor(0, 0, 0).RGB555())
	assert.Equal(t, uint16(0x7fff), NewColor(31, 31, 31).RGB555())

	// Bit 15 is unused
	assert.Equal(t, NewColor(31, 31, 31), FromRGB555(0xffff))
	assert.Equal(t, Color{}, FromRGB555(0x8000))
}

func TestColorRoundTrip(t *testing.T) {
	for r := 0; r < 32; r++ {
		for g := 0; g < 32; g++ {
			for b := 0; b < 32; b++ {
				c := NewColor(r, g, b)
				if got := FromRGB555(c.RGB555()); got != c {
					t.Fatalf("round trip failed for (%d, %d, %d): got %v", r, g, b, got)
				}
			}
		}
	}
}

func TestColorRGB888(t *testing.T) {
	r, g, b := NewColor(31, 0, 16).RGB888()
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(132), b)

	assert.Equal(t, [3]uint8{31, 16, 8}, rgb(FromRGB888(255, 128, 64)))
}

func TestColorFromRGB888Stable(t *testing.T) {
	for r := 0; r < 256; r++ {
		for g := 0; g < 256; g++ {
			for b := 0; b < 256; b++ {
				c := FromRGB888(uint8(r), uint8(g), uint8(b))
				v := c.RGB555()
				if FromRGB555(v).RGB555() != v {
					t.Fatalf("unstable value for (%d, %d, %d)", r, g, b)
				}
				if FromRGB555(v) != c {
					t.Fatalf("unstable color for (%d, %d, %d)", r, g, b)
				}
			}
		}
	}
}

func TestModel(t *testing.T) {
	assert.Equal(t, NewColor(31, 31, 31), Model.Convert(color.White))
	assert.Equal(t, NewColor(0, 0, 0), Model.Convert(color.Black))
	assert.Equal(t, NewColor(31, 16, 8), Model.Convert(color.RGBA{255, 128, 64, 255}))

	c := NewColor(1, 2, 3)
	assert.Equal(t, c, Model.Convert(c))
	assert.Equal(t, c, Model.Convert(color.RGBAModel.Convert(c)))
}
