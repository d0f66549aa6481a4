package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	for sub := 0; sub < subPalettes; sub++ {
		for c := 0; c < colorsPerPalette; c++ {
			assert.Equal(t, Color{}, p.Color(uint8(sub), uint8(c)))
		}
	}
}

func TestSetColor(t *testing.T) {
	p := New()
	c := NewColor(15, 20, 25)

	p.SetColor(3, 7, c)
	assert.Equal(t, c, p.Color(3, 7))
	assert.Equal(t, Color{}, p.Color(0, 0))

	// Indices wrap rather than clamp
	c = NewColor(10, 10, 10)
	p.SetColor(18, 20, c)
	assert.Equal(t, c, p.Color(2, 4))
	assert.Equal(t, c, p.Color(242, 244))
	assert.Equal(t, Color{}, p.Color(255, 244))
}

func TestExport(t *testing.T) {
	p := New()
	p.SetColor(0, 0, NewColor(31, 31, 31))
	p.SetColor(0, 1, NewColor(31, 0, 0))
	p.SetColor(1, 0, NewColor(0, 31, 0))
	p.SetColor(15, 15, NewColor(0, 0, 31))

	b := p.Export()
	require.Len(t, b, Size)
	assert.Equal(t, []byte{0xff, 0x7f}, b[0:2])
	assert.Equal(t, []byte{0x00, 0x7c}, b[2:4])
	assert.Equal(t, []byte{0xe0, 0x03}, b[32:34])
	assert.Equal(t, []byte{0x1f, 0x00}, b[510:512])
}

func TestImport(t *testing.T) {
	p := New()
	for sub := 0; sub < subPalettes; sub++ {
		for c := 0; c < colorsPerPalette; c++ {
			p.SetColor(uint8(sub), uint8(c), NewColor(sub+c, sub, c))
		}
	}

	n, err := Import(p.Export())
	require.Nil(t, err)
	assert.Equal(t, p, n)

	n, err = Import(New().Export())
	require.Nil(t, err)
	assert.Equal(t, New(), n)
}

func TestImportExport(t *testing.T) {
	b := make([]byte, Size)
	for i := range b {
		b[i] = byte(i * 7)
	}
	// Bit 15 of each color doesn't survive
	for i := 1; i < Size; i += 2 {
		b[i] &= 0x7f
	}

	p, err := Import(b)
	require.Nil(t, err)
	assert.Equal(t, b, p.Export())
}

func TestImportLength(t *testing.T) {
	for _, n := range []int{0, 1, 256, Size - 1, Size + 1, 1024} {
		p, err := Import(make([]byte, n))
		assert.Nil(t, p)
		assert.Equal(t, ErrLength, err)
	}
}

func TestUnmarshalBinary(t *testing.T) {
	p := New()
	p.SetColor(4, 4, NewColor(1, 2, 3))

	b, err := p.MarshalBinary()
	require.Nil(t, err)

	var n Palette
	require.Nil(t, n.UnmarshalBinary(b))
	assert.Equal(t, *p, n)

	assert.Equal(t, ErrLength, n.UnmarshalBinary(b[:10]))
	assert.Equal(t, *p, n)
}
