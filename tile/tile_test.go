package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroTile(t *testing.T) {
	var tile Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			assert.Equal(t, uint8(0), tile.Pixel(x, y))
		}
	}
	assert.Equal(t, [Size]byte{}, tile.Planar())
	assert.Equal(t, tile, FromPlanar(tile.Planar()))
}

func TestSetPixel(t *testing.T) {
	var tile Tile
	tile.SetPixel(3, 4, 7)
	assert.Equal(t, uint8(7), tile.Pixel(3, 4))
	assert.Equal(t, uint8(0), tile.Pixel(0, 0))

	tile.SetPixel(0, 0, 15)
	assert.Equal(t, uint8(15), tile.Pixel(0, 0))
}

func TestSetPixelIgnored(t *testing.T) {
	var tile Tile
	tile.SetPixel(8, 0, 5)
	tile.SetPixel(0, 8, 5)
	tile.SetPixel(-1, 0, 5)
	tile.SetPixel(0, -1, 5)
	tile.SetPixel(10, 10, 5)
	tile.SetPixel(0, 0, 16)
	tile.SetPixel(1, 1, 255)
	assert.Equal(t, Tile{}, tile)
}

func TestPixelOutOfBounds(t *testing.T) {
	var tile Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			tile.SetPixel(x, y, 9)
		}
	}
	assert.Equal(t, uint8(0), tile.Pixel(8, 0))
	assert.Equal(t, uint8(0), tile.Pixel(0, 8))
	assert.Equal(t, uint8(0), tile.Pixel(-1, -1))
	assert.Equal(t, uint8(0), tile.Pixel(100, 100))
}

func TestPlanarSinglePixel(t *testing.T) {
	tables := []struct {
		name  string
		x, y  int
		color uint8
		want  map[int]byte
	}{
		{"top left color 15", 0, 0, 15, map[int]byte{0: 0x80, 8: 0x80, 16: 0x80, 24: 0x80}},
		{"top right color 5", 7, 0, 5, map[int]byte{0: 0x01, 16: 0x01}},
		{"bottom left color 2", 0, 7, 2, map[int]byte{15: 0x80}},
		{"middle color 8", 3, 4, 8, map[int]byte{28: 0x10}},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			var tile Tile
			tile.SetPixel(table.x, table.y, table.color)

			b := tile.Planar()
			for i, v := range b {
				assert.Equal(t, table.want[i], v, "byte %d", i)
			}
			assert.Equal(t, tile, FromPlanar(b))
		})
	}
}

func TestPlanarRow(t *testing.T) {
	var tile Tile
	for x := 0; x < Width; x++ {
		tile.SetPixel(x, 0, uint8(x%2))
	}

	b := tile.Planar()
	assert.Equal(t, byte(0x55), b[0])
	assert.Equal(t, byte(0x00), b[8])
	assert.Equal(t, byte(0x00), b[16])
	assert.Equal(t, byte(0x00), b[24])
}

func TestPlanarRoundTrip(t *testing.T) {
	for c := 0; c <= maxColor; c++ {
		for y := 0; y < Height; y++ {
			for x := 0; x < Width; x++ {
				var tile Tile
				tile.SetPixel(x, y, uint8(c))
				n := FromPlanar(tile.Planar())
				if n != tile {
					t.Fatalf("round trip failed for color %d at (%d, %d)", c, x, y)
				}
			}
		}
	}

	var tile Tile
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			tile.SetPixel(x, y, uint8((x+y*3)%16))
		}
	}
	assert.Equal(t, tile, FromPlanar(tile.Planar()))
}

func TestFromPlanarRoundTrip(t *testing.T) {
	var b [Size]byte
	for i := range b {
		b[i] = byte(i*37 + 11)
	}
	tile := FromPlanar(b)
	assert.Equal(t, b, tile.Planar())
}

func TestUnmarshalBinary(t *testing.T) {
	var tile Tile
	tile.SetPixel(1, 2, 3)

	b, err := tile.MarshalBinary()
	require.Nil(t, err)
	require.Len(t, b, Size)

	var n Tile
	require.Nil(t, n.UnmarshalBinary(b))
	assert.Equal(t, tile, n)

	assert.Equal(t, ErrLength, n.UnmarshalBinary(b[:Size-1]))
	assert.Equal(t, ErrLength, n.UnmarshalBinary(append(b, 0)))
	assert.Equal(t, tile, n)
}

func TestFlip(t *testing.T) {
	var tile Tile
	tile.SetPixel(0, 0, 1)
	tile.SetPixel(6, 1, 2)
	tile.SetPixel(2, 7, 3)

	h := tile.FlipH()
	assert.Equal(t, uint8(1), h.Pixel(7, 0))
	assert.Equal(t, uint8(2), h.Pixel(1, 1))
	assert.Equal(t, uint8(3), h.Pixel(5, 7))
	assert.Equal(t, uint8(0), h.Pixel(0, 0))

	v := tile.FlipV()
	assert.Equal(t, uint8(1), v.Pixel(0, 7))
	assert.Equal(t, uint8(2), v.Pixel(6, 6))
	assert.Equal(t, uint8(3), v.Pixel(2, 0))

	assert.Equal(t, tile, tile.FlipH().FlipH())
	assert.Equal(t, tile, tile.FlipV().FlipV())
	assert.Equal(t, tile.FlipH().FlipV(), tile.FlipV().FlipH())
}
