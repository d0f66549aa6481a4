package image

import (
	"image"
	"image/color"
	"image/draw"
	"sort"

	"github.com/bodgit/semitile/bank"
	"github.com/bodgit/semitile/palette"
	"github.com/bodgit/semitile/tile"
	"github.com/bodgit/semitile/tilemap"
	"github.com/ericpauley/go-quantize/quantize"
)

// Options control the conversion
type Options struct {
	// Format is the tilemap entry layout, it also determines how many
	// sub-palettes are available
	Format tilemap.Format
	// Flips allows mirrored copies of a tile to share the same tile index
	Flips bool
}

// Result is the outcome of a conversion
type Result struct {
	Palette *palette.Palette
	Bank    *bank.Bank
	Tilemap *tilemap.Tilemap
}

// canvas is an image with every pixel reduced to a palette.Color
type canvas struct {
	tilesX, tilesY int
	stride         int
	pix            []palette.Color
}

func snap(m image.Image) *canvas {
	b := m.Bounds()
	c := &canvas{
		tilesX: b.Dx() / tile.Width,
		tilesY: b.Dy() / tile.Height,
		stride: b.Dx(),
		pix:    make([]palette.Color, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c.pix = append(c.pix, palette.Model.Convert(m.At(x, y)).(palette.Color))
		}
	}
	return c
}

func (c *canvas) clone() *canvas {
	dup := *c
	dup.pix = append([]palette.Color(nil), c.pix...)
	return &dup
}

func (c *canvas) at(x, y int) palette.Color {
	return c.pix[y*c.stride+x]
}

func (c *canvas) tileRect(tx, ty int) image.Rectangle {
	return image.Rect(tx*tile.Width, ty*tile.Height, (tx+1)*tile.Width, (ty+1)*tile.Height)
}

func (c *canvas) countColors(r image.Rectangle) map[palette.Color]int {
	colors := make(map[palette.Color]int)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			colors[c.at(x, y)]++
		}
	}
	return colors
}

func (c *canvas) uniqueColors(r image.Rectangle) []palette.Color {
	h := c.countColors(r)
	p := make([]palette.Color, 0, len(h))
	for col := range h {
		p = append(p, col)
	}
	sort.Slice(p, func(i, j int) bool { return p[i].RGB555() < p[j].RGB555() })
	return p
}

// Replace all occurrences of one color with another
func (c *canvas) replaceColor(o, n palette.Color) {
	for i, col := range c.pix {
		if col == o {
			c.pix[i] = n
		}
	}
}

func sqDiff(x, y uint8) int {
	d := int(x) - int(y)
	return d * d
}

// Return the two closest colors in a given palette
func closestColors(p []palette.Color) (palette.Color, palette.Color) {
	var rc1, rc2 palette.Color
	bestSum := int(^uint(0) >> 1)
	for i, c1 := range p {
		r1, g1, b1 := c1.RGB()
		for _, c2 := range p[i+1:] {
			r2, g2, b2 := c2.RGB()
			if sum := sqDiff(r1, r2) + sqDiff(g1, g2) + sqDiff(b1, b2); sum < bestSum {
				bestSum, rc1, rc2 = sum, c1, c2
			}
		}
	}
	return rc1, rc2
}

type paletteMap struct {
	colors []palette.Color
	tiles  []int
}

func (p paletteMap) key() [colorsPerPalette]uint16 {
	var k [colorsPerPalette]uint16
	for i := range k {
		k[i] = 0xffff
	}
	for i, c := range p.colors {
		k[i] = c.RGB555()
	}
	return k
}

// Colors in p2 but not in p1
func paletteDifference(p1, p2 []palette.Color) (d []palette.Color) {
	m := make(map[palette.Color]struct{})
	for _, c := range p1 {
		m[c] = struct{}{}
	}
	for _, c := range p2 {
		if _, ok := m[c]; !ok {
			d = append(d, c)
		}
	}
	return
}

// Variation of bin-packing problem; n bins each with capacity of
// colorsPerPalette. Based on First Fit Decreasing algorithm; relies on the
// incoming palettes being sorted in decreasing size
func packPalette(in []paletteMap, n int) ([]paletteMap, bool) {
	var out []paletteMap
next:
	for _, p := range in {
		for i := range out {
			d := paletteDifference(out[i].colors, p.colors)
			if len(d)+len(out[i].colors) <= colorsPerPalette {
				out[i].colors = append(out[i].colors, d...)
				out[i].tiles = append(out[i].tiles, p.tiles...)
				continue next
			}
		}
		if len(out) == n {
			return nil, false
		}
		out = append(out, paletteMap{
			colors: append([]palette.Color(nil), p.colors...),
			tiles:  append([]int(nil), p.tiles...),
		})
	}
	return out, true
}

func reducePalette(c *canvas, n int) (*canvas, []paletteMap, bool) {
	dup := c.clone()

	// Map of colors to frequency of occurrence
	global := dup.countColors(image.Rect(0, 0, dup.stride, dup.tilesY*tile.Height))

	// Loop over every tile and reduce the number of colors per tile to no
	// more than 16
	for ty := 0; ty < dup.tilesY; ty++ {
		for tx := 0; tx < dup.tilesX; tx++ {
			p := dup.uniqueColors(dup.tileRect(tx, ty))
			for len(p) > colorsPerPalette {
				// Keep whichever of the two closest colors appears
				// more frequently in the image
				keep, lose := closestColors(p)
				if global[lose] > global[keep] {
					keep, lose = lose, keep
				}
				dup.replaceColor(lose, keep)
				global[keep] += global[lose]
				delete(global, lose)

				for i := range p {
					if p[i] == lose {
						p = append(p[:i], p[i+1:]...)
						break
					}
				}
			}
		}
	}

	// Group tiles that use exactly the same colors
	seen := make(map[[colorsPerPalette]uint16]int)
	var palettes []paletteMap
	for ty := 0; ty < dup.tilesY; ty++ {
		for tx := 0; tx < dup.tilesX; tx++ {
			p := paletteMap{
				colors: dup.uniqueColors(dup.tileRect(tx, ty)),
				tiles:  []int{ty*dup.tilesX + tx},
			}
			if i, ok := seen[p.key()]; ok {
				palettes[i].tiles = append(palettes[i].tiles, p.tiles...)
				continue
			}
			seen[p.key()] = len(palettes)
			palettes = append(palettes, p)
		}
	}

	// Sort with biggest palettes first
	sort.SliceStable(palettes, func(i, j int) bool {
		return len(palettes[i].colors) > len(palettes[j].colors)
	})

	packed, ok := packPalette(palettes, n)
	return dup, packed, ok
}

func quantizeImage(m image.Image, colors int) *canvas {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return snap(pm)
}

func build(c *canvas, packed []paletteMap, o Options) (*Result, error) {
	m, err := tilemap.New(o.Format, c.tilesX, c.tilesY)
	if err != nil {
		return nil, err
	}

	r := &Result{
		Palette: palette.New(),
		Bank:    bank.New(),
		Tilemap: m,
	}

	assigned := make([]int, c.tilesX*c.tilesY)
	indices := make([]map[palette.Color]uint8, len(packed))
	for i, p := range packed {
		indices[i] = make(map[palette.Color]uint8, len(p.colors))
		for j, col := range p.colors {
			r.Palette.SetColor(uint8(i), uint8(j), col)
			indices[i][col] = uint8(j)
		}
		for _, t := range p.tiles {
			assigned[t] = i
		}
	}

	for ty := 0; ty < c.tilesY; ty++ {
		for tx := 0; tx < c.tilesX; tx++ {
			sub := assigned[ty*c.tilesX+tx]

			var t tile.Tile
			for y := 0; y < tile.Height; y++ {
				for x := 0; x < tile.Width; x++ {
					t.SetPixel(x, y, indices[sub][c.at(tx*tile.Width+x, ty*tile.Height+y)])
				}
			}

			i, hFlip, vFlip, err := r.Bank.Add(t, o.Flips)
			if err != nil {
				return nil, err
			}

			e := tilemap.DefaultEntry(o.Format)
			e.SetTile(i)
			e.SetPalette(sub)
			e.SetHFlip(hFlip)
			e.SetVFlip(vFlip)
			m.SetEntry(tx, ty, e)
		}
	}

	return r, nil
}

// Convert reduces the image m to a palette, a bank of unique tiles and a
// tilemap that references them
func Convert(m image.Image, o Options) (*Result, error) {
	if !o.Format.Valid() {
		return nil, tilemap.ErrFormat
	}

	b := m.Bounds()
	if b.Empty() || b.Dx()%tile.Width != 0 || b.Dy()%tile.Height != 0 || b.Dx() > maxPixelX || b.Dy() > maxPixelY {
		return nil, ErrSize
	}

	n := o.Format.Palettes()
	max := colorsPerPalette * n

	c := snap(m)
	var packed []paletteMap
	var ok bool

	// Only try and pack the image as-is if there's a chance it will fit
	if len(c.uniqueColors(image.Rect(0, 0, c.stride, c.tilesY*tile.Height))) <= max {
		c, packed, ok = reducePalette(c, n)
	}

	// Keep reducing the colors until the palette can be packed
	for i := max; !ok && i >= colorsPerPalette; i-- {
		c, packed, ok = reducePalette(quantizeImage(m, i), n)
	}

	if !ok {
		return nil, errPack
	}

	return build(c, packed, o)
}
