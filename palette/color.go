package palette

import "image/color"

const (
	channelMax = 0x1f
	redShift   = 10
	greenShift = 5
)

// Color is a 15-bit color with 5 bits for each of the red, green and blue
// channels.
type Color struct {
	r, g, b uint8
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > channelMax:
		return channelMax
	default:
		return uint8(v)
	}
}

// NewColor returns a Color with each channel clamped to 0-31
func NewColor(r, g, b int) Color {
	return Color{clamp(r), clamp(g), clamp(b)}
}

// RGB returns the 5-bit channels
func (c Color) RGB() (uint8, uint8, uint8) {
	return c.r, c.g, c.b
}

// RGB555 returns the color packed as 0RRRRRGGGGGBBBBB
func (c Color) RGB555() uint16 {
	return uint16(c.r)<<redShift | uint16(c.g)<<greenShift | uint16(c.b)
}

// FromRGB555 unpacks a 0RRRRRGGGGGBBBBB value, bit 15 is ignored
func FromRGB555(v uint16) Color {
	return Color{
		uint8(v >> redShift & channelMax),
		uint8(v >> greenShift & channelMax),
		uint8(v & channelMax),
	}
}

func expand(v uint8) uint8 {
	return v<<3 | v>>2
}

// RGB888 returns the color expanded to 8 bits per channel, 0 maps to 0 and
// 31 maps to 255
func (c Color) RGB888() (uint8, uint8, uint8) {
	return expand(c.r), expand(c.g), expand(c.b)
}

// FromRGB888 returns the nearest lower Color by discarding the bottom 3 bits
// of each channel
func FromRGB888(r, g, b uint8) Color {
	return Color{r >> 3, g >> 3, b >> 3}
}

// RGBA implements the color.Color interface
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := c.RGB888()
	return color.RGBA{r, g, b, 0xff}.RGBA()
}

// Model converts any color.Color to a Color
var Model = color.ModelFunc(func(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return FromRGB888(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})
