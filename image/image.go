/*
Package image converts an image into the data needed to display it as a
background layer; a palette, a bank of tiles and a tilemap.

The image must be a whole number of 8 by 8 tiles and no more than 256 tiles in
either direction. Each tile can only use the 16 colors of one sub-palette and
up to 8 or 16 sub-palettes are available depending on the tilemap format so
artwork is reduced to fit, first by merging similar colors within each tile
and then if necessary by quantizing the whole image to fewer colors.
*/
package image

import (
	"errors"

	"github.com/bodgit/semitile/tile"
	"github.com/bodgit/semitile/tilemap"
)

const (
	colorsPerPalette = 16
	maxPixelX        = tile.Width * tilemap.MaxSize
	maxPixelY        = tile.Height * tilemap.MaxSize
)

var (
	// ErrSize is returned when the image dimensions aren't a multiple of
	// the tile size or the image is too big
	ErrSize = errors.New("image: image is wrong size")

	errPack = errors.New("image: unable to pack palettes")
)
