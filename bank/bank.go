/*
Package bank implements a tile bank; the set of up to 1024 unique tiles that a
tilemap entry can reference with its 10-bit tile index.

Tiles are deduplicated as they are added, optionally matching a mirrored copy
of an existing tile so a tilemap entry can reuse it with its flip bits set. A
bank is written as each tile in 4bpp planar form, one after another.
*/
package bank

import (
	"errors"
	"hash/crc32"

	"github.com/bodgit/semitile/tile"
	"github.com/bodgit/semitile/tilemap"
)

// MaxTiles is the maximum number of tiles in a bank
const MaxTiles = tilemap.MaxTile + 1

var (
	// ErrFull is returned when adding a new tile to a bank that already
	// contains MaxTiles tiles
	ErrFull = errors.New("bank: more than 1024 tiles")
	// ErrLength is returned when decoding a bank from a buffer that isn't a
	// whole number of tiles
	ErrLength = errors.New("bank: incorrect length")
)

// Bank is an ordered set of unique tiles. The zero value is an empty bank. It
// implements the encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
// interfaces.
type Bank struct {
	tiles     []tile.Tile
	checksums map[uint32][]int
}

// New returns an empty bank
func New() *Bank {
	return &Bank{
		checksums: make(map[uint32][]int),
	}
}

func checksum(t tile.Tile) uint32 {
	b := t.Planar()
	return crc32.ChecksumIEEE(b[:])
}

// Length returns the number of tiles in the bank
func (b *Bank) Length() int {
	return len(b.tiles)
}

// Tile returns tile i, or false if there is no such tile
func (b *Bank) Tile(i int) (tile.Tile, bool) {
	if i < 0 || i >= len(b.tiles) {
		return tile.Tile{}, false
	}
	return b.tiles[i], true
}

func (b *Bank) find(t tile.Tile) (int, bool) {
	for _, i := range b.checksums[checksum(t)] {
		if b.tiles[i] == t {
			return i, true
		}
	}
	return 0, false
}

// Find returns the index of t in the bank. If flips is true then mirrored
// copies of t are also matched and the returned flags report which mirroring
// must be applied to the stored tile to reproduce t.
func (b *Bank) Find(t tile.Tile, flips bool) (i int, hFlip, vFlip, ok bool) {
	if i, ok := b.find(t); ok {
		return i, false, false, true
	}

	if !flips {
		return 0, false, false, false
	}

	if i, ok := b.find(t.FlipH()); ok {
		return i, true, false, true
	}
	if i, ok := b.find(t.FlipV()); ok {
		return i, false, true, true
	}
	if i, ok := b.find(t.FlipH().FlipV()); ok {
		return i, true, true, true
	}

	return 0, false, false, false
}

// Add returns the index of t, adding it to the bank if it isn't already
// present. See Find for the meaning of flips and the returned flags.
func (b *Bank) Add(t tile.Tile, flips bool) (i int, hFlip, vFlip bool, err error) {
	if i, hFlip, vFlip, ok := b.Find(t, flips); ok {
		return i, hFlip, vFlip, nil
	}

	if len(b.tiles) >= MaxTiles {
		return 0, false, false, ErrFull
	}

	b.append(t)

	return len(b.tiles) - 1, false, false, nil
}

func (b *Bank) append(t tile.Tile) {
	if b.checksums == nil {
		b.checksums = make(map[uint32][]int)
	}
	b.tiles = append(b.tiles, t)
	crc := checksum(t)
	b.checksums[crc] = append(b.checksums[crc], len(b.tiles)-1)
}

// MarshalBinary encodes the bank into binary form and returns the result
func (b *Bank) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(b.tiles)*tile.Size)
	for _, t := range b.tiles {
		p := t.Planar()
		out = append(out, p[:]...)
	}
	return out, nil
}

// UnmarshalBinary decodes the bank from binary form. Tiles are kept in the
// order they are stored and are not deduplicated. The bank is left untouched
// on error.
func (b *Bank) UnmarshalBinary(data []byte) error {
	if len(data)%tile.Size != 0 {
		return ErrLength
	}
	if len(data)/tile.Size > MaxTiles {
		return ErrFull
	}

	n := New()
	for len(data) > 0 {
		var t tile.Tile
		if err := t.UnmarshalBinary(data[:tile.Size]); err != nil {
			return err
		}
		n.append(t)
		data = data[tile.Size:]
	}

	*b = *n

	return nil
}
