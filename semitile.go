/*
Package semitile is a library for building background graphics for a 16-bit
console; palettes, tiles and tilemaps converted from ordinary images and kept
in a catalog from which they can be exported as binary blobs ready to be
loaded into video memory.
*/
package semitile

import (
	"log"

	simage "github.com/bodgit/semitile/image"
	"github.com/bodgit/semitile/tilemap"
)

// Semitile imports images into an AssetDB and exports them again
type Semitile struct {
	db     *AssetDB
	format tilemap.Format
	flips  bool
	logger *log.Logger
}

// New returns a Semitile using the AssetDB found at file, creating it if
// necessary. Images are converted using the tilemap format f and if flips is
// true mirrored tiles are stored only once.
func New(file string, f tilemap.Format, flips bool, logger *log.Logger) (*Semitile, error) {
	if !f.Valid() {
		return nil, tilemap.ErrFormat
	}

	db, err := NewAssetDB(file)
	if err != nil {
		return nil, err
	}

	return &Semitile{
		db:     db,
		format: f,
		flips:  flips,
		logger: logger,
	}, nil
}

func (s *Semitile) options() simage.Options {
	return simage.Options{Format: s.format, Flips: s.flips}
}

// DB returns the underlying AssetDB
func (s *Semitile) DB() *AssetDB {
	return s.db
}

// Close closes the underlying AssetDB
func (s *Semitile) Close() error {
	return s.db.Close()
}
