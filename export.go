package semitile

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/semitile/bank"
	simage "github.com/bodgit/semitile/image"
	"github.com/bodgit/semitile/palette"
	"github.com/bodgit/semitile/tilemap"
)

const (
	paletteExt = ".pal"
	tilesExt   = ".chr"
	tilemapExt = ".map"
)

// ErrNotFound is returned when exporting an asset that doesn't exist
var ErrNotFound = errors.New("asset not found")

// Export writes the palette, tiles and tilemap of the named asset to dir.
// The files are named after the last element of the asset name with the
// .pal, .chr and .map extensions respectively.
func (s *Semitile) Export(name, dir string) error {
	a, err := s.db.FindAsset(name)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}

	prefix := filepath.Join(dir, filepath.Base(filepath.FromSlash(name)))
	if err := writeFiles(prefix, a.Palette, a.Bank, a.Tilemap); err != nil {
		return err
	}

	s.logger.Printf("Exported \"%s\" to \"%s\"\n", name, prefix)

	return nil
}

// ConvertFile converts the image in file and writes the palette, tiles and
// tilemap to dir without storing anything in an AssetDB. The files are named
// after file with the .pal, .chr and .map extensions respectively.
func ConvertFile(file, dir string, o simage.Options) error {
	m, _, err := decodeFile(file)
	if err != nil {
		return err
	}

	r, err := simage.Convert(m, o)
	if err != nil {
		return err
	}

	base := filepath.Base(file)
	return writeFiles(filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))), r.Palette, r.Bank, r.Tilemap)
}

func writeFiles(prefix string, p *palette.Palette, b *bank.Bank, m *tilemap.Tilemap) error {
	tiles, err := b.MarshalBinary()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(prefix), 0755); err != nil {
		return err
	}

	for ext, data := range map[string][]byte{
		paletteExt: p.Export(),
		tilesExt:   tiles,
		tilemapExt: m.Export(),
	} {
		if err := ioutil.WriteFile(prefix+ext, data, 0644); err != nil {
			return err
		}
	}

	return nil
}
