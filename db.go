package semitile

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"sync"

	"github.com/bodgit/semitile/bank"
	simage "github.com/bodgit/semitile/image"
	"github.com/bodgit/semitile/palette"
	"github.com/bodgit/semitile/tilemap"
	_ "github.com/mattn/go-sqlite3" // register the sqlite3 driver
	_ "golang.org/x/image/bmp"      // register BMP decoding
)

// AssetDB is a catalog of converted images stored in SQLite. Each image is
// stored once per tilemap format, keyed by the SHA-1 of the source file, and
// any number of named assets can refer to it.
type AssetDB struct {
	db *sql.DB

	// Serializes the select-then-insert sequences
	mu sync.Mutex
}

// Asset is a converted image retrieved from an AssetDB
type Asset struct {
	Name    string
	SHA1    string
	Palette *palette.Palette
	Bank    *bank.Bank
	Tilemap *tilemap.Tilemap
}

// NewAssetDB opens the AssetDB in file, creating the schema if necessary
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, format INTEGER NOT NULL, flips INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, palette BLOB NOT NULL, tiles BLOB NOT NULL, tilemap BLOB NOT NULL, UNIQUE(sha1, format, flips))"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, name STRING NOT NULL UNIQUE, image_id INTEGER NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the database
func (db *AssetDB) Close() error {
	return db.db.Close()
}

func decodeFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", err
	}

	// Hash anything the decoder didn't read
	if _, err := io.Copy(h, f); err != nil {
		return nil, "", err
	}

	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// AddImage converts the image in file and stores it under name, replacing
// any existing asset with the same name. An image that has already been
// converted with the same options is reused and any image no longer used by
// an asset is removed.
func (db *AssetDB) AddImage(name, file string, o simage.Options) (int64, error) {
	m, sha, err := decodeFile(file)
	if err != nil {
		return 0, err
	}

	// Convert outside of the lock, the result is only needed if the image
	// isn't already stored
	var r *simage.Result
	if _, ok, err := db.findImage(sha, o); err != nil {
		return 0, err
	} else if !ok {
		if r, err = simage.Convert(m, o); err != nil {
			return 0, err
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	id, err := db.addImage(m, sha, o, r)
	if err != nil {
		return 0, err
	}

	asset, err := db.addAsset(name, id)
	if err != nil {
		return 0, err
	}

	if err := db.pruneImages(); err != nil {
		return 0, err
	}

	return asset, nil
}

func (db *AssetDB) findImage(sha string, o simage.Options) (int64, bool, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM image WHERE sha1 = ? AND format = ? AND flips = ?", sha, int(o.Format), o.Flips).Scan(&id); err {
	case sql.ErrNoRows:
		return 0, false, nil
	case nil:
		return id, true, nil
	default:
		return 0, false, err
	}
}

// addImage returns the id of the stored image, inserting r if there isn't
// one. If r is nil the image is converted again.
func (db *AssetDB) addImage(m image.Image, sha string, o simage.Options, r *simage.Result) (int64, error) {
	id, ok, err := db.findImage(sha, o)
	if err != nil {
		return 0, err
	}
	if ok {
		return id, nil
	}

	if r == nil {
		if r, err = simage.Convert(m, o); err != nil {
			return 0, err
		}
	}

	tiles, err := r.Bank.MarshalBinary()
	if err != nil {
		return 0, err
	}
	result, err := db.db.Exec("INSERT INTO image (sha1, format, flips, width, height, palette, tiles, tilemap) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", sha, int(o.Format), o.Flips, r.Tilemap.Width(), r.Tilemap.Height(), r.Palette.Export(), tiles, r.Tilemap.Export())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func (db *AssetDB) addAsset(name string, imageID int64) (int64, error) {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (name, image_id) VALUES (?, ?)", name, imageID); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM asset WHERE name = ?", name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (db *AssetDB) pruneImages() error {
	_, err := db.db.Exec("DELETE FROM image WHERE id NOT IN (SELECT image_id FROM asset)")
	return err
}

// FindAsset returns the asset stored under name, or nil if there is no such
// asset
func (db *AssetDB) FindAsset(name string) (*Asset, error) {
	var (
		sha                  string
		format               int
		width, height        int
		pal, tiles, tmapData []byte
	)
	switch err := db.db.QueryRow("SELECT i.sha1, i.format, i.width, i.height, i.palette, i.tiles, i.tilemap FROM asset AS a JOIN image AS i ON a.image_id = i.id WHERE a.name = ?", name).Scan(&sha, &format, &width, &height, &pal, &tiles, &tmapData); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		p, err := palette.Import(pal)
		if err != nil {
			return nil, err
		}

		b := bank.New()
		if err := b.UnmarshalBinary(tiles); err != nil {
			return nil, err
		}

		m, err := tilemap.Import(tmapData, tilemap.Format(format), width, height)
		if err != nil {
			return nil, err
		}

		return &Asset{
			Name:    name,
			SHA1:    sha,
			Palette: p,
			Bank:    b,
			Tilemap: m,
		}, nil
	default:
		return nil, err
	}
}

// Names returns the name of every asset in order
func (db *AssetDB) Names() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM asset ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteAsset removes the asset stored under name along with its image if
// no other asset uses it
func (db *AssetDB) DeleteAsset(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.db.Exec("DELETE FROM asset WHERE name = ?", name); err != nil {
		return err
	}

	return db.pruneImages()
}
