package epaper

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"log"

	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB stores bitmap assets in an sqlite database, standing in for the
// flash file system of the device. Asset data is stored zstd compressed and
// decompressed in full when opened.
type AssetDB struct {
	db     *sql.DB
	logger *log.Logger
	enc    *zstd.Encoder
	dec    *zstd.Decoder
}

// NewAssetDB opens or creates the database in file.
func NewAssetDB(file string, logger *log.Logger) (*AssetDB, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	// Serialise writers from the import workers
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, size INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		db.Close()
		return nil, err
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, err
	}

	return &AssetDB{
		db:     db,
		logger: logger,
		enc:    enc,
		dec:    dec,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	db.dec.Close()
	if err := db.enc.Close(); err != nil {
		db.db.Close()
		return err
	}
	return db.db.Close()
}

// Put stores data under name, replacing any asset with different contents.
func (db *AssetDB) Put(name string, data []byte) error {
	name = assetName(name)
	sha := fmt.Sprintf("%X", sha1.Sum(data))

	var existing string
	switch err := db.db.QueryRow("SELECT sha1 FROM asset WHERE name = ?", name).Scan(&existing); err {
	case sql.ErrNoRows:
		if _, err := db.db.Exec("INSERT INTO asset (name, sha1, size, data) VALUES (?, ?, ?, ?)", name, sha, len(data), db.enc.EncodeAll(data, nil)); err != nil {
			return err
		}
		db.logger.Printf("Added \"%s\" (%d bytes)\n", name, len(data))
	case nil:
		if existing == sha {
			return nil
		}
		if _, err := db.db.Exec("UPDATE asset SET sha1 = ?, size = ?, data = ? WHERE name = ?", sha, len(data), db.enc.EncodeAll(data, nil), name); err != nil {
			return err
		}
		db.logger.Printf("Updated \"%s\" (%d bytes)\n", name, len(data))
	default:
		return err
	}
	return nil
}

// Open returns a seekable reader over the named asset.
func (db *AssetDB) Open(name string) (io.ReadSeekCloser, error) {
	name = assetName(name)
	var size int
	var data []byte
	switch err := db.db.QueryRow("SELECT size, data FROM asset WHERE name = ?", name).Scan(&size, &data); err {
	case sql.ErrNoRows:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case nil:
	default:
		return nil, err
	}

	b, err := db.dec.DecodeAll(data, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return nopCloser{bytes.NewReader(b)}, nil
}

// Names returns the names of all stored assets, sorted.
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

// Delete removes the named asset. Removing a missing asset is not an error.
func (db *AssetDB) Delete(name string) error {
	name = assetName(name)
	_, err := db.db.Exec("DELETE FROM asset WHERE name = ?", name)
	return err
}
