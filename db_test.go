package epaper

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timcal/epaper/display"
	"github.com/timcal/epaper/tricolor"
)

func newTestDB(t *testing.T) (*AssetDB, *bytes.Buffer) {
	t.Helper()

	out := new(bytes.Buffer)
	db, err := NewAssetDB(filepath.Join(t.TempDir(), "test.db"), log.New(out, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db, out
}

func readAsset(t *testing.T, db *AssetDB, name string) []byte {
	t.Helper()

	f, err := db.Open(name)
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	return b
}

func TestAssetDB(t *testing.T) {
	db, out := newTestDB(t)

	first := testBitmap(t)
	require.NoError(t, db.Put("icons/sun.bmp", first))
	assert.Equal(t, first, readAsset(t, db, "icons/sun.bmp"))
	assert.Contains(t, out.String(), "Added \"icons/sun.bmp\"")

	// Same contents again is a no-op
	out.Reset()
	require.NoError(t, db.Put("icons/sun.bmp", first))
	assert.Empty(t, out.String())

	second := append([]byte(nil), first...)
	second[len(second)-1] ^= 0xff
	require.NoError(t, db.Put("icons/sun.bmp", second))
	assert.Equal(t, second, readAsset(t, db, "icons/sun.bmp"))
	assert.Contains(t, out.String(), "Updated \"icons/sun.bmp\"")

	require.NoError(t, db.Put("cloud.bmp", first))

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud.bmp", "icons/sun.bmp"}, names)

	require.NoError(t, db.Delete("icons/sun.bmp"))
	require.NoError(t, db.Delete("icons/sun.bmp"))

	_, err = db.Open("icons/sun.bmp")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	names, err = db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud.bmp"}, names)
}

func TestAssetDBLeadingSlash(t *testing.T) {
	db, _ := newTestDB(t)

	data := testBitmap(t)
	require.NoError(t, db.Put("/icons/moon.bmp", data))

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"icons/moon.bmp"}, names)

	assert.Equal(t, data, readAsset(t, db, "icons/moon.bmp"))
	assert.Equal(t, data, readAsset(t, db, "/icons/moon.bmp"))

	require.NoError(t, db.Delete("/icons/moon.bmp"))
	_, err = db.Open("icons/moon.bmp")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAssetDBSeek(t *testing.T) {
	db, _ := newTestDB(t)

	data := testBitmap(t)
	require.NoError(t, db.Put("a.bmp", data))

	f, err := db.Open("a.bmp")
	require.NoError(t, err)
	defer f.Close()

	off, err := f.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), off)

	_, err = f.Seek(54, io.SeekStart)
	require.NoError(t, err)
	b := make([]byte, 3)
	_, err = io.ReadFull(f, b)
	require.NoError(t, err)
	assert.Equal(t, data[54:57], b)
}

func TestRendererAssetDB(t *testing.T) {
	db, _ := newTestDB(t)
	require.NoError(t, db.Put("icon.bmp", testBitmap(t)))

	buf := display.New(10, 10, tricolor.Red)
	r := New(db, buf, nil)

	assert.Equal(t, Drawn, r.DrawBitmap("/icon.bmp", 1, 1, true))
	assert.Equal(t, tricolor.Accent, buf.Symbol(1, 1))
	assert.Equal(t, tricolor.Black, buf.Symbol(3, 1))
	assert.Equal(t, NotFound, r.DrawBitmap("other.bmp", 0, 0, true))
}

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, data, 0o644))
}

func TestImportDir(t *testing.T) {
	db, out := newTestDB(t)

	dir := t.TempDir()
	data := testBitmap(t)
	writeFile(t, filepath.Join(dir, "a.bmp"), data)
	writeFile(t, filepath.Join(dir, "sub", "b.BMP"), data)
	writeFile(t, filepath.Join(dir, "sub", "deeper", "c.bmp"), data)
	writeFile(t, filepath.Join(dir, ".hidden", "d.bmp"), data)
	writeFile(t, filepath.Join(dir, ".e.bmp"), data)
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("not an image"))
	writeFile(t, filepath.Join(dir, "bad.bmp"), []byte("BMnot really"))

	require.NoError(t, db.ImportDir(dir))

	names, err := db.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bmp", "sub/b.BMP", "sub/deeper/c.bmp"}, names)
	assert.Contains(t, out.String(), "Skipping")
	assert.Equal(t, data, readAsset(t, db, "sub/deeper/c.bmp"))

	// Importing again leaves everything in place
	require.NoError(t, db.ImportDir(dir))
	names, err = db.Names()
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestImportWorkerCancelled(t *testing.T) {
	db, _ := newTestDB(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "a.bmp")
	writeFile(t, file, testBitmap(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := make(chan string, 1)
	in <- file
	close(in)

	errc, err := db.importWorker(ctx, dir, in)
	require.NoError(t, err)
	assert.ErrorIs(t, <-errc, context.Canceled)

	names, err := db.Names()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestImportDirMissing(t *testing.T) {
	db, _ := newTestDB(t)

	assert.Error(t, db.ImportDir(filepath.Join(t.TempDir(), "missing")))
}
