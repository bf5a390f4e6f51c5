package epaper

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/timcal/epaper/bmp"
)

const importWorkers = 4

func (db *AssetDB) findBitmaps(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), ".bmp") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (db *AssetDB) importWorker(ctx context.Context, base string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			b, err := os.ReadFile(file)
			if err != nil {
				errc <- err
				return
			}

			// Unsupported or truncated headers would never draw
			if _, err := bmp.ReadHeader(bytes.NewReader(b)); err != nil {
				db.logger.Printf("Skipping \"%s\": %s\n", file, err)
				continue
			}

			name, err := filepath.Rel(base, file)
			if err != nil {
				errc <- err
				return
			}

			if err := db.Put(filepath.ToSlash(name), b); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ImportDir walks path and stores every bitmap found under it, named by its
// slash-separated path relative to path. Hidden files and directories are
// skipped, as are files that are not a supported bitmap.
func (db *AssetDB) ImportDir(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := db.findBitmaps(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < importWorkers; i++ {
		errc, err := db.importWorker(ctx, dir, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
