// Package importer adds image files from disk to the photo store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/folio/internal/photo"
	"github.com/llehouerou/folio/internal/store"
)

const numWorkers = 4

// Repository is the part of the store the importer writes to.
type Repository interface {
	KnownPaths(ctx context.Context) (map[string]bool, error)
	Add(ctx context.Context, photos ...store.NewPhoto) ([]photo.Item, error)
	DeleteByPath(ctx context.Context, path string) error
}

// Progress reports the progress of an import.
type Progress struct {
	Phase       string // "scanning", "reading", "saving", "done"
	Current     int
	Total       int
	CurrentFile string
	Result      *Result // Only populated when Phase == "done"
}

// Failure is a file that could not be read.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes an import.
type Result struct {
	Added   []photo.Item
	Skipped int // already in the store
	Failed  []Failure
	Bytes   int64
}

// Summary renders the result for status lines and the CLI.
func (r Result) Summary() string {
	if len(r.Added) == 0 && len(r.Failed) == 0 {
		if r.Skipped > 0 {
			return fmt.Sprintf("Nothing new (%s already imported)", plural(r.Skipped, "photo"))
		}
		return "No photos found"
	}
	s := fmt.Sprintf("Imported %s (%s)", plural(len(r.Added), "photo"), humanize.Bytes(uint64(max(r.Bytes, 0))))
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %s skipped", humanize.Comma(int64(r.Skipped)))
	}
	if len(r.Failed) > 0 {
		s += fmt.Sprintf(", %s unreadable", humanize.Comma(int64(len(r.Failed))))
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

type Importer struct {
	repo   Repository
	settle time.Duration // watcher quiet period
}

func New(repo Repository) *Importer {
	return &Importer{repo: repo, settle: settleDelay}
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

// Import walks dirs and adds every image not stored yet. progress may be nil;
// otherwise it is closed when Import returns.
func (im *Importer) Import(ctx context.Context, dirs []string, progress chan<- Progress) (Result, error) {
	if progress != nil {
		defer close(progress)
	}
	report := func(p Progress) {
		if progress == nil {
			return
		}
		select {
		case progress <- p:
		case <-ctx.Done():
		}
	}

	report(Progress{Phase: "scanning"})
	files := discoverFiles(dirs)

	res, err := im.importFiles(ctx, files, report)
	if err != nil {
		return res, err
	}
	report(Progress{Phase: "done", Current: len(files), Total: len(files), Result: &res})
	return res, nil
}

// ImportFiles adds the given image files, skipping known paths.
func (im *Importer) ImportFiles(ctx context.Context, paths []string) (Result, error) {
	return im.importFiles(ctx, paths, func(Progress) {})
}

func (im *Importer) importFiles(ctx context.Context, files []string, report func(Progress)) (Result, error) {
	var res Result

	known, err := im.repo.KnownPaths(ctx)
	if err != nil {
		return res, fmt.Errorf("read known photos: %w", err)
	}
	todo := make([]string, 0, len(files))
	for _, f := range files {
		if known[f] {
			res.Skipped++
			continue
		}
		todo = append(todo, f)
	}

	photos, failed := readFiles(ctx, todo, report)
	res.Failed = failed
	if err := ctx.Err(); err != nil {
		return res, err
	}

	report(Progress{Phase: "saving", Current: len(photos), Total: len(photos)})
	added, err := im.repo.Add(ctx, photos...)
	if err != nil {
		return res, fmt.Errorf("save photos: %w", err)
	}
	res.Added = added
	for _, it := range added {
		res.Bytes += it.Size
	}
	return res, nil
}

// readFiles inspects files in parallel. Results keep the input order.
func readFiles(ctx context.Context, files []string, report func(Progress)) ([]store.NewPhoto, []Failure) {
	type result struct {
		idx   int
		photo store.NewPhoto
		err   error
	}

	workCh := make(chan int)
	resultCh := make(chan result)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			for i := range workCh {
				p, err := Inspect(files[i])
				resultCh <- result{idx: i, photo: p, err: err}
			}
		})
	}

	go func() {
		defer close(workCh)
		for i := range files {
			select {
			case workCh <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	photos := make([]*store.NewPhoto, len(files))
	var failed []Failure
	done := 0
	for r := range resultCh {
		done++
		if r.err != nil {
			failed = append(failed, Failure{Path: files[r.idx], Err: r.err})
		} else {
			photos[r.idx] = &r.photo
		}
		report(Progress{Phase: "reading", Current: done, Total: len(files), CurrentFile: files[r.idx]})
	}

	out := make([]store.NewPhoto, 0, len(files))
	for _, p := range photos {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, failed
}

// Inspect reads an image header and derives the photo's metadata from its
// path: the title from the file name, the category from the parent directory.
func Inspect(path string) (store.NewPhoto, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.NewPhoto{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return store.NewPhoto{}, err
	}
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return store.NewPhoto{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return store.NewPhoto{}, errors.New("image has no pixels")
	}

	return store.NewPhoto{
		Title:     TitleFor(path),
		Category:  CategoryFor(path),
		Path:      path,
		FileName:  filepath.Base(path),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// CategoryFor maps the parent directory name onto a gallery category.
func CategoryFor(path string) string {
	return photo.NormalizeCategory(filepath.Base(filepath.Dir(path)))
}

// TitleFor turns "golden_hour-2.jpg" into "Golden hour 2".
func TitleFor(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.Join(strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
	}), " ")
	if name == "" {
		return filepath.Base(path)
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
