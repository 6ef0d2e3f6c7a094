// Package store is the photo repository behind the gallery and the dashboard.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/folio/internal/db"
	"github.com/llehouerou/folio/internal/photo"
)

// ErrNotFound is returned when no photo has the requested ID.
var ErrNotFound = errors.New("photo not found")

const photoColumns = `id, title, description, category, path, file_name, featured, hidden,
	width, height, size, created_at`

// NewPhoto is a photo about to be added.
type NewPhoto struct {
	Title       string
	Description string
	Category    string
	Path        string
	FileName    string
	Featured    bool
	Hidden      bool
	Width       int
	Height      int
	Size        int64
	CreatedAt   time.Time // zero means now
}

// Store reads and writes photos. Every successful mutation signals Changes.
type Store struct {
	conn *db.DB
	now  func() time.Time

	mu      sync.Mutex
	subs    []chan struct{}
	changes <-chan struct{}
}

// New prepares the photos schema on conn.
func New(conn *db.DB) (*Store, error) {
	if err := initSchema(conn); err != nil {
		return nil, fmt.Errorf("init photo schema: %w", err)
	}
	s := &Store{conn: conn, now: time.Now}
	s.changes = s.Subscribe()
	return s, nil
}

// Items returns the gallery list: visible photos, featured first, newest first.
func (s *Store) Items(ctx context.Context) ([]photo.Item, error) {
	return s.List(ctx)
}

// Changes signals after every mutation. Signals coalesce while unread.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Subscribe returns an additional change channel, for consumers other than
// the gallery.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// notify sends a non-blocking signal to every subscriber.
func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// List returns visible photos ordered featured first, then newest first.
func (s *Store) List(ctx context.Context) ([]photo.Item, error) {
	return s.query(ctx, `SELECT `+photoColumns+` FROM photos WHERE hidden = 0
		ORDER BY featured DESC, created_at DESC, id`)
}

// ListAll returns every photo including hidden ones, newest first.
func (s *Store) ListAll(ctx context.Context) ([]photo.Item, error) {
	return s.query(ctx, `SELECT `+photoColumns+` FROM photos ORDER BY created_at DESC, id`)
}

// Get returns one photo.
func (s *Store) Get(ctx context.Context, id string) (photo.Item, error) {
	row := s.conn.QueryRowContext(ctx, s.conn.Rebind(`SELECT `+photoColumns+` FROM photos WHERE id = ?`), id)
	it, err := scanPhoto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return photo.Item{}, ErrNotFound
	}
	return it, err
}

// KnownPaths returns the set of file paths already stored.
func (s *Store) KnownPaths(ctx context.Context) (map[string]bool, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT path FROM photos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		known[p] = true
	}
	return known, rows.Err()
}

// Add inserts photos in one transaction and returns them with their IDs.
// Paths already stored are skipped.
func (s *Store) Add(ctx context.Context, photos ...NewPhoto) ([]photo.Item, error) {
	if len(photos) == 0 {
		return nil, nil
	}
	now := s.now()
	added := make([]photo.Item, 0, len(photos))

	insert := s.conn.Rebind(`
		INSERT INTO photos (` + photoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (path) DO NOTHING
	`)
	err := db.WithTx(ctx, s.conn.DB, func(tx *sql.Tx) error {
		for _, p := range photos {
			it := photo.Item{
				ID:          uuid.NewString(),
				Title:       strings.TrimSpace(p.Title),
				Description: p.Description,
				Category:    photo.NormalizeCategory(p.Category),
				Path:        p.Path,
				FileName:    p.FileName,
				Featured:    p.Featured,
				Hidden:      p.Hidden,
				Width:       p.Width,
				Height:      p.Height,
				Size:        p.Size,
				CreatedAt:   p.CreatedAt,
			}
			if it.CreatedAt.IsZero() {
				it.CreatedAt = now
			}
			res, err := tx.ExecContext(ctx, insert,
				it.ID, it.Title, it.Description, it.Category, it.Path, it.FileName,
				db.BoolToInt(it.Featured), db.BoolToInt(it.Hidden),
				it.Width, it.Height, it.Size, it.CreatedAt.UnixNano())
			if err != nil {
				return fmt.Errorf("insert %s: %w", p.Path, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				continue
			}
			added = append(added, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		s.notify()
	}
	return added, nil
}

// UpdateDetails changes title and description.
func (s *Store) UpdateDetails(ctx context.Context, id, title, description string) error {
	return s.update(ctx, `UPDATE photos SET title = ?, description = ? WHERE id = ?`,
		strings.TrimSpace(title), description, id)
}

// SetHidden hides a photo from the gallery or shows it again.
func (s *Store) SetHidden(ctx context.Context, id string, hidden bool) error {
	return s.update(ctx, `UPDATE photos SET hidden = ? WHERE id = ?`, db.BoolToInt(hidden), id)
}

// SetFeatured moves a photo to or out of the featured group.
func (s *Store) SetFeatured(ctx context.Context, id string, featured bool) error {
	return s.update(ctx, `UPDATE photos SET featured = ? WHERE id = ?`, db.BoolToInt(featured), id)
}

// SetCategory changes a photo's category. Unknown names map to the default.
func (s *Store) SetCategory(ctx context.Context, id, category string) error {
	return s.update(ctx, `UPDATE photos SET category = ? WHERE id = ?`, photo.NormalizeCategory(category), id)
}

// Delete removes a photo row. The image file is left alone.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.update(ctx, `DELETE FROM photos WHERE id = ?`, id)
}

// DeleteByPath removes the row of a file that disappeared from disk.
func (s *Store) DeleteByPath(ctx context.Context, path string) error {
	return s.update(ctx, `DELETE FROM photos WHERE path = ?`, path)
}

// Count returns the number of stored photos and how many are hidden.
func (s *Store) Count(ctx context.Context) (total, hidden int, err error) {
	var h sql.NullInt64
	err = s.conn.QueryRowContext(ctx, `SELECT COUNT(*), SUM(hidden) FROM photos`).Scan(&total, &h)
	return total, int(db.NullInt64Value(h)), err
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.conn.ExecContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notify()
	return nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]photo.Item, error) {
	rows, err := s.conn.QueryContext(ctx, s.conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []photo.Item
	for rows.Next() {
		it, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPhoto(row scanner) (photo.Item, error) {
	var it photo.Item
	var fileName sql.NullString
	var featured, hidden int
	var width, height, size sql.NullInt64
	var created int64
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.Category, &it.Path, &fileName,
		&featured, &hidden, &width, &height, &size, &created)
	if err != nil {
		return photo.Item{}, err
	}
	it.FileName = db.NullStringValue(fileName)
	it.Featured = featured != 0
	it.Hidden = hidden != 0
	it.Width = int(db.NullInt64Value(width))
	it.Height = int(db.NullInt64Value(height))
	it.Size = db.NullInt64Value(size)
	it.CreatedAt = time.Unix(0, created)
	return it, nil
}

var _ photo.Source = (*Store)(nil)
