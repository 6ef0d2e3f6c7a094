package thumbs

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const (
	cacheMaxAge   = 30 * 24 * time.Hour
	pruneInterval = 24 * time.Hour
)

// Cache stores scaled images as PNG files on disk.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	dir        string
	lastPruned time.Time
}

// DefaultCacheDir returns the thumbnail directory under the XDG cache home.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "folio", "thumbs")
}

// NewCache creates the cache directory. An empty dir selects DefaultCacheDir.
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		dir = DefaultCacheDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail cache: %w", err)
	}

	c := &Cache{dir: dir}
	go c.prune(time.Now())
	return c, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// cacheKey identifies an image file version scaled to a pixel box.
func cacheKey(path string, modTime time.Time, width, height int) string {
	data := fmt.Sprintf("%s:%d:%d:%d", path, modTime.UnixNano(), width, height)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}

// Get returns the cached PNG data for key, or nil.
func (c *Cache) Get(key string) []byte {
	if c == nil {
		return nil
	}
	path := filepath.Join(c.dir, key+".png")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	// keep frequently used entries out of the pruning window
	now := time.Now()
	_ = os.Chtimes(path, now, now)
	return data
}

// Put stores PNG data under key.
func (c *Cache) Put(key string, data []byte) error {
	if c == nil {
		return nil
	}
	return os.WriteFile(filepath.Join(c.dir, key+".png"), data, 0o600)
}

// prune removes entries not used for cacheMaxAge.
func (c *Cache) prune(now time.Time) int {
	if now.Sub(c.lastPruned) < pruneInterval {
		return 0
	}
	c.lastPruned = now

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0
	}
	cutoff := now.Add(-cacheMaxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(c.dir, entry.Name())) == nil {
				removed++
			}
		}
	}
	return removed
}
