package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"

	"github.com/llehouerou/folio/internal/masonry"
	"github.com/llehouerou/folio/internal/paginate"
)

// Environment overrides, read after .env is loaded.
const (
	EnvLibrary       = "FOLIO_LIBRARY"        // colon separated list of directories
	EnvStoreDSN      = "FOLIO_STORE_DSN"      // postgres DSN or sqlite path
	EnvImageProtocol = "FOLIO_IMAGE_PROTOCOL" // "halfblock", "kitty", "sixel"
	EnvLog           = "FOLIO_LOG"            // log file path
)

type Config struct {
	Library       LibraryConfig   `koanf:"library"`
	Store         StoreConfig     `koanf:"store"`
	Gallery       GalleryConfig   `koanf:"gallery"`
	Viewer        ViewerConfig    `koanf:"viewer"`
	Slideshow     SlideshowConfig `koanf:"slideshow"`
	ImageProtocol string          `koanf:"image_protocol"` // "", "halfblock", "kitty", "sixel"
	Notifications bool            `koanf:"notifications"`  // desktop notifications for dashboard actions
	LogFile       string          `koanf:"log_file"`
}

// LibraryConfig lists the photo directories.
type LibraryConfig struct {
	Paths []string `koanf:"paths"`
	Watch bool     `koanf:"watch"` // import files dropped into Paths while running
}

// StoreConfig selects the photo repository.
type StoreConfig struct {
	Driver string `koanf:"driver"` // "sqlite" (default) or "postgres"
	DSN    string `koanf:"dsn"`    // sqlite file path or postgres connection string
}

// GalleryConfig holds grid and infinite scroll settings.
type GalleryConfig struct {
	PageSize        int                  `koanf:"page_size"`
	ScrollThreshold float64              `koanf:"scroll_threshold"` // px from the bottom
	RevealDelayMS   int                  `koanf:"reveal_delay_ms"`
	ThrottleMS      int                  `koanf:"throttle_ms"`
	Gap             float64              `koanf:"gap"`
	EstimatedHeight float64              `koanf:"estimated_height"`
	CellWidth       int                  `koanf:"cell_width"`  // px, 0 = detect
	CellHeight      int                  `koanf:"cell_height"` // px, 0 = detect
	Breakpoints     []masonry.Breakpoint `koanf:"breakpoints"`
	MaxColumns      int                  `koanf:"max_columns"` // above the widest breakpoint
}

// ViewerConfig holds lightbox settings.
type ViewerConfig struct {
	DoubleClickMS int  `koanf:"double_click_ms"`
	ClampPan      bool `koanf:"clamp_pan"`
	StrictStart   bool `koanf:"strict_start"`
}

// SlideshowConfig holds hero slideshow settings.
type SlideshowConfig struct {
	IntervalSeconds int   `koanf:"interval_seconds"`
	Enabled         *bool `koanf:"enabled"` // default: true
}

func Load() (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles reads the given TOML files in order (last wins), skipping missing
// ones, then applies environment overrides.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	for i, p := range cfg.Library.Paths {
		cfg.Library.Paths[i] = expandPath(p)
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	if cfg.Store.Driver != "postgres" {
		cfg.Store.DSN = expandPath(cfg.Store.DSN)
	}
	cfg.LogFile = expandPath(cfg.LogFile)

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLibrary); v != "" {
		c.Library.Paths = filepath.SplitList(v)
	}
	if v := os.Getenv(EnvStoreDSN); v != "" {
		c.Store.DSN = v
		if strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://") {
			c.Store.Driver = "postgres"
		}
	}
	if v := os.Getenv(EnvImageProtocol); v != "" {
		c.ImageProtocol = v
	}
	if v := os.Getenv(EnvLog); v != "" {
		c.LogFile = v
	}
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/folio/config.toml
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "folio", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path == "" {
		return ""
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return filepath.Clean(expanded)
}

// HasPostgres returns true if the store should use Postgres.
func (c *Config) HasPostgres() bool {
	return c.Store.Driver == "postgres" && c.Store.DSN != ""
}

// GetGalleryConfig returns the gallery configuration with defaults applied.
func (c *Config) GetGalleryConfig() GalleryConfig {
	cfg := c.Gallery

	if cfg.PageSize <= 0 {
		cfg.PageSize = paginate.DefaultPageSize
	}
	if cfg.ScrollThreshold <= 0 {
		cfg.ScrollThreshold = paginate.DefaultThreshold
	}
	if cfg.RevealDelayMS <= 0 {
		cfg.RevealDelayMS = int(paginate.DefaultRevealDelay / time.Millisecond)
	}
	if cfg.ThrottleMS <= 0 {
		cfg.ThrottleMS = int(paginate.DefaultThrottleInterval / time.Millisecond)
	}
	if cfg.Gap <= 0 {
		cfg.Gap = masonry.DefaultGap
	}
	if cfg.EstimatedHeight <= 0 {
		cfg.EstimatedHeight = masonry.DefaultEstimatedHeight
	}
	if len(cfg.Breakpoints) == 0 {
		cfg.Breakpoints = masonry.DefaultBreakpoints().Steps
	}
	if cfg.MaxColumns <= 0 {
		cfg.MaxColumns = masonry.DefaultBreakpoints().Default
	}

	return cfg
}

// BreakpointSet converts the configured breakpoints for the balancer.
func (g GalleryConfig) BreakpointSet() masonry.Breakpoints {
	return masonry.Breakpoints{Steps: g.Breakpoints, Default: g.MaxColumns}
}

func (g GalleryConfig) RevealDelay() time.Duration {
	return time.Duration(g.RevealDelayMS) * time.Millisecond
}

func (g GalleryConfig) ThrottleInterval() time.Duration {
	return time.Duration(g.ThrottleMS) * time.Millisecond
}

// GetViewerConfig returns the viewer configuration with defaults applied.
func (c *Config) GetViewerConfig() ViewerConfig {
	cfg := c.Viewer
	if cfg.DoubleClickMS <= 0 {
		cfg.DoubleClickMS = 400
	}
	return cfg
}

func (v ViewerConfig) DoubleClickWindow() time.Duration {
	return time.Duration(v.DoubleClickMS) * time.Millisecond
}

// GetSlideshowConfig returns the slideshow configuration with defaults applied.
func (c *Config) GetSlideshowConfig() SlideshowConfig {
	cfg := c.Slideshow
	if cfg.IntervalSeconds <= 0 {
		cfg.IntervalSeconds = 4
	}
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	return cfg
}

func (s SlideshowConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// String renders the store target for status lines, hiding credentials.
func (s StoreConfig) String() string {
	if s.Driver != "postgres" {
		if s.DSN == "" {
			return "sqlite (default)"
		}
		return "sqlite " + s.DSN
	}
	if i := strings.LastIndex(s.DSN, "@"); i >= 0 {
		return "postgres " + s.DSN[i+1:]
	}
	return "postgres"
}
