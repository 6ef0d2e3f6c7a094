// Package photo defines the canonical gallery item and the contract of the
// photo source the gallery consumes.
package photo

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// CategoryAll is the pseudo-category that matches every photo.
const CategoryAll = "all"

// Category is a selectable gallery filter.
type Category struct {
	ID   string
	Name string
}

// Categories lists the gallery filters in display order.
var Categories = []Category{
	{CategoryAll, "All"},
	{"Portrait", "Portrait"},
	{"Landscape", "Landscape"},
	{"Street", "Street"},
	{"Travel", "Travel"},
	{"Other", "Other"},
}

// DefaultCategory is assigned when nothing better is known.
const DefaultCategory = "Other"

// Item is one gallery photo.
type Item struct {
	ID          string
	Title       string
	Description string
	Category    string
	Path        string // image reference: absolute path of the image file
	FileName    string
	Featured    bool
	Hidden      bool
	Width       int // natural pixel size, 0 if unknown
	Height      int
	Size        int64
	CreatedAt   time.Time
}

// Source supplies the ordered photo list and tells its consumers when the
// list changed.
type Source interface {
	Items(ctx context.Context) ([]Item, error)
	Changes() <-chan struct{}
}

// AspectHeight returns the height the image takes when rendered at the given
// width, keeping its aspect ratio. Returns 0 when the natural size is unknown.
func (it Item) AspectHeight(width float64) float64 {
	if it.Width <= 0 || it.Height <= 0 {
		return 0
	}
	return width * float64(it.Height) / float64(it.Width)
}

// DisplayTitle returns the title, falling back to the file name.
func (it Item) DisplayTitle() string {
	if strings.TrimSpace(it.Title) != "" {
		return it.Title
	}
	if it.FileName != "" {
		return it.FileName
	}
	return filepath.Base(it.Path)
}

// SortForGallery orders featured items first. The relative order of items
// with the same featured flag is preserved.
func SortForGallery(items []Item) []Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b Item) int {
		switch {
		case a.Featured == b.Featured:
			return 0
		case a.Featured:
			return -1
		default:
			return 1
		}
	})
	return out
}

// Visible drops hidden items.
func Visible(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Hidden {
			out = append(out, it)
		}
	}
	return out
}

// FilterCategory keeps the items of one category. CategoryAll and the empty
// string keep everything. Matching ignores case.
func FilterCategory(items []Item, category string) []Item {
	if category == "" || category == CategoryAll {
		return slices.Clone(items)
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.EqualFold(it.Category, category) {
			out = append(out, it)
		}
	}
	return out
}

// Prepare turns a raw source list into the gallery sequence for a category.
func Prepare(items []Item, category string) []Item {
	return SortForGallery(FilterCategory(Visible(items), category))
}

// IndexOf returns the position of the item with the given ID, or -1.
func IndexOf(items []Item, id string) int {
	return slices.IndexFunc(items, func(it Item) bool { return it.ID == id })
}

// NormalizeCategory maps free text onto a known category, case-insensitively.
// Unknown values map to DefaultCategory.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if c.ID != CategoryAll && strings.EqualFold(c.ID, s) {
			return c.ID
		}
	}
	return DefaultCategory
}

// NextCategory returns the category after cur in Categories, skipping "all".
func NextCategory(cur string) string {
	choices := Categories[1:]
	i := slices.IndexFunc(choices, func(c Category) bool { return strings.EqualFold(c.ID, cur) })
	return choices[(i+1)%len(choices)].ID
}
