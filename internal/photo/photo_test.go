package photo

import (
	"testing"
)

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortForGallery_FeaturedFirstStable(t *testing.T) {
	items := []Item{
		{ID: "a"},
		{ID: "b", Featured: true},
		{ID: "c"},
		{ID: "d", Featured: true},
		{ID: "e"},
	}

	got := ids(SortForGallery(items))
	want := []string{"b", "d", "a", "c", "e"}
	if !equalIDs(got, want) {
		t.Errorf("SortForGallery = %v, want %v", got, want)
	}

	// Input is not modified
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Error("SortForGallery modified its input")
	}
}

func TestFilterCategory(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "Portrait"},
		{ID: "2", Category: "landscape"},
		{ID: "3", Category: "Landscape"},
	}

	tests := []struct {
		name     string
		category string
		want     []string
	}{
		{"all keeps everything", CategoryAll, []string{"1", "2", "3"}},
		{"empty keeps everything", "", []string{"1", "2", "3"}},
		{"case insensitive", "Landscape", []string{"2", "3"}},
		{"no match", "Street", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterCategory(items, tt.category))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestPrepare_DropsHiddenAndSorts(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "Street"},
		{ID: "2", Category: "Street", Hidden: true, Featured: true},
		{ID: "3", Category: "Street", Featured: true},
		{ID: "4", Category: "Travel"},
	}

	got := ids(Prepare(items, "Street"))
	want := []string{"3", "1"}
	if !equalIDs(got, want) {
		t.Errorf("Prepare = %v, want %v", got, want)
	}
}

func TestAspectHeight(t *testing.T) {
	it := Item{Width: 400, Height: 300}
	if got := it.AspectHeight(200); got != 150 {
		t.Errorf("AspectHeight(200) = %v, want 150", got)
	}
	if got := (Item{}).AspectHeight(200); got != 0 {
		t.Errorf("AspectHeight on unknown size = %v, want 0", got)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"portrait":  "Portrait",
		" TRAVEL ":  "Travel",
		"all":       DefaultCategory,
		"whatever":  DefaultCategory,
		"":          DefaultCategory,
		"Landscape": "Landscape",
	}
	for in, want := range tests {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNextCategory_Cycles(t *testing.T) {
	if got := NextCategory("Portrait"); got != "Landscape" {
		t.Errorf("NextCategory(Portrait) = %q, want Landscape", got)
	}
	if got := NextCategory("Other"); got != "Portrait" {
		t.Errorf("NextCategory(Other) = %q, want Portrait", got)
	}
	if got := NextCategory("unknown"); got != "Portrait" {
		t.Errorf("NextCategory(unknown) = %q, want Portrait", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := (Item{Title: "Dawn"}).DisplayTitle(); got != "Dawn" {
		t.Errorf("DisplayTitle = %q, want Dawn", got)
	}
	if got := (Item{Title: "  ", FileName: "img.jpg"}).DisplayTitle(); got != "img.jpg" {
		t.Errorf("DisplayTitle = %q, want img.jpg", got)
	}
	if got := (Item{Path: "/a/b/c.png"}).DisplayTitle(); got != "c.png" {
		t.Errorf("DisplayTitle = %q, want c.png", got)
	}
}

func TestIndexOf(t *testing.T) {
	items := []Item{{ID: "x"}, {ID: "y"}}
	if got := IndexOf(items, "y"); got != 1 {
		t.Errorf("IndexOf(y) = %d, want 1", got)
	}
	if got := IndexOf(items, "z"); got != -1 {
		t.Errorf("IndexOf(z) = %d, want -1", got)
	}
}
