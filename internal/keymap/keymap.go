package keymap

// Binding describes a key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "gallery", "viewer", "dashboard"
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},
	{ActionViewGallery, []string{"f1"}, "Gallery", ContextGlobal},
	{ActionViewDashboard, []string{"f2"}, "Dashboard", ContextGlobal},

	// Gallery
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextGallery},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextGallery},
	{ActionMoveLeft, []string{"h", "left"}, "Previous column", ContextGallery},
	{ActionMoveRight, []string{"l", "right"}, "Next column", ContextGallery},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", ContextGallery},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", ContextGallery},
	{ActionJumpStart, []string{"g", "home"}, "Top", ContextGallery},
	{ActionJumpEnd, []string{"G", "end"}, "Bottom", ContextGallery},
	{ActionSelect, []string{"enter"}, "Open photo", ContextGallery},
	{ActionNextCategory, []string{"tab"}, "Next category", ContextGallery},
	{ActionPrevCategory, []string{"shift+tab"}, "Previous category", ContextGallery},
	{ActionPickCategory, []string{"1", "2", "3", "4", "5", "6"}, "Pick category", ContextGallery},
	{ActionSlidePrev, []string{"["}, "Previous slide", ContextGallery},
	{ActionSlideNext, []string{"]"}, "Next slide", ContextGallery},
	{ActionToggleSlideshow, []string{" ", "space"}, "Pause/resume slideshow", ContextGallery},

	// Viewer
	{ActionClose, []string{"esc"}, "Close", ContextViewer},
	{ActionPrevious, []string{"left", "h"}, "Previous photo", ContextViewer},
	{ActionNext, []string{"right", "l"}, "Next photo", ContextViewer},
	{ActionZoomIn, []string{"+", "="}, "Zoom in", ContextViewer},
	{ActionZoomOut, []string{"-"}, "Zoom out", ContextViewer},
	{ActionZoomReset, []string{"0"}, "Reset zoom", ContextViewer},
	{ActionCopyPath, []string{"y"}, "Copy file path", ContextViewer},
	{ActionOpenFile, []string{"o"}, "Open in system viewer", ContextViewer},
	{ActionToggleInfo, []string{"i"}, "Toggle details", ContextViewer},

	// Dashboard
	{ActionMoveUp, []string{"k", "up"}, "Move up", ContextDashboard},
	{ActionMoveDown, []string{"j", "down"}, "Move down", ContextDashboard},
	{ActionJumpStart, []string{"g", "home"}, "First photo", ContextDashboard},
	{ActionJumpEnd, []string{"G", "end"}, "Last photo", ContextDashboard},
	{ActionToggleFeatured, []string{"f"}, "Toggle featured", ContextDashboard},
	{ActionToggleHidden, []string{"h"}, "Toggle hidden", ContextDashboard},
	{ActionEditTitle, []string{"e"}, "Edit title", ContextDashboard},
	{ActionEditDescription, []string{"E"}, "Edit description", ContextDashboard},
	{ActionCycleCategory, []string{"c"}, "Cycle category", ContextDashboard},
	{ActionDelete, []string{"d", "delete"}, "Delete photo", ContextDashboard},
	{ActionImport, []string{"i"}, "Import directory", ContextDashboard},
	{ActionRefresh, []string{"r"}, "Reload", ContextDashboard},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContext returns a resolver for a view: the global bindings plus the
// view's own, which win on conflicts.
func ForContext(context string) *Resolver {
	bindings := ByContext(ContextGlobal)
	if context != ContextGlobal {
		bindings = append(bindings, ByContext(context)...)
	}
	return NewResolver(bindings)
}
