// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionViewGallery   Action = "view_gallery"
	ActionViewDashboard Action = "view_dashboard"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionMoveLeft  Action = "move_left"
	ActionMoveRight Action = "move_right"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionSelect    Action = "select" // enter - open the photo

	// Gallery actions
	ActionNextCategory    Action = "next_category"
	ActionPrevCategory    Action = "prev_category"
	ActionPickCategory    Action = "pick_category" // 1..6, the key selects
	ActionSlidePrev       Action = "slide_prev"
	ActionSlideNext       Action = "slide_next"
	ActionToggleSlideshow Action = "toggle_slideshow"

	// Viewer actions
	ActionClose      Action = "close"
	ActionPrevious   Action = "previous"
	ActionNext       Action = "next"
	ActionZoomIn     Action = "zoom_in"
	ActionZoomOut    Action = "zoom_out"
	ActionZoomReset  Action = "zoom_reset"
	ActionCopyPath   Action = "copy_path"
	ActionOpenFile   Action = "open_file"
	ActionToggleInfo Action = "toggle_info"

	// Dashboard actions
	ActionToggleFeatured  Action = "toggle_featured"  // f
	ActionToggleHidden    Action = "toggle_hidden"    // h
	ActionEditTitle       Action = "edit_title"       // e
	ActionEditDescription Action = "edit_description" // E
	ActionCycleCategory   Action = "cycle_category"   // c
	ActionDelete          Action = "delete"           // d/delete
	ActionImport          Action = "import"           // i
	ActionRefresh         Action = "refresh"          // r
)

// Contexts group bindings by the view that handles them.
const (
	ContextGlobal    = "global"
	ContextGallery   = "gallery"
	ContextViewer    = "viewer"
	ContextDashboard = "dashboard"
)
