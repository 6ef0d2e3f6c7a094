// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Gallery operations
	OpGalleryLoad  Op = "load photos"
	OpImageLoad    Op = "load image"
	OpViewerOpen   Op = "open photo"
	OpCopyPath     Op = "copy path"
	OpOpenExternal Op = "open in system viewer"

	// Dashboard operations
	OpPhotoUpdate   Op = "update photo"
	OpPhotoFeature  Op = "update featured flag"
	OpPhotoHide     Op = "update visibility"
	OpPhotoCategory Op = "change category"
	OpPhotoDelete   Op = "delete photo"

	// Import operations
	OpImportDir   Op = "import directory"
	OpImportWatch Op = "watch library"

	// File operations
	OpFileDelete Op = "delete file"

	// State
	OpStateLoad Op = "restore session"
	OpStateSave Op = "save session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
