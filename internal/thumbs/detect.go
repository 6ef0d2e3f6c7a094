package thumbs

import (
	"os"
	"strings"
)

// Protocol names accepted by Detect.
const (
	ProtocolAuto      = "auto"
	ProtocolHalfBlock = "halfblock"
	ProtocolKitty     = "kitty"
	ProtocolSixel     = "sixel"
)

const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// Detect returns the protocol named by setting, or the best protocol for the
// current terminal when setting is empty or "auto". Unknown names fall back to
// half blocks.
func Detect(setting string) Protocol {
	switch strings.ToLower(strings.TrimSpace(setting)) {
	case ProtocolKitty:
		return KittyProtocol{}
	case ProtocolSixel:
		return NewSixelProtocol()
	case ProtocolHalfBlock, "blocks", "none":
		return NewHalfBlockProtocol()
	case "", ProtocolAuto:
	default:
		return NewHalfBlockProtocol()
	}

	if IsKittySupported() {
		return KittyProtocol{}
	}
	if IsSixelSupported() {
		return NewSixelProtocol()
	}
	return NewHalfBlockProtocol()
}

// IsKittySupported checks the environment of known Kitty-capable terminals.
func IsKittySupported() bool {
	// Contour inherits the parent terminal's variables but has no Kitty support.
	if os.Getenv("CONTOUR_PROFILE") != "" {
		return false
	}
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if os.Getenv("TERM_PROGRAM") == "WezTerm" {
		return true
	}
	if os.Getenv("GHOSTTY_RESOURCES_DIR") != "" {
		return true
	}
	if version := os.Getenv("KONSOLE_VERSION"); len(version) >= 4 && version[:4] >= "2204" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "kitty")
}

// IsSixelSupported checks the environment of known Sixel-capable terminals.
func IsSixelSupported() bool {
	term := os.Getenv("TERM")
	switch os.Getenv("TERM_PROGRAM") {
	case "vscode", "mintty", "iTerm.app", "contour":
		return true
	}
	return term == "foot" || term == "foot-extra" || os.Getenv("CONTOUR_PROFILE") != ""
}

// CellSize returns the pixel size of one terminal cell. Positive overrides
// from the configuration win over the size reported by the terminal.
func CellSize(overrideW, overrideH int) (w, h int) {
	w, h = getCellSize()
	if overrideW > 0 {
		w = overrideW
	}
	if overrideH > 0 {
		h = overrideH
	}
	return w, h
}
