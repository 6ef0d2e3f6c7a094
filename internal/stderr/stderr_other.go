//go:build !unix

// Package stderr is a no-op on platforms without file descriptor
// redirection.
package stderr

// Messages never receives here.
var Messages = make(chan string)

// Start is a no-op here.
func Start() error {
	return nil
}

// Stop is a no-op here.
func Stop() {}
