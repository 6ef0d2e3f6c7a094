//go:build unix

// Package stderr redirects file descriptor 2 into a channel while the TUI
// owns the terminal. Child processes such as the system image viewer and
// library warnings write there directly and would otherwise tear the layout.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Messages receives captured lines. Lines are dropped when nobody reads.
var Messages = make(chan string, 100)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
)

// Start redirects fd 2 to a pipe. The program keeps working without capture
// when Start fails.
func Start() error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr, pipeRead, pipeWrite = orig, r, w
	done = make(chan struct{})
	go forward(r, done)
	return nil
}

func forward(r *os.File, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case Messages <- line:
		default:
		}
	}
}

// Stop restores fd 2. Lines still in the pipe are forwarded before it returns.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	origStderr, pipeRead, pipeWrite = -1, nil, nil
}
