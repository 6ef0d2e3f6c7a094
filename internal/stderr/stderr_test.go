//go:build unix

package stderr

import (
	"os"
	"testing"
	"time"
)

func TestCaptureForwardsLines(t *testing.T) {
	if err := Start(); err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}
	// a second Start is a no-op
	if err := Start(); err != nil {
		t.Fatalf("second Start() error: %v", err)
	}

	_, _ = os.Stderr.WriteString("xdg-open: no method available\n\n")
	Stop()

	select {
	case line := <-Messages:
		if line != "xdg-open: no method available" {
			t.Errorf("captured %q", line)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no line captured")
	}

	select {
	case line := <-Messages:
		t.Errorf("blank lines should be skipped, got %q", line)
	default:
	}

	// Stop without Start is harmless
	Stop()
}
