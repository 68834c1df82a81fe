//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "placegrip_e2e"

// maxCapture bounds the output kept per run; older bytes are dropped
const maxCapture = 1 << 20

const (
	KeyEnter  = "\r"
	KeyCtrlC  = "\x03"
	KeyTab    = "\t"
	KeyDown   = "j"
	KeyQuit   = "q"
	KeyRaise  = "K"
	KeyFilter = "r"
	KeyHelp   = "?"
)

// escapes matches the terminal control sequences bubbletea and ov emit
var escapes = regexp.MustCompile(
	`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07]*\x07|\x1b[()][A-Za-z]|\x1b[=>]|\r`,
)

// TUITestFramework runs the binary in a pseudo terminal and records its output
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu     sync.Mutex
	output []byte
}

// NewTUITest creates a driver bound to t
func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// StartApp launches placegrip with args in a 120x40 pseudo terminal.
// The process runs inside the workspace so placegrip.log lands there.
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Dir = tf.workspace
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LANG=C.UTF-8",
		"HOME="+tf.workspace,
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = f
	go tf.capture()
	return nil
}

func (tf *TUITestFramework) capture() {
	buf := make([]byte, 8192)
	for {
		n, err := tf.pty.Read(buf)
		if n > 0 {
			tf.mu.Lock()
			tf.output = append(tf.output, buf[:n]...)
			if over := len(tf.output) - maxCapture; over > 0 {
				tf.output = tf.output[over:]
			}
			tf.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// SendKeys writes raw keystrokes to the terminal
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Quit() error      { return tf.SendKeys(KeyQuit) }
func (tf *TUITestFramework) Raise() error     { return tf.SendKeys(KeyRaise) }
func (tf *TUITestFramework) FocusPanel() error {
	return tf.SendKeys(KeyTab)
}
func (tf *TUITestFramework) Enter() error { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Down() error  { return tf.SendKeys(KeyDown) }

// Ready waits for the first load to be reported on the status line
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.OutputContainsPlain("Loaded", 5*time.Second)
}

// SeePlain waits up to three seconds for text in the normalised output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// WaitForStatusMessage waits for a status line message
func (tf *TUITestFramework) WaitForStatusMessage(message string, timeout time.Duration) bool {
	return tf.OutputContainsPlain(message, timeout)
}

// OutputContainsPlain polls the normalised output for text
func (tf *TUITestFramework) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if strings.Contains(tf.SnapshotPlain(), text) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// SnapshotPlain returns everything captured so far without control sequences
func (tf *TUITestFramework) SnapshotPlain() string {
	tf.mu.Lock()
	raw := string(tf.output)
	tf.mu.Unlock()
	return escapes.ReplaceAllString(raw, "")
}

// DumpTailOnFail saves the last n bytes of normalised output for debugging
func (tf *TUITestFramework) DumpTailOnFail(t *testing.T, name string, n int) {
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	p := filepath.Join(t.TempDir(), name+".txt")
	_ = os.WriteFile(p, []byte(s), 0644)
	t.Logf("Saved tail to %s", p)
}

// Cleanup closes the terminal, which hangs up the child, and reaps it
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
	}
}
