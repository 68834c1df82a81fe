//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// TestPlace is one row of a places fixture
type TestPlace struct {
	Name   string
	Rating float64
	Lat    float64
	Lon    float64
}

// WritePlacesFile writes a places TOML file into the workspace
func (tf *TUITestFramework) WritePlacesFile(name string, places ...TestPlace) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	for _, p := range places {
		fmt.Fprintf(&b, "[[places]]\nname = %q\nrating = %.1f\nlat = %f\nlon = %f\nopen_now = true\n\n",
			p.Name, p.Rating, p.Lat, p.Lon)
	}

	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteConfig writes .placegrip.toml into the workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	return os.WriteFile(filepath.Join(tf.workspace, ".placegrip.toml"), []byte(content), 0644)
}

// WaitForExit waits for the process to end after a quit key
func (tf *TUITestFramework) WaitForExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app did not exit within %s", timeout)
	}
}
