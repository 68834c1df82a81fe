//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startIn(t *testing.T, tf *TUITestFramework, args ...string) string {
	t.Helper()
	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.StartApp(append([]string{"-d", workspace}, args...)...), "Failed to start app")
	return workspace
}

func TestStartupShowsSampleResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startIn(t, tf)

	require.True(t, tf.Ready(), "Should finish the first load")
	require.True(t, tf.SeePlain("Restaurants in Dubai"), "Should show the search header")
	require.True(t, tf.SeePlain("Over 5 places"), "Should show the collapsed summary")

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}

func TestConfigFileCreation(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace := startIn(t, tf)
	require.True(t, tf.Ready(), "Should finish the first load")

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))

	content, err := os.ReadFile(filepath.Join(workspace, ".placegrip.toml"))
	require.NoError(t, err, "Config file should be created")
	require.Contains(t, string(content), "version = 1")
	require.Contains(t, string(content), "Restaurants")
	require.Contains(t, string(content), "mid_panel_ratio")
}

func TestExistingConfigIsRespected(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	initial := "version = 1\nquery = \"Cafes\"\nlocation_label = \"Lisbon\"\ntitle_noun = \"cafes\"\n"
	require.NoError(t, tf.WriteConfig(initial))
	require.NoError(t, tf.StartApp("-d", workspace))

	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("Cafes in Lisbon"))
	require.True(t, tf.SeePlain("Over 5 cafes"))

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))

	content, err := os.ReadFile(filepath.Join(workspace, ".placegrip.toml"))
	require.NoError(t, err)
	require.Equal(t, initial, string(content), "An existing config is never rewritten")
}

func TestPlacesFileRowSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.WritePlacesFile("places.toml",
		TestPlace{Name: "Alpha Grill", Rating: 4.2, Lat: 25.10, Lon: 55.10},
		TestPlace{Name: "Beta Bistro", Rating: 4.6, Lat: 25.30, Lon: 55.40},
	)
	require.NoError(t, err)
	require.NoError(t, tf.StartApp("-d", workspace, "-places", "places.toml"))

	require.True(t, tf.WaitForStatusMessage("Loaded 2 results", 5*time.Second))

	require.NoError(t, tf.Raise())
	require.True(t, tf.SeePlain("Beta Bistro"), "Mid panel lists the places")

	require.NoError(t, tf.FocusPanel())
	require.NoError(t, tf.Down())
	require.NoError(t, tf.Enter())
	require.True(t, tf.WaitForStatusMessage("Centered on Beta Bistro", 3*time.Second))

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}

func TestInvalidPlacesFileShowsError(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.WritePlacesFile("bad.toml", TestPlace{Name: "Nowhere", Rating: 7, Lat: 1, Lon: 1})
	require.NoError(t, err)
	require.NoError(t, tf.StartApp("-d", workspace, "-places", "bad.toml"))

	if !tf.WaitForStatusMessage("Could not load results", 5*time.Second) {
		tf.DumpTailOnFail(t, "invalid-places", 4096)
		t.Fatal("Should report the load failure")
	}
	require.True(t, tf.SeePlain("Waiting for results"))

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}

func TestRatingFilterPrompt(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startIn(t, tf)
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyFilter))
	require.True(t, tf.SeePlain("Minimum rating"))
	require.NoError(t, tf.SendKeys("4.5"))
	require.NoError(t, tf.Enter())

	require.True(t, tf.WaitForStatusMessage("Minimum rating set to", 3*time.Second))
	require.True(t, tf.SeePlain("[min"), "Header shows the active filter")

	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startIn(t, tf)
	require.True(t, tf.Ready())

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.OutputContainsPlain("placegrip Help", 3*time.Second), "Help opens in the pager")

	// q leaves the pager, the second q leaves the app
	require.NoError(t, tf.SendKeys(KeyQuit))
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, tf.Quit())
	require.NoError(t, tf.WaitForExit(3*time.Second))
}

func TestCtrlCExits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	startIn(t, tf, "-expansion", "full")
	require.True(t, tf.Ready())
	require.True(t, tf.SeePlain("full"), "Panel starts at the requested level")

	require.NoError(t, tf.SendCtrlC())
	require.NoError(t, tf.WaitForExit(2*time.Second))
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help flag should exit cleanly")

	output := string(out)
	require.True(t, strings.Contains(output, "-places"), "Help should list the places flag")
	require.True(t, strings.Contains(output, "-expansion"), "Help should list the expansion flag")
}
