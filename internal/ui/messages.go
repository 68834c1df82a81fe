package ui

import (
	"placegrip/internal/results"
)

// resultsMsg carries a finished load back to the UI goroutine
type resultsMsg struct {
	result results.Result
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	content string
	err     error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
