package ui

import (
	"time"
)

// frameMsg advances the running animation by one frame
type frameMsg time.Time

// journalPagerMsg contains the result of showing the event journal in a pager
type journalPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status message if it is still the one with seq
type clearStatusMsg struct {
	seq int
}
