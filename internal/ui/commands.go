package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg drives the event drain. The poller pushes into the event channel
// at its own pace; the UI pulls everything available on each tick.
type tickMsg time.Time

const tickInterval = 100 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
