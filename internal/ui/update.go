package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dockmon/internal/poller"
	"dockmon/internal/types"
)

// followThreshold is how close to the bottom (in lines) the view has to be
// for new log lines to keep it pinned to the bottom.
const followThreshold = 50

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.drainEvents()
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// drainEvents applies every event currently queued, without ever blocking.
func (m *Model) drainEvents() {
	for {
		select {
		case ev, ok := <-m.events:
			if !ok {
				return
			}
			m.applyEvent(ev)
		default:
			return
		}
	}
}

func (m *Model) applyEvent(ev poller.Event) {
	switch ev := ev.(type) {
	case poller.ContainersUpdated:
		m.applyContainers(ev.Containers)

	case poller.NetworksUpdated:
		m.applyNetworks(ev.Networks)

	case poller.LogLine:
		// Lines from a superseded stream may still be queued; drop them.
		if ev.ContainerID != m.logContainerID {
			return
		}
		wasNearBottom := m.logs.Len()-(m.logScroll+m.logPageHeight()) <= followThreshold
		m.logs.Append(ev.Text)
		if wasNearBottom {
			m.logScrollToBottom()
		}

	case poller.LogStreamEnded:
		if ev.ContainerID == m.logContainerID {
			m.logStreaming = false
		}

	case poller.ActionResult:
		m.status = ev.Message
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeLogs:
		return m.handleLogsKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()

	case key.Matches(msg, m.keys.Down):
		m.nextItem()

	case key.Matches(msg, m.keys.Up):
		m.prevItem()

	case key.Matches(msg, m.keys.Open):
		if m.tab == TabContainers && m.selectedContainer() != nil {
			m.mode = ModeDetail
		}

	case key.Matches(msg, m.keys.Logs):
		m.openLogs()

	case key.Matches(msg, m.keys.StartStop):
		m.startOrStop()

	case key.Matches(msg, m.keys.Kill):
		if c := m.actionTarget(); c != nil {
			m.dispatch(poller.Kill{ID: c.ID})
		}

	case key.Matches(msg, m.keys.Remove):
		if c := m.actionTarget(); c != nil {
			m.dispatch(poller.Remove{ID: c.ID})
		}
	}

	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.mode = ModeNormal

	case key.Matches(msg, m.keys.NextTab):
		// Detail only exists on the Containers tab, so switching tabs
		// implies falling back to Normal first.
		m.mode = ModeNormal
		m.tab = m.tab.Next()

	case key.Matches(msg, m.keys.Logs):
		m.openLogs()

	case key.Matches(msg, m.keys.StartStop):
		m.startOrStop()

	case key.Matches(msg, m.keys.Kill):
		if c := m.actionTarget(); c != nil {
			m.dispatch(poller.Kill{ID: c.ID})
		}

	case key.Matches(msg, m.keys.Remove):
		if c := m.actionTarget(); c != nil {
			m.dispatch(poller.Remove{ID: c.ID})
		}
	}

	return m, nil
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.mode = ModeNormal
		m.logStreaming = false
		m.dispatch(poller.StopLogStream{})

	case key.Matches(msg, m.keys.PageDown):
		m.logPageDown()

	case key.Matches(msg, m.keys.PageUp):
		m.logPageUp()

	case key.Matches(msg, m.keys.Top):
		m.logScroll = 0

	case key.Matches(msg, m.keys.Bottom):
		m.logScrollToBottom()
	}

	return m, nil
}

// actionTarget is the container lifecycle commands act on. Actions require
// the Containers tab and a selection.
func (m *Model) actionTarget() *types.Container {
	if m.tab != TabContainers {
		return nil
	}
	return m.selectedContainer()
}

// openLogs enters Logs mode for the selected container: fresh buffer, scroll
// at the top, stream marked active, one StreamLogs dispatched.
func (m *Model) openLogs() {
	c := m.actionTarget()
	if c == nil {
		return
	}
	m.logs.Clear()
	m.logScroll = 0
	m.logStreaming = true
	m.logContainerID = c.ID
	m.mode = ModeLogs
	m.dispatch(poller.StreamLogs{ID: c.ID})
}

// startOrStop picks the operation from the container's current state.
func (m *Model) startOrStop() {
	c := m.actionTarget()
	if c == nil {
		return
	}
	if c.State == "running" {
		m.dispatch(poller.Stop{ID: c.ID})
	} else {
		m.dispatch(poller.Start{ID: c.ID})
	}
}

// dispatch sends an action without blocking. The channel is sized for any
// realistic input rate; if it is somehow full, dropping with a notice beats
// freezing the interface.
func (m *Model) dispatch(a poller.Action) {
	select {
	case m.actions <- a:
	default:
		m.status = "action dropped: queue full"
	}
}

// Scroll helpers, all clamped to [0, len-page].

func (m *Model) maxScroll() int {
	max := m.logs.Len() - m.logPageHeight()
	if max < 0 {
		return 0
	}
	return max
}

func (m *Model) logPageDown() {
	m.logScroll += m.logPageHeight()
	if m.logScroll > m.maxScroll() {
		m.logScroll = m.maxScroll()
	}
}

func (m *Model) logPageUp() {
	m.logScroll -= m.logPageHeight()
	if m.logScroll < 0 {
		m.logScroll = 0
	}
}

func (m *Model) logScrollToBottom() {
	m.logScroll = m.maxScroll()
}
