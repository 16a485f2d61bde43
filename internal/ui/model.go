// Package ui implements the bubbletea dashboard: tabbed tables for
// containers and networks, a detail pane, and a live log view. All runtime
// data arrives through the poller's event channel; all commands leave
// through the action channel. The UI never performs runtime I/O.
package ui

import (
	"github.com/rs/zerolog"

	"dockmon/internal/config"
	"dockmon/internal/poller"
	"dockmon/internal/types"
)

// Tab selects which resource list is displayed.
type Tab int

const (
	TabContainers Tab = iota
	TabNetworks
)

// Next cycles to the following tab.
func (t Tab) Next() Tab {
	if t == TabContainers {
		return TabNetworks
	}
	return TabContainers
}

func (t Tab) Title() string {
	if t == TabContainers {
		return "Containers"
	}
	return "Networks"
}

// Mode governs how input is interpreted. Detail and Logs are only reachable
// from a container selection on the Containers tab.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDetail
	ModeLogs
)

// Model is the full application state. It is mutated only from Update,
// single-threaded inside the bubbletea loop.
type Model struct {
	actions chan<- poller.Action
	events  <-chan poller.Event
	keys    keyMap
	logger  zerolog.Logger

	tab  Tab
	mode Mode

	containers      []types.Container
	containerCursor int // -1 when nothing is selected
	networks        []types.Network
	networkCursor   int

	logs           *LogBuffer
	logScroll      int
	logStreaming   bool
	logContainerID string // identifies the stream whose lines are current

	status string
	width  int
	height int
}

// New builds the initial model: empty lists, no selection, Normal mode,
// Containers tab.
func New(cfg *config.Config, actions chan<- poller.Action, events <-chan poller.Event, logger zerolog.Logger) Model {
	return Model{
		actions:         actions,
		events:          events,
		keys:            defaultKeyMap(),
		logger:          logger,
		tab:             TabContainers,
		mode:            ModeNormal,
		containerCursor: -1,
		networkCursor:   -1,
		logs:            NewLogBuffer(cfg.Logs.BufferCap),
	}
}

// selectedContainer returns the container under the cursor, or nil.
func (m *Model) selectedContainer() *types.Container {
	if m.containerCursor < 0 || m.containerCursor >= len(m.containers) {
		return nil
	}
	return &m.containers[m.containerCursor]
}

func (m *Model) selectedNetwork() *types.Network {
	if m.networkCursor < 0 || m.networkCursor >= len(m.networks) {
		return nil
	}
	return &m.networks[m.networkCursor]
}

// listLen is the length of the list the active tab displays.
func (m *Model) listLen() int {
	if m.tab == TabContainers {
		return len(m.containers)
	}
	return len(m.networks)
}

func (m *Model) cursor() int {
	if m.tab == TabContainers {
		return m.containerCursor
	}
	return m.networkCursor
}

func (m *Model) setCursor(i int) {
	if m.tab == TabContainers {
		m.containerCursor = i
	} else {
		m.networkCursor = i
	}
}

// nextItem moves the cursor down with wraparound.
func (m *Model) nextItem() {
	n := m.listLen()
	if n == 0 {
		return
	}
	m.setCursor((m.cursor() + 1) % n)
}

// prevItem moves the cursor up with wraparound.
func (m *Model) prevItem() {
	n := m.listLen()
	if n == 0 {
		return
	}
	c := m.cursor()
	if c <= 0 {
		m.setCursor(n - 1)
	} else {
		m.setCursor(c - 1)
	}
}

// logPageHeight is the number of log lines one page holds, derived from the
// current terminal height minus the surrounding chrome.
func (m *Model) logPageHeight() int {
	h := m.height - 6
	if h < 1 {
		return 1
	}
	return h
}
