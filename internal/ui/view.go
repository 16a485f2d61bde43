package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Bold(true)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	stateStyles = map[string]lipgloss.Style{
		"running":    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		"exited":     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"dead":       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		"paused":     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		"restarting": lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
		"created":    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	}
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.mode {
	case ModeLogs:
		b.WriteString(m.renderLogs())
	case ModeDetail:
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.renderContainersTable(),
			m.renderContainerDetail(),
		))
	default:
		if m.tab == TabContainers {
			b.WriteString(m.renderContainersTable())
		} else {
			b.WriteString(lipgloss.JoinHorizontal(
				lipgloss.Top,
				m.renderNetworksTable(),
				m.renderNetworkDetail(),
			))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) renderTabs() string {
	var parts []string
	for _, t := range []Tab{TabContainers, TabNetworks} {
		if t == m.tab {
			parts = append(parts, activeTabStyle.Render(t.Title()))
		} else {
			parts = append(parts, tabStyle.Render(t.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderContainersTable() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-24s %-22s %-24s %-18s %-12s",
		"NAME", "STATUS", "IMAGE", "PORTS", "ID")))
	b.WriteString("\n")

	if len(m.containers) == 0 {
		b.WriteString(labelStyle.Render("  no containers"))
		b.WriteString("\n")
		return b.String()
	}

	for i, c := range m.containers {
		stateStyle, ok := stateStyles[c.State]
		if !ok {
			stateStyle = labelStyle
		}

		row := fmt.Sprintf("  %-24s %-22s %-24s %-18s %-12s",
			truncate(c.Name, 24),
			truncate(c.Status, 22),
			truncate(c.Image, 24),
			truncate(strings.Join(c.Ports, ","), 18),
			c.ShortID,
		)

		if i == m.containerCursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(stateStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderNetworksTable() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-24s %-12s %-10s %-12s %-12s",
		"NAME", "DRIVER", "SCOPE", "CONTAINERS", "ID")))
	b.WriteString("\n")

	if len(m.networks) == 0 {
		b.WriteString(labelStyle.Render("  no networks"))
		b.WriteString("\n")
		return b.String()
	}

	for i, n := range m.networks {
		row := fmt.Sprintf("  %-24s %-12s %-10s %-12d %-12s",
			truncate(n.Name, 24),
			n.Driver,
			n.Scope,
			len(n.Containers),
			n.ShortID,
		)

		if i == m.networkCursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderContainerDetail() string {
	c := m.selectedContainer()
	if c == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(c.Name))
	b.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("ID", c.ShortID)
	field("Image", c.Image)
	field("Image ID", truncate(strings.TrimPrefix(c.ImageID, "sha256:"), 12))
	field("Command", c.Command)
	field("State", c.State)
	field("Status", c.Status)
	field("Created", c.Created)
	field("Ports", strings.Join(c.Ports, ", "))
	field("Networks", strings.Join(c.Networks, ", "))

	if len(c.Mounts) > 0 {
		b.WriteString(labelStyle.Render("Mounts"))
		b.WriteString("\n")
		for _, mount := range c.Mounts {
			b.WriteString("  " + mount + "\n")
		}
	}

	if len(c.Labels) > 0 {
		b.WriteString(labelStyle.Render("Labels"))
		b.WriteString("\n")
		keys := make([]string, 0, len(c.Labels))
		for k := range c.Labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s=%s\n", k, c.Labels[k]))
		}
	}

	return paneStyle.Render(b.String())
}

func (m Model) renderNetworkDetail() string {
	n := m.selectedNetwork()
	if n == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render(n.Name))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Connected"))
	b.WriteString("\n")

	if len(n.Containers) == 0 {
		b.WriteString("  none\n")
	} else {
		for _, name := range n.Containers {
			b.WriteString("  " + name + "\n")
		}
	}

	return paneStyle.Render(b.String())
}

func (m Model) renderLogs() string {
	var b strings.Builder

	title := "Logs"
	if c := m.selectedContainer(); c != nil {
		title = "Logs: " + c.Name
	}
	if m.logStreaming {
		title += " (streaming)"
	} else {
		title += " (ended)"
	}
	b.WriteString(paneTitleStyle.Render(title))
	b.WriteString("\n")

	lines := m.logs.Lines()
	page := m.logPageHeight()
	start := m.logScroll
	if start > len(lines) {
		start = len(lines)
	}
	end := start + page
	if end > len(lines) {
		end = len(lines)
	}

	if len(lines) == 0 {
		b.WriteString(labelStyle.Render("waiting for output..."))
		b.WriteString("\n")
	}
	for _, line := range lines[start:end] {
		b.WriteString(truncate(line, maxInt(m.width-1, 20)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderStatusBar() string {
	var hints string
	switch m.mode {
	case ModeLogs:
		hints = "pgup/pgdn scroll · g top · G bottom · esc back"
	case ModeDetail:
		hints = "l logs · s start/stop · x kill · r remove · esc back"
	default:
		hints = "tab switch · enter details · l logs · s start/stop · x kill · r remove · q quit"
	}

	status := m.status
	if status != "" {
		status = statusOKStyle.Render(status) + "  "
	}

	return statusBarStyle.Render(status + labelStyle.Render(hints))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
