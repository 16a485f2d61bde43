package ui

import (
	"sort"

	"dockmon/internal/types"
)

// applyContainers replaces the container list with a fresh snapshot, sorted
// by display name, keeping the cursor on the same container where possible.
func (m *Model) applyContainers(snapshot []types.Container) {
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Name < snapshot[j].Name
	})

	prevID := ""
	if c := m.selectedContainer(); c != nil {
		prevID = c.ID
	}
	prevIdx := m.containerCursor

	m.containers = snapshot
	m.containerCursor = reconcileCursor(prevID, prevIdx, len(snapshot), func(i int) string {
		return snapshot[i].ID
	})
}

// applyNetworks does the same for the network list.
func (m *Model) applyNetworks(snapshot []types.Network) {
	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Name < snapshot[j].Name
	})

	prevID := ""
	if n := m.selectedNetwork(); n != nil {
		prevID = n.ID
	}
	prevIdx := m.networkCursor

	m.networks = snapshot
	m.networkCursor = reconcileCursor(prevID, prevIdx, len(snapshot), func(i int) string {
		return snapshot[i].ID
	})
}

// reconcileCursor computes the cursor position after a snapshot replacement.
// The selection follows the previously selected ID when it still exists;
// when the row disappeared the previous index is clamped; when the list is
// empty the selection clears; when nothing was selected and the list is
// non-empty the first row is selected.
func reconcileCursor(prevID string, prevIdx, n int, idAt func(int) string) int {
	if n == 0 {
		return -1
	}
	if prevID == "" {
		return 0
	}
	for i := 0; i < n; i++ {
		if idAt(i) == prevID {
			return i
		}
	}
	if prevIdx > n-1 {
		return n - 1
	}
	if prevIdx < 0 {
		return 0
	}
	return prevIdx
}
