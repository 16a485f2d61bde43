// Package poller runs the background actor that owns the container runtime
// client. The UI talks to it exclusively through two bounded channels: it
// sends Actions and receives Events. The actor never touches the terminal
// and the UI never touches the runtime.
package poller

import "dockmon/internal/types"

// Action is a request from the UI to the poller.
type Action interface {
	isAction()
}

// Start starts a container.
type Start struct {
	ID string
}

// Stop gracefully stops a container.
type Stop struct {
	ID string
}

// Kill force-kills a container.
type Kill struct {
	ID string
}

// Remove force-removes a container.
type Remove struct {
	ID string
}

// StreamLogs starts following a container's logs, superseding any stream
// already running.
type StreamLogs struct {
	ID string
}

// StopLogStream cancels the active log stream, if any.
type StopLogStream struct{}

func (Start) isAction()         {}
func (Stop) isAction()          {}
func (Kill) isAction()          {}
func (Remove) isAction()        {}
func (StreamLogs) isAction()    {}
func (StopLogStream) isAction() {}

// Event is a message from the poller to the UI.
type Event interface {
	isEvent()
}

// ContainersUpdated carries a full replacement snapshot of all containers.
type ContainersUpdated struct {
	Containers []types.Container
}

// NetworksUpdated carries a full replacement snapshot of all networks.
type NetworksUpdated struct {
	Networks []types.Network
}

// LogLine is a single line from the active log stream. ContainerID lets the
// UI drop lines from a superseded stream that were already in flight.
type LogLine struct {
	ContainerID string
	Text        string
}

// LogStreamEnded reports that the stream for ContainerID terminated, whether
// naturally or on error. Exactly one is emitted per stream; cancellation by
// the poller itself does not produce one.
type LogStreamEnded struct {
	ContainerID string
}

// ActionResult reports the outcome of one Action.
type ActionResult struct {
	Success bool
	Message string
}

func (ContainersUpdated) isEvent() {}
func (NetworksUpdated) isEvent()   {}
func (LogLine) isEvent()           {}
func (LogStreamEnded) isEvent()    {}
func (ActionResult) isEvent()      {}
