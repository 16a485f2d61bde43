// Package types contains the display-ready records shared by the docker
// client, the poller, and the UI.
package types

// Container represents a Docker container with display data. ID is the full
// daemon ID and is the identity used for selection tracking and actions;
// everything else is derived for display.
type Container struct {
	ID       string
	ShortID  string
	Name     string
	Image    string
	ImageID  string
	Command  string
	Created  string
	State    string // raw daemon state: running, exited, paused, ...
	Status   string // daemon status line, e.g. "Up 2 hours"
	Ports    []string
	Labels   map[string]string
	Mounts   []string
	Networks []string
}

// Network represents a Docker network. Containers holds the names of the
// containers currently attached to it, derived from the container snapshot
// because the daemon's network list does not reliably carry attachments.
type Network struct {
	ID         string
	ShortID    string
	Name       string
	Driver     string
	Scope      string
	Containers []string
}
