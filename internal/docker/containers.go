package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/moby/moby/api/types/container"
	"github.com/moby/moby/client"

	"dockmon/internal/types"
)

// FetchContainers retrieves all containers, including stopped ones. The
// result is unsorted; ordering is a display concern and happens in the UI.
func (c *Client) FetchContainers(ctx context.Context) ([]types.Container, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutQuick)
		defer cancel()
	}

	result, err := c.cli.ContainerList(ctx, client.ContainerListOptions{All: true})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("operation timed out after %s", TimeoutQuick)
		}
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]types.Container, 0, len(result.Items))
	for _, dockerContainer := range result.Items {
		containers = append(containers, parseContainer(dockerContainer))
	}

	return containers, nil
}

// parseContainer converts a Docker API container summary to our display type
func parseContainer(dockerContainer container.Summary) types.Container {
	name := containerName(dockerContainer.Names)
	shortID := shortenID(dockerContainer.ID)

	created := ""
	if dockerContainer.Created > 0 {
		created = units.HumanDuration(time.Since(time.Unix(dockerContainer.Created, 0))) + " ago"
	}

	mounts := make([]string, 0, len(dockerContainer.Mounts))
	for _, m := range dockerContainer.Mounts {
		mounts = append(mounts, fmt.Sprintf("%s -> %s", m.Source, m.Destination))
	}

	var networks []string
	if dockerContainer.NetworkSettings != nil {
		for networkName := range dockerContainer.NetworkSettings.Networks {
			networks = append(networks, networkName)
		}
	}

	return types.Container{
		ID:       dockerContainer.ID,
		ShortID:  shortID,
		Name:     name,
		Image:    dockerContainer.Image,
		ImageID:  dockerContainer.ImageID,
		Command:  dockerContainer.Command,
		Created:  created,
		State:    string(dockerContainer.State),
		Status:   dockerContainer.Status,
		Ports:    formatPorts(dockerContainer.Ports),
		Labels:   dockerContainer.Labels,
		Mounts:   mounts,
		Networks: networks,
	}
}

// StartContainer starts a container
func (c *Client) StartContainer(ctx context.Context, containerID string) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutMedium)
		defer cancel()
	}

	_, err := c.cli.ContainerStart(ctx, containerID, client.ContainerStartOptions{})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("start operation timed out after %s", TimeoutMedium)
		}
		return fmt.Errorf("failed to start container: %w", err)
	}
	return nil
}

// StopContainer stops a container
func (c *Client) StopContainer(ctx context.Context, containerID string) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutMedium)
		defer cancel()
	}

	// Allow 10 seconds for graceful shutdown
	timeout := 10
	_, err := c.cli.ContainerStop(ctx, containerID, client.ContainerStopOptions{Timeout: &timeout})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("stop operation timed out after %s", TimeoutMedium)
		}
		return fmt.Errorf("failed to stop container: %w", err)
	}
	return nil
}

// KillContainer sends SIGKILL to a running container
func (c *Client) KillContainer(ctx context.Context, containerID string) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutMedium)
		defer cancel()
	}

	_, err := c.cli.ContainerKill(ctx, containerID, client.ContainerKillOptions{Signal: "SIGKILL"})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("kill operation timed out after %s", TimeoutMedium)
		}
		return fmt.Errorf("failed to kill container: %w", err)
	}
	return nil
}

// RemoveContainer force-removes a container
func (c *Client) RemoveContainer(ctx context.Context, containerID string) error {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutMedium)
		defer cancel()
	}

	_, err := c.cli.ContainerRemove(ctx, containerID, client.ContainerRemoveOptions{
		Force:         true,
		RemoveVolumes: false,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("remove operation timed out after %s", TimeoutMedium)
		}
		return fmt.Errorf("failed to remove container: %w", err)
	}
	return nil
}

// Helper functions

// containerName derives the display name: first name entry with the leading
// slash stripped, "unnamed" when the daemon reports no names.
func containerName(names []string) string {
	if len(names) == 0 {
		return "unnamed"
	}
	name := strings.TrimPrefix(names[0], "/")
	if name == "" {
		return "unnamed"
	}
	return name
}

// formatPorts summarizes port mappings as "public:private" for published
// ports and a bare "private" for exposed-only ones.
func formatPorts(ports []container.PortSummary) []string {
	if len(ports) == 0 {
		return nil
	}

	out := make([]string, 0, len(ports))
	for _, p := range ports {
		if p.PublicPort > 0 {
			out = append(out, fmt.Sprintf("%d:%d", p.PublicPort, p.PrivatePort))
		} else {
			out = append(out, fmt.Sprintf("%d", p.PrivatePort))
		}
	}
	return out
}

func shortenID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
