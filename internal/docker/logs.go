package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/moby/moby/client"
)

// StreamLogs opens a following log stream for a container, starting from the
// last tail lines. Both stdout and stderr are included. The caller owns the
// returned reader and must close it; cancelling ctx also terminates the
// stream.
func (c *Client) StreamLogs(ctx context.Context, containerID string, tail int) (io.ReadCloser, error) {
	result, err := c.cli.ContainerLogs(ctx, containerID, client.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stream logs: %w", err)
	}
	return result, nil
}

// TrimStreamHeader strips the 8-byte multiplexing header Docker prepends to
// each frame when the container runs without a TTY. Lines from TTY containers
// start with printable text and pass through unchanged.
func TrimStreamHeader(line []byte) []byte {
	if len(line) > 8 && line[0] < 32 {
		return line[8:]
	}
	return line
}
