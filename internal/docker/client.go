// Package docker provides Docker API operations with timeout management and error handling.
package docker

import (
	"context"
	"fmt"
	"time"

	"github.com/moby/moby/client"
)

// Client wraps the Docker client with dockmon-specific operations and timeout management
type Client struct {
	cli            *client.Client
	defaultTimeout time.Duration
}

// NewClient creates a new Docker client wrapper with sensible defaults.
// host overrides DOCKER_HOST when non-empty.
func NewClient(host string) (*Client, error) {
	opts := []client.Opt{
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &Client{
		cli:            cli,
		defaultTimeout: 10 * time.Second,
	}, nil
}

// Close closes the underlying Docker client
func (c *Client) Close() error {
	if c.cli != nil {
		return c.cli.Close()
	}
	return nil
}

// WithTimeout creates a context with the default timeout
func (c *Client) WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.defaultTimeout)
}

// WithCustomTimeout creates a context with a custom timeout
func (c *Client) WithCustomTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Operation timeout constants
const (
	TimeoutQuick  = 5 * time.Second  // List operations
	TimeoutMedium = 15 * time.Second // Start, stop, kill, remove operations
)
