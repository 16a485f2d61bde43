package docker

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/moby/moby/api/types/network"
	"github.com/moby/moby/client"

	"dockmon/internal/types"
)

// FetchNetworks retrieves all networks with their attached containers. The
// attachment lists come from the container snapshot because the network list
// endpoint does not reliably report them.
func (c *Client) FetchNetworks(ctx context.Context) ([]types.Network, error) {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = c.WithCustomTimeout(TimeoutQuick)
		defer cancel()
	}

	containersResult, err := c.cli.ContainerList(ctx, client.ContainerListOptions{All: true})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("operation timed out after %s", TimeoutQuick)
		}
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	// Map network name -> attached container names
	attachments := make(map[string][]string)
	for _, dockerContainer := range containersResult.Items {
		if dockerContainer.NetworkSettings == nil {
			continue
		}
		name := containerName(dockerContainer.Names)
		for networkName := range dockerContainer.NetworkSettings.Networks {
			attachments[networkName] = append(attachments[networkName], name)
		}
	}

	result, err := c.cli.NetworkList(ctx, client.NetworkListOptions{})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("operation timed out after %s", TimeoutQuick)
		}
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	networks := make([]types.Network, 0, len(result.Items))
	for _, net := range result.Items {
		parsed := parseNetwork(net)
		parsed.Containers = attachments[net.Name]
		sort.Strings(parsed.Containers)
		networks = append(networks, parsed)
	}

	return networks, nil
}

func parseNetwork(net network.Summary) types.Network {
	return types.Network{
		ID:      net.ID,
		ShortID: shortenID(net.ID),
		Name:    net.Name,
		Driver:  net.Driver,
		Scope:   net.Scope,
	}
}
