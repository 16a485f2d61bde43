package poller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"dockmon/internal/types"
)

// Runtime is the slice of the container runtime the poller needs. It is
// satisfied by *docker.Client and by stubs in tests.
type Runtime interface {
	FetchContainers(ctx context.Context) ([]types.Container, error)
	FetchNetworks(ctx context.Context) ([]types.Network, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string) error
	KillContainer(ctx context.Context, id string) error
	RemoveContainer(ctx context.Context, id string) error
	StreamLogs(ctx context.Context, id string, tail int) (io.ReadCloser, error)
}

const opTimeout = 15 * time.Second

// Poller is the background actor owning all runtime I/O. It reacts to a
// fixed-interval timer and to inbound actions, and never blocks the UI: all
// event sends are non-blocking with drop-on-full.
type Poller struct {
	rt       Runtime
	interval time.Duration
	tail     int
	actions  <-chan Action
	events   chan<- Event
	logger   zerolog.Logger

	logCancel context.CancelFunc
}

// New creates a poller. tail is the number of lines a new log stream starts
// with before following.
func New(rt Runtime, interval time.Duration, tail int, actions <-chan Action, events chan<- Event, logger zerolog.Logger) *Poller {
	return &Poller{
		rt:       rt,
		interval: interval,
		tail:     tail,
		actions:  actions,
		events:   events,
		logger:   logger,
	}
}

// Run is the actor loop. It blocks until ctx is cancelled or the initial
// probe fails. A failed probe emits one failed ActionResult and terminates
// the actor; the session continues in a degraded display-only state.
func (p *Poller) Run(ctx context.Context) {
	containers, err := p.fetchContainers(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("cannot connect to container runtime")
		p.emit(ActionResult{Success: false, Message: fmt.Sprintf("Cannot connect to container runtime: %v", err)})
		return
	}
	p.emit(ContainersUpdated{Containers: containers})

	if networks, err := p.fetchNetworks(ctx); err == nil {
		p.emit(NetworksUpdated{Networks: networks})
	}

	// A 1-buffered ticker channel gives skip-not-burst semantics for free:
	// ticks missed while a slow poll runs are dropped, never queued.
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.stopLogStream()
			return

		case <-ticker.C:
			p.poll(ctx)

		case act, ok := <-p.actions:
			if !ok {
				p.stopLogStream()
				return
			}
			p.handleAction(ctx, act)
		}
	}
}

// poll fetches both snapshots. Each fetch is independent; a failure skips
// that emission this cycle and the next tick retries.
func (p *Poller) poll(ctx context.Context) {
	if containers, err := p.fetchContainers(ctx); err != nil {
		p.logger.Debug().Err(err).Msg("container poll failed")
	} else {
		p.emit(ContainersUpdated{Containers: containers})
	}

	if networks, err := p.fetchNetworks(ctx); err != nil {
		p.logger.Debug().Err(err).Msg("network poll failed")
	} else {
		p.emit(NetworksUpdated{Networks: networks})
	}
}

func (p *Poller) handleAction(ctx context.Context, act Action) {
	switch a := act.(type) {
	case Start:
		p.runOp(ctx, a.ID, "Start", "Started", p.rt.StartContainer)
	case Stop:
		p.runOp(ctx, a.ID, "Stop", "Stopped", p.rt.StopContainer)
	case Kill:
		p.runOp(ctx, a.ID, "Kill", "Killed", p.rt.KillContainer)
	case Remove:
		p.runOp(ctx, a.ID, "Remove", "Removed", p.rt.RemoveContainer)
	case StreamLogs:
		p.startLogStream(ctx, a.ID)
	case StopLogStream:
		p.stopLogStream()
	}
}

// runOp executes one lifecycle operation and emits exactly one ActionResult.
func (p *Poller) runOp(ctx context.Context, id, verb, done string, op func(context.Context, string) error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := op(opCtx, id); err != nil {
		p.logger.Warn().Err(err).Str("container", id).Msgf("%s failed", verb)
		p.emit(ActionResult{Success: false, Message: fmt.Sprintf("%s failed: %v", verb, err)})
		return
	}

	p.logger.Info().Str("container", id).Msgf("%s succeeded", verb)
	p.emit(ActionResult{Success: true, Message: fmt.Sprintf("%s container %s", done, shortID(id))})
}

func (p *Poller) fetchContainers(ctx context.Context) ([]types.Container, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return p.rt.FetchContainers(opCtx)
}

func (p *Poller) fetchNetworks(ctx context.Context) ([]types.Network, error) {
	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return p.rt.FetchNetworks(opCtx)
}

// emit sends an event without ever blocking the actor. A full event channel
// means the UI is gone or hopelessly behind; dropping is the right call.
func (p *Poller) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.logger.Debug().Msg("event channel full, dropping event")
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
