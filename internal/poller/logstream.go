package poller

import (
	"bufio"
	"context"

	"dockmon/internal/docker"
)

// maxLineSize bounds scanner growth for containers that write huge lines.
const maxLineSize = 1024 * 1024

// startLogStream spawns the log sub-task for containerID. Any stream already
// running is cancelled first so at most one is ever live; stale lines from
// the old stream that were already queued are filtered out by the UI using
// the ContainerID carried on each LogLine.
func (p *Poller) startLogStream(ctx context.Context, containerID string) {
	p.stopLogStream()

	streamCtx, cancel := context.WithCancel(ctx)
	p.logCancel = cancel

	go p.streamLogs(streamCtx, containerID)
}

// stopLogStream cancels the active sub-task, if any. Cancellation is silent:
// the sub-task suppresses its LogStreamEnded when it was told to stop rather
// than stopping on its own.
func (p *Poller) stopLogStream() {
	if p.logCancel != nil {
		p.logCancel()
		p.logCancel = nil
	}
}

// streamLogs follows one container's combined stdout/stderr, forwarding each
// line as a LogLine event. Exactly one LogStreamEnded is emitted when the
// stream ends naturally or on a read error; none when cancelled.
func (p *Poller) streamLogs(ctx context.Context, containerID string) {
	reader, err := p.rt.StreamLogs(ctx, containerID, p.tail)
	if err != nil {
		p.logger.Warn().Err(err).Str("container", containerID).Msg("log stream open failed")
		p.emit(LogStreamEnded{ContainerID: containerID})
		return
	}
	defer reader.Close()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := docker.TrimStreamHeader(scanner.Bytes())

		select {
		case <-ctx.Done():
			return
		case p.events <- LogLine{ContainerID: containerID, Text: string(line)}:
		}
	}

	// Natural end or read error. A cancelled context also surfaces here as a
	// read error on the closed stream; that case stays silent.
	if ctx.Err() != nil {
		return
	}
	if err := scanner.Err(); err != nil {
		p.logger.Debug().Err(err).Str("container", containerID).Msg("log stream read error")
	}
	p.emit(LogStreamEnded{ContainerID: containerID})
}
