package poller

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockmon/internal/types"
)

// stubRuntime lets each test control exactly what the runtime does.
type stubRuntime struct {
	mu sync.Mutex

	containers   []types.Container
	networks     []types.Network
	fetchErr     error
	opErr        error
	logReader    io.ReadCloser
	logErr       error
	ops          []string
	streamedIDs  []string
	streamedCtxs []context.Context
}

func (s *stubRuntime) FetchContainers(ctx context.Context) ([]types.Container, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.containers, nil
}

func (s *stubRuntime) FetchNetworks(ctx context.Context) ([]types.Network, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.networks, nil
}

func (s *stubRuntime) record(op, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op+":"+id)
	return s.opErr
}

func (s *stubRuntime) StartContainer(ctx context.Context, id string) error {
	return s.record("start", id)
}

func (s *stubRuntime) StopContainer(ctx context.Context, id string) error {
	return s.record("stop", id)
}

func (s *stubRuntime) KillContainer(ctx context.Context, id string) error {
	return s.record("kill", id)
}

func (s *stubRuntime) RemoveContainer(ctx context.Context, id string) error {
	return s.record("remove", id)
}

func (s *stubRuntime) StreamLogs(ctx context.Context, id string, tail int) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streamedIDs = append(s.streamedIDs, id)
	s.streamedCtxs = append(s.streamedCtxs, ctx)
	if s.logErr != nil {
		return nil, s.logErr
	}
	return s.logReader, nil
}

func (s *stubRuntime) setFetchErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchErr = err
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func newTestPoller(rt Runtime, actions chan Action, events chan Event) *Poller {
	return New(rt, 20*time.Millisecond, 200, actions, events, zerolog.Nop())
}

func TestRunConnectFailureEmitsOneResultAndTerminates(t *testing.T) {
	rt := &stubRuntime{fetchErr: errors.New("daemon unreachable")}
	actions := make(chan Action, 8)
	events := make(chan Event, 8)

	done := make(chan struct{})
	go func() {
		newTestPoller(rt, actions, events).Run(context.Background())
		close(done)
	}()

	ev := waitEvent(t, events)
	result, ok := ev.(ActionResult)
	require.True(t, ok, "expected ActionResult, got %T", ev)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "daemon unreachable")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not terminate after connect failure")
	}
	assert.Empty(t, events, "no further events after the failure result")
}

func TestRunEmitsInitialSnapshots(t *testing.T) {
	rt := &stubRuntime{
		containers: []types.Container{{ID: "c1", Name: "web"}},
		networks:   []types.Network{{ID: "n1", Name: "bridge"}},
	}
	actions := make(chan Action, 8)
	events := make(chan Event, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go newTestPoller(rt, actions, events).Run(ctx)

	ev := waitEvent(t, events)
	cu, ok := ev.(ContainersUpdated)
	require.True(t, ok, "expected ContainersUpdated, got %T", ev)
	assert.Equal(t, "c1", cu.Containers[0].ID)

	ev = waitEvent(t, events)
	nu, ok := ev.(NetworksUpdated)
	require.True(t, ok, "expected NetworksUpdated, got %T", ev)
	assert.Equal(t, "n1", nu.Networks[0].ID)
}

func TestActionEmitsExactlyOneResult(t *testing.T) {
	rt := &stubRuntime{}
	actions := make(chan Action, 8)
	events := make(chan Event, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go newTestPoller(rt, actions, events).Run(ctx)

	// Drain the initial snapshots
	waitEvent(t, events)
	waitEvent(t, events)

	actions <- Start{ID: "0123456789abcdef"}

	var results []ActionResult
	deadline := time.After(time.Second)
collect:
	for {
		select {
		case ev := <-events:
			if r, ok := ev.(ActionResult); ok {
				results = append(results, r)
			}
		case <-deadline:
			break collect
		}
	}

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Equal(t, "Started container 0123456789ab", results[0].Message)
	assert.Equal(t, []string{"start:0123456789abcdef"}, rt.ops)
}

func TestActionFailureSurfacesErrorDetail(t *testing.T) {
	rt := &stubRuntime{opErr: errors.New("container already stopped")}
	actions := make(chan Action, 8)
	events := make(chan Event, 8)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go newTestPoller(rt, actions, events).Run(ctx)

	waitEvent(t, events)
	waitEvent(t, events)

	actions <- Stop{ID: "c1"}

	for {
		ev := waitEvent(t, events)
		if r, ok := ev.(ActionResult); ok {
			assert.False(t, r.Success)
			assert.Contains(t, r.Message, "Stop failed")
			assert.Contains(t, r.Message, "container already stopped")
			return
		}
	}
}

func TestTransientPollFailureIsSilent(t *testing.T) {
	rt := &stubRuntime{containers: []types.Container{{ID: "c1"}}}
	actions := make(chan Action, 8)
	events := make(chan Event, 64)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go newTestPoller(rt, actions, events).Run(ctx)

	waitEvent(t, events)
	waitEvent(t, events)

	// Every subsequent poll fails; nothing must surface.
	rt.setFetchErr(errors.New("transient"))
	time.Sleep(100 * time.Millisecond)

	select {
	case ev := <-events:
		t.Fatalf("expected no events during failed polls, got %T", ev)
	default:
	}

	// Recovery: polls resume emitting snapshots.
	rt.setFetchErr(nil)
	ev := waitEvent(t, events)
	_, ok := ev.(ContainersUpdated)
	assert.True(t, ok, "expected ContainersUpdated after recovery, got %T", ev)
}

func TestStreamLogsEmitsLinesThenEndedOnce(t *testing.T) {
	rt := &stubRuntime{
		logReader: io.NopCloser(strings.NewReader("first\nsecond\nthird\n")),
	}
	events := make(chan Event, 16)
	p := newTestPoller(rt, nil, events)

	p.streamLogs(context.Background(), "c1")

	var lines []string
	var ended int
	for len(events) > 0 {
		switch ev := (<-events).(type) {
		case LogLine:
			assert.Equal(t, "c1", ev.ContainerID)
			lines = append(lines, ev.Text)
		case LogStreamEnded:
			assert.Equal(t, "c1", ev.ContainerID)
			ended++
		}
	}

	assert.Equal(t, []string{"first", "second", "third"}, lines)
	assert.Equal(t, 1, ended)
}

func TestStreamLogsOpenFailureStillEndsOnce(t *testing.T) {
	rt := &stubRuntime{logErr: errors.New("no such container")}
	events := make(chan Event, 16)
	p := newTestPoller(rt, nil, events)

	p.streamLogs(context.Background(), "gone")

	ev := waitEvent(t, events)
	ended, ok := ev.(LogStreamEnded)
	require.True(t, ok, "expected LogStreamEnded, got %T", ev)
	assert.Equal(t, "gone", ended.ContainerID)
	assert.Empty(t, events)
}

// blockingReader blocks Read until closed, standing in for a quiet container
// with follow=true.
type blockingReader struct {
	closed chan struct{}
	once   sync.Once
}

func newBlockingReader() *blockingReader {
	return &blockingReader{closed: make(chan struct{})}
}

func (r *blockingReader) Read(p []byte) (int, error) {
	<-r.closed
	return 0, io.EOF
}

func (r *blockingReader) Close() error {
	r.once.Do(func() { close(r.closed) })
	return nil
}

func TestNewStreamSupersedesPrevious(t *testing.T) {
	rt := &stubRuntime{logReader: newBlockingReader()}
	events := make(chan Event, 16)
	p := newTestPoller(rt, nil, events)

	ctx := context.Background()
	p.startLogStream(ctx, "old")

	require.Eventually(t, func() bool {
		rt.mu.Lock()
		defer rt.mu.Unlock()
		return len(rt.streamedCtxs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	rt.mu.Lock()
	rt.logReader = newBlockingReader()
	oldCtx := rt.streamedCtxs[0]
	rt.mu.Unlock()

	p.startLogStream(ctx, "new")

	assert.Error(t, oldCtx.Err(), "previous stream context must be cancelled")
	rt.mu.Lock()
	assert.Equal(t, []string{"old", "new"}, rt.streamedIDs)
	rt.mu.Unlock()

	// A cancelled stream must not report itself as ended.
	time.Sleep(50 * time.Millisecond)
	for len(events) > 0 {
		ev := <-events
		if ended, ok := ev.(LogStreamEnded); ok {
			assert.NotEqual(t, "old", ended.ContainerID, "cancelled stream emitted LogStreamEnded")
		}
	}

	p.stopLogStream()
}
