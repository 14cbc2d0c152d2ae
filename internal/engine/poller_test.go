package engine

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context) (*Snapshot, error)

func (f fetchFunc) Fetch(ctx context.Context) (*Snapshot, error) {
	return f(ctx)
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poller event")
	}
	return Event{}
}

func TestPollerApplySuccess(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	snap := mustDecode(t, `{"cpuUsage":"95","ramUsage":"2048","if2_Status":"2"}`)
	p.apply(1, snap, nil)

	st := p.State()
	if st.Loading {
		t.Error("state should not be loading after first result")
	}
	if st.Snapshot != snap {
		t.Error("expected snapshot to be stored")
	}
	if st.Conn.Error != "" {
		t.Errorf("expected no error, got %q", st.Conn.Error)
	}
	if len(st.Alerts) != 2 {
		t.Errorf("expected 2 alerts, got %d", len(st.Alerts))
	}
	if len(st.History) != 1 || st.History[0].CPU != 95 || st.History[0].RAM != 2048 {
		t.Errorf("unexpected history %+v", st.History)
	}
	if !strings.HasPrefix(st.Conn.Debug, "received data: ") || !strings.HasSuffix(st.Conn.Debug, "...") {
		t.Errorf("unexpected debug trace %q", st.Conn.Debug)
	}
	if st.BaseURL != DefaultBaseURL {
		t.Errorf("expected base url %s, got %s", DefaultBaseURL, st.BaseURL)
	}
}

func TestPollerScenarioC(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	good := mustDecode(t, `{"cpuUsage":"45.2","ramUsage":1073741824}`)
	p.apply(1, good, nil)

	p.apply(2, nil, &FetchError{Message: "dial tcp 127.0.0.1:5001: connect: connection refused"})

	st := p.State()
	if !strings.Contains(st.Conn.Error, "connection") {
		t.Errorf("expected error mentioning connection, got %q", st.Conn.Error)
	}
	if st.Snapshot != good {
		t.Error("last good snapshot must be kept on failure")
	}
	if len(st.History) != 1 {
		t.Errorf("failed cycle must not record history, got %d points", len(st.History))
	}
	if !strings.HasPrefix(st.Conn.Debug, "ERROR: ") {
		t.Errorf("unexpected debug trace %q", st.Conn.Debug)
	}
	if st.Conn.Failures != 1 || st.Conn.Attempts != 2 {
		t.Errorf("expected 2 attempts / 1 failure, got %d / %d", st.Conn.Attempts, st.Conn.Failures)
	}
}

func TestPollerFailureKeepsAlerts(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	p.apply(1, mustDecode(t, `{"cpuUsage":"99"}`), nil)
	p.apply(2, nil, errors.New("timeout"))

	st := p.State()
	if len(st.Alerts) != 1 || st.Alerts[0].ID != AlertHighCPU {
		t.Errorf("alerts should be unchanged by a failed cycle, got %+v", st.Alerts)
	}
}

func TestPollerSuccessClearsError(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	p.apply(1, nil, errors.New("refused"))
	p.apply(2, mustDecode(t, `{"cpuUsage":"10"}`), nil)
	if st := p.State(); st.Conn.Error != "" {
		t.Errorf("expected error to be cleared, got %q", st.Conn.Error)
	}
}

func TestPollerDiscardsStaleCycle(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	newer := mustDecode(t, `{"cpuUsage":"20"}`)
	older := mustDecode(t, `{"cpuUsage":"90"}`)

	p.apply(2, newer, nil)
	p.apply(1, older, nil)

	st := p.State()
	if st.Snapshot != newer {
		t.Error("older cycle must not overwrite a newer one")
	}
	if st.Cycle != 2 {
		t.Errorf("expected applied cycle 2, got %d", st.Cycle)
	}
	if len(st.History) != 1 || len(st.Alerts) != 0 {
		t.Errorf("stale result leaked into state: history=%d alerts=%d", len(st.History), len(st.Alerts))
	}
}

func TestPollerErrorSnapshotSkipsHistory(t *testing.T) {
	p := NewPoller(nil, DefaultBaseURL)
	p.apply(1, mustDecode(t, `{"cpuUsage":"10","error":"SNMP timeout"}`), nil)
	st := p.State()
	if len(st.History) != 0 {
		t.Errorf("snapshot with error field must not add history, got %d", len(st.History))
	}
	if st.Online() {
		t.Error("snapshot with error field should render offline")
	}
}

func TestPollerRunFirstCycleImmediate(t *testing.T) {
	var calls atomic.Int32
	p := NewPoller(fetchFunc(func(ctx context.Context) (*Snapshot, error) {
		calls.Add(1)
		return &Snapshot{CPU: "12"}, nil
	}), DefaultBaseURL)
	p.interval = time.Hour
	events := p.Subscribe()

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	ev := waitEvent(t, events)
	if ev.Cycle != 1 || ev.State.Snapshot == nil {
		t.Errorf("unexpected first event %+v", ev)
	}

	p.Refresh()
	ev = waitEvent(t, events)
	if ev.Cycle != 2 {
		t.Errorf("expected refresh to run cycle 2, got %d", ev.Cycle)
	}

	p.Stop()
	p.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 fetches, got %d", calls.Load())
	}
}

func TestPollerRunTicks(t *testing.T) {
	p := NewPoller(fetchFunc(func(ctx context.Context) (*Snapshot, error) {
		return &Snapshot{CPU: "1"}, nil
	}), DefaultBaseURL)
	p.interval = 10 * time.Millisecond
	events := p.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	for i := 0; i < 3; i++ {
		waitEvent(t, events)
	}
	cancel()
	<-done

	if st := p.State(); st.Cycle < 3 {
		t.Errorf("expected at least 3 cycles, got %d", st.Cycle)
	}
}

func TestPollerStopCancelsInflightFetch(t *testing.T) {
	started := make(chan struct{})
	p := NewPoller(fetchFunc(func(ctx context.Context) (*Snapshot, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}), DefaultBaseURL)
	p.interval = time.Hour

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()
	<-started
	p.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return while a fetch was in flight")
	}
	if st := p.State(); !st.Loading || st.Conn.Attempts != 0 {
		t.Error("a cancelled fetch must not be applied")
	}
}

func TestPollerRunTwice(t *testing.T) {
	p := NewPoller(fetchFunc(func(ctx context.Context) (*Snapshot, error) {
		return &Snapshot{}, nil
	}), DefaultBaseURL)
	p.interval = time.Hour
	p.Stop()
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	if err := p.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}
}
