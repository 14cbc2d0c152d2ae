package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// debugPreviewLen is how much of the raw response the debug trace shows.
const debugPreviewLen = 50

// ErrAlreadyRunning is returned when Run is called on a Poller twice.
var ErrAlreadyRunning = errors.New("poller already running")

// Fetcher retrieves one snapshot from the backend.
type Fetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Poller is the refresh loop. It fetches a snapshot immediately and then on
// every tick, and owns the dashboard state built from the results. Readers
// only ever see copies through State or Subscribe.
//
// Cycles may overlap when the backend is slow. Each cycle takes a sequence
// number when it starts and its result is applied only if no later cycle
// has been applied already.
type Poller struct {
	mu          sync.RWMutex
	fetcher     Fetcher
	baseURL     string
	interval    time.Duration
	history     *History
	snapshot    *Snapshot
	alerts      []Alert
	conn        ConnectionState
	loading     bool
	started     uint64
	applied     uint64
	subscribers []chan Event

	refreshCh chan struct{}
	stopCh    chan struct{}
	stopOnce  sync.Once
	running   atomic.Bool
	wg        sync.WaitGroup
	now       func() time.Time
}

// NewPoller creates a Poller that fetches from f. baseURL is only used for
// display.
func NewPoller(f Fetcher, baseURL string) *Poller {
	return &Poller{
		fetcher:   f,
		baseURL:   baseURL,
		interval:  PollInterval,
		history:   NewHistory(HistoryCapacity),
		alerts:    []Alert{},
		loading:   true,
		conn:      ConnectionState{Debug: "initializing..."},
		refreshCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Interval returns the fixed poll period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run starts the refresh loop and blocks until ctx is done or Stop is
// called. The first cycle starts immediately. In-flight fetches are
// cancelled and awaited before Run returns.
func (p *Poller) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		p.wg.Wait()
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.startCycle(ctx)
	for {
		select {
		case <-ticker.C:
			p.startCycle(ctx)
		case <-p.refreshCh:
			p.startCycle(ctx)
		case <-p.stopCh:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

// Stop ends the refresh loop. It is safe to call more than once and before
// Run.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
}

// Refresh asks the loop for an extra cycle without waiting for the next
// tick. Requests made while one is already pending are coalesced.
func (p *Poller) Refresh() {
	select {
	case p.refreshCh <- struct{}{}:
	default:
	}
}

// startCycle assigns the next sequence number and fetches in the background
// so a slow backend never delays the ticker.
func (p *Poller) startCycle(ctx context.Context) {
	p.mu.Lock()
	p.started++
	seq := p.started
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		snap, err := p.fetcher.Fetch(ctx)
		if ctx.Err() != nil {
			return
		}
		if snap == nil && err == nil {
			err = &FetchError{Message: "empty response"}
		}
		p.apply(seq, snap, err)
	}()
}

// apply folds a cycle result into the state.
func (p *Poller) apply(seq uint64, snap *Snapshot, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if seq <= p.applied {
		log.Printf("poller: discarding result of cycle %d, cycle %d already applied", seq, p.applied)
		return
	}
	p.applied = seq
	p.loading = false

	now := p.now()
	p.conn.Attempts++
	p.conn.LastAttempt = now

	if err != nil {
		msg := err.Error()
		p.conn.Error = "connection error: " + msg
		p.conn.Debug = "ERROR: " + msg
		p.conn.Failures++
		log.Printf("poller: cycle %d failed: %s", seq, msg)
		p.notify()
		return
	}

	p.snapshot = snap
	p.conn.Error = ""
	p.conn.Debug = debugTrace(snap)
	p.conn.LastSuccess = now
	p.alerts = Evaluate(snap)
	if snap.Error == "" {
		if !p.history.Record(now, snap.CPU, snap.RAM) {
			log.Printf("poller: cycle %d: non-numeric cpu %q not recorded", seq, snap.CPU)
		}
	}
	p.notify()
}

// debugTrace summarises a successful response for the debug panel.
func debugTrace(snap *Snapshot) string {
	preview := []rune(string(snap.Raw))
	if len(preview) > debugPreviewLen {
		preview = preview[:debugPreviewLen]
	}
	return "received data: " + string(preview) + "..."
}

// State returns a copy of the current dashboard state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

// stateLocked builds a State. The caller must hold at least a read lock.
func (p *Poller) stateLocked() State {
	alerts := make([]Alert, len(p.alerts))
	copy(alerts, p.alerts)
	return State{
		Snapshot: p.snapshot,
		Alerts:   alerts,
		History:  p.history.Points(),
		Conn:     p.conn,
		Loading:  p.loading,
		Cycle:    p.applied,
		BaseURL:  p.baseURL,
	}
}

// Subscribe returns a channel that receives the state after every applied
// cycle. A slow subscriber only ever holds the latest event.
func (p *Poller) Subscribe() <-chan Event {
	ch := make(chan Event, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// notify delivers the current state to all subscribers without blocking.
// Must be called while holding the write lock.
func (p *Poller) notify() {
	ev := Event{Cycle: p.applied, State: p.stateLocked()}
	for _, ch := range p.subscribers {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Replace the stale pending event.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
