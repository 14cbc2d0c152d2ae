package engine

import (
	"sync"
	"time"
)

// historyLabelLayout is the display timestamp used on chart axes.
const historyLabelLayout = "15:04:05"

// History is the bounded CPU/RAM series shown in the charts.
type History struct {
	mu  sync.RWMutex
	buf *RingBuffer[HistoryPoint]
}

// NewHistory creates a History with the given capacity.
func NewHistory(capacity int) *History {
	return &History{buf: NewRingBuffer[HistoryPoint](capacity)}
}

// Record appends a point if cpu is numeric and reports whether it did.
// A non-numeric RAM value does not block the point; it is stored as zero
// with RAMValid unset.
func (h *History) Record(t time.Time, cpu, ram Metric) bool {
	cpuVal, ok := cpu.Float()
	if !ok {
		return false
	}
	ramVal, ramOK := ram.Float()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf.Push(HistoryPoint{
		Time:     t,
		Label:    t.Format(historyLabelLayout),
		CPU:      cpuVal,
		RAM:      ramVal,
		RAMValid: ramOK,
	})
	return true
}

// Points returns the stored points, oldest first.
func (h *History) Points() []HistoryPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.Items()
}

// Len returns the number of stored points.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.Len()
}

// Latest returns the newest point.
func (h *History) Latest() (HistoryPoint, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.buf.Newest()
}
