package engine

import "time"

// Fixed polling behaviour. These are intentionally not configurable.
const (
	DefaultBaseURL = "http://127.0.0.1:5001"
	SnapshotPath   = "/snmp"
	ReportPath     = "/export/report/pdf"
	ReportFileName = "raport.pdf"

	PollInterval    = 5 * time.Second
	HistoryCapacity = 20
	CPUThreshold    = 80.0
)

// Severity tags an Alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Alert is a single threshold violation derived from a Snapshot.
type Alert struct {
	ID       int      `json:"id"`
	Severity Severity `json:"type"`
	Message  string   `json:"msg"`
}

// HistoryPoint is one CPU/RAM sample for charting.
type HistoryPoint struct {
	Time     time.Time `json:"-"`
	Label    string    `json:"time"`
	CPU      float64   `json:"cpu"`
	RAM      float64   `json:"ram"`
	RAMValid bool      `json:"ramValid"`
}

// ConnectionState describes the outcome of the most recent fetch attempt.
type ConnectionState struct {
	Error       string    `json:"error,omitempty"`
	Debug       string    `json:"debug"`
	LastAttempt time.Time `json:"lastAttempt"`
	LastSuccess time.Time `json:"lastSuccess"`
	Attempts    int       `json:"attempts"`
	Failures    int       `json:"failures"`
}

// State is a point-in-time copy of everything the dashboard renders.
type State struct {
	Snapshot *Snapshot       `json:"snapshot"`
	Alerts   []Alert         `json:"alerts"`
	History  []HistoryPoint  `json:"history"`
	Conn     ConnectionState `json:"connection"`
	Loading  bool            `json:"loading"`
	Cycle    uint64          `json:"cycle"`
	BaseURL  string          `json:"baseUrl"`
}

// Online reports whether the latest snapshot exists and carries no error.
func (s State) Online() bool {
	return s.Snapshot != nil && s.Snapshot.Error == ""
}

// Event is emitted to subscribers after each applied poll cycle.
type Event struct {
	Cycle uint64
	State State
}
