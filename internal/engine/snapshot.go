package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InterfaceCount is the number of interfaces the backend reports.
const InterfaceCount = 2

// Operational status codes as sent by the backend (ifOperStatus, stringified).
const (
	StatusUp   = "1"
	StatusDown = "2"
)

// Metric is a single backend value kept in its textual form. The backend
// stringifies SNMP values, but numbers are accepted as well.
type Metric string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (m *Metric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*m = Metric(s)
		return nil
	}
	*m = Metric(b)
	return nil
}

// String returns the raw text.
func (m Metric) String() string {
	return string(m)
}

// IsSet reports whether the backend sent a non-empty value.
func (m Metric) IsSet() bool {
	return strings.TrimSpace(string(m)) != ""
}

// Float parses the metric as a finite floating-point number.
func (m Metric) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(m)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int reads the leading integer of the metric text after optional
// whitespace and sign: "3 errors" and "3.7" are 3, "abc" is not a number.
func (m Metric) Int() (int64, bool) {
	s := strings.TrimLeft(string(m), " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Interface holds the per-interface fields of a Snapshot.
type Interface struct {
	Name   string `json:"name"`
	Status Metric `json:"status"`
	// StatusNumeric is set when the backend sent the status as a JSON
	// number instead of text. Such a status is neither up nor down.
	StatusNumeric bool `json:"statusNumeric,omitempty"`

	InOctets  Metric `json:"in"`
	OutOctets Metric `json:"out"`
	ErrIn     Metric `json:"errIn"`
	ErrOut    Metric `json:"errOut"`
}

// Up reports whether the status is exactly the text "1".
func (i Interface) Up() bool {
	return !i.StatusNumeric && i.Status.String() == StatusUp
}

// Down reports whether the status is exactly the text "2".
func (i Interface) Down() bool {
	return !i.StatusNumeric && i.Status.String() == StatusDown
}

// HasErrors reports whether either error counter is greater than zero.
func (i Interface) HasErrors() bool {
	in, _ := i.ErrIn.Int()
	out, _ := i.ErrOut.Int()
	return in > 0 || out > 0
}

// DisplayName returns the interface name or fallback when it is empty.
func (i Interface) DisplayName(fallback string) string {
	if strings.TrimSpace(i.Name) == "" {
		return fallback
	}
	return i.Name
}

// Snapshot is one polling cycle's reading from the backend. It is never
// modified after decoding.
type Snapshot struct {
	Name        string                    `json:"sysName"`
	Description string                    `json:"sysDescr"`
	Location    string                    `json:"sysLocation"`
	Contact     string                    `json:"sysContact"`
	UpTime      Metric                    `json:"sysUpTime"`
	CPU         Metric                    `json:"cpuUsage"`
	RAM         Metric                    `json:"ramUsage"`
	Interfaces  [InterfaceCount]Interface `json:"interfaces"`
	Error       string                    `json:"error,omitempty"`
	Raw         json.RawMessage           `json:"raw"`
}

// ErrNotObject is returned when a response body is valid JSON but not an object.
var ErrNotObject = errors.New("response is not a JSON object")

// DecodeSnapshot parses the backend's flat JSON object.
func DecodeSnapshot(body []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		if json.Valid(trimmed) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("invalid JSON body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	isText := func(key string) bool {
		raw := bytes.TrimSpace(fields[key])
		return len(raw) > 0 && raw[0] == '"'
	}
	get := func(key string) Metric {
		raw, ok := fields[key]
		if !ok {
			return ""
		}
		var m Metric
		if err := m.UnmarshalJSON(raw); err != nil {
			return ""
		}
		return m
	}

	raw := new(bytes.Buffer)
	if err := json.Compact(raw, trimmed); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	snap := &Snapshot{
		Name:        get("sysName").String(),
		Description: get("sysDescr").String(),
		Location:    get("sysLocation").String(),
		Contact:     get("sysContact").String(),
		UpTime:      get("sysUpTime"),
		CPU:         get("cpuUsage"),
		RAM:         get("ramUsage"),
		Error:       get("error").String(),
		Raw:         json.RawMessage(raw.Bytes()),
	}
	for i := range snap.Interfaces {
		prefix := fmt.Sprintf("if%d_", i+1)
		status := get(prefix + "Status")
		snap.Interfaces[i] = Interface{
			Name:          get(prefix + "Name").String(),
			Status:        status,
			StatusNumeric: status.IsSet() && !isText(prefix+"Status"),
			InOctets:      get(prefix + "In"),
			OutOctets:     get(prefix + "Out"),
			ErrIn:         get(prefix + "ErrIn"),
			ErrOut:        get(prefix + "ErrOut"),
		}
	}
	return snap, nil
}
