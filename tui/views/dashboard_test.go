package views

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/tui/styles"
)

const testPayload = `{
	"sysName": "core-rtr-01",
	"sysDescr": "Cisco IOS",
	"sysLocation": "DC1",
	"sysContact": "noc@example.com",
	"sysUpTime": "8640000",
	"cpuUsage": "91",
	"ramUsage": "1048576",
	"if1_Name": "Gi0/0", "if1_Status": "1", "if1_In": "1024", "if1_Out": "2048", "if1_ErrIn": "3", "if1_ErrOut": "0",
	"if2_Name": "Gi0/1", "if2_Status": "2", "if2_In": "0", "if2_Out": "0", "if2_ErrIn": "0", "if2_ErrOut": "0"
}`

func testState(t *testing.T) engine.State {
	t.Helper()
	snap, err := engine.DecodeSnapshot([]byte(testPayload))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	return engine.State{
		Snapshot: snap,
		Alerts:   engine.Evaluate(snap),
		History: []engine.HistoryPoint{
			{Time: time.Now(), Label: "12:00:00", CPU: 40, RAM: 1 << 20, RAMValid: true},
			{Time: time.Now(), Label: "12:00:05", CPU: 91, RAM: 1 << 20, RAMValid: true},
		},
		Conn:    engine.ConnectionState{Debug: "received data", Attempts: 2},
		Cycle:   2,
		BaseURL: engine.DefaultBaseURL,
	}
}

func newTestDashboard(t *testing.T) DashboardView {
	v := NewDashboardView(styles.DefaultTheme)
	v.SetSize(160, 200)
	v.SetState(testState(t))
	return v
}

func TestDashboardWaitingBeforeFirstState(t *testing.T) {
	v := NewDashboardView(styles.DefaultTheme)
	v.SetSize(80, 20)
	if out := v.View(); !strings.Contains(out, "Waiting for first reading") {
		t.Errorf("expected waiting message, got %q", out)
	}
}

func TestDashboardRendersReading(t *testing.T) {
	out := newTestDashboard(t).View()
	for _, want := range []string{
		"core-rtr-01",
		"ONLINE",
		"1d 0h 0m",
		"CRITICAL: CPU load is 91% (threshold: 80%)",
		"WARNING: interface Gi0/1 is DOWN",
		"Transmission errors detected on Gi0/0",
		"Gi0/0",
		"UP",
		"DOWN",
		"1 KB",
		"2 KB",
		"1 MB",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestDashboardConnectionErrorBanner(t *testing.T) {
	v := newTestDashboard(t)
	st := testState(t)
	st.Conn.Error = "connection error: refused"
	v.SetState(st)
	if out := v.View(); !strings.Contains(out, "connection error: refused") {
		t.Error("expected connection error banner")
	}
}

func TestDashboardOfflineBadge(t *testing.T) {
	v := newTestDashboard(t)
	st := testState(t)
	st.Snapshot.Error = "device unreachable"
	v.SetState(st)
	out := v.View()
	if !strings.Contains(out, "OFFLINE") {
		t.Error("expected OFFLINE badge")
	}
	if !strings.Contains(out, "device unreachable") {
		t.Error("expected snapshot error in status card")
	}
}

func TestDashboardDebugToggle(t *testing.T) {
	v := newTestDashboard(t)
	if strings.Contains(v.View(), "trace:") {
		t.Fatal("debug panel should be hidden by default")
	}
	v.ToggleDebug()
	if !v.DebugVisible() {
		t.Fatal("expected debug panel visible")
	}
	out := v.View()
	for _, want := range []string{"trace:", "received data", engine.DefaultBaseURL + engine.SnapshotPath, "2/20 points"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected debug output to contain %q", want)
		}
	}
}

func TestDashboardClipsToHeight(t *testing.T) {
	v := newTestDashboard(t)
	v.SetSize(160, 5)
	if n := len(strings.Split(v.View(), "\n")); n > 5 {
		t.Errorf("expected at most 5 lines, got %d", n)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		max      int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.expected)
		}
	}
}

func TestDashboardRAMSeriesSkipsInvalidPoints(t *testing.T) {
	v := newTestDashboard(t)
	st := testState(t)
	st.History = []engine.HistoryPoint{
		{Label: "12:00:00", CPU: 10, RAM: 4096, RAMValid: true},
		{Label: "12:00:05", CPU: 20, RAM: 0, RAMValid: false},
		{Label: "12:00:10", CPU: 30, RAM: 8192, RAMValid: true},
	}
	v.SetState(st)

	got := v.ramSeries()
	if len(got) != 2 || got[0] != 4096 || got[1] != 8192 {
		t.Errorf("expected [4096 8192], got %v", got)
	}
}

func TestPadMultibyte(t *testing.T) {
	tests := []struct {
		in    string
		width int
		left  bool
		want  string
	}{
		{"Gi0/0", 8, false, "Gi0/0   "},
		{"Gi0/0", 8, true, "   Gi0/0"},
		{"łącze-główne", 5, false, "łącze"},
		{"łącze", 7, true, "  łącze"},
		{"abc", 0, false, ""},
	}
	for _, tt := range tests {
		got := padRight(tt.in, tt.width)
		if tt.left {
			got = padLeft(tt.in, tt.width)
		}
		if got != tt.want {
			t.Errorf("pad(%q, %d, left=%v) = %q, want %q", tt.in, tt.width, tt.left, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("pad(%q, %d) produced invalid UTF-8", tt.in, tt.width)
		}
	}
}
