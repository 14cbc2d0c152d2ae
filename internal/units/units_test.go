package units

import (
	"testing"

	"github.com/tonhe/snmpdash/internal/engine"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    float64
		decimals int
		expected string
	}{
		{0, 2, "0 B"},
		{-5, 2, "0 B"},
		{512, 2, "512 B"},
		{1024, 2, "1 KB"},
		{1536, 2, "1.5 KB"},
		{1073741824, 2, "1 GB"},
		{1234567, 2, "1.18 MB"},
		{1234567, 0, "1 MB"},
		{1 << 60, 2, "1024 PB"},
	}
	for _, tt := range tests {
		got := FormatBytes(tt.bytes, tt.decimals)
		if got != tt.expected {
			t.Errorf("FormatBytes(%v, %d) = %q, want %q", tt.bytes, tt.decimals, got, tt.expected)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		ticks    int64
		expected string
	}{
		{8640000, "1d 0h 0m"},
		{0, "0d 0h 0m"},
		{366000, "0d 1h 1m"},
		{-1, "N/A"},
	}
	for _, tt := range tests {
		got := FormatUptime(tt.ticks)
		if got != tt.expected {
			t.Errorf("FormatUptime(%d) = %q, want %q", tt.ticks, got, tt.expected)
		}
	}
}

func TestMetricHelpers(t *testing.T) {
	if got := Bytes(engine.Metric("1073741824")); got != "1 GB" {
		t.Errorf("Bytes() = %q", got)
	}
	if got := Bytes(""); got != "0 B" {
		t.Errorf("Bytes(empty) = %q", got)
	}
	if got := Uptime("8640000"); got != "1d 0h 0m" {
		t.Errorf("Uptime() = %q", got)
	}
	if got := Uptime(""); got != "N/A" {
		t.Errorf("Uptime(empty) = %q", got)
	}
	if got := Percent("45.2"); got != "45.2%" {
		t.Errorf("Percent() = %q", got)
	}
	if got := Percent("x"); got != "--%" {
		t.Errorf("Percent(x) = %q", got)
	}
	if got := Count(""); got != "0" {
		t.Errorf("Count(empty) = %q", got)
	}
}
