// Package units formats raw backend values for display.
package units

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tonhe/snmpdash/internal/engine"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count in 1024-based units with at most decimals
// fractional digits; trailing zeros are dropped ("1 KB", "1.5 MB").
// Zero, negative and non-finite values render as "0 B".
func FormatBytes(bytes float64, decimals int) string {
	if bytes <= 0 || math.IsNaN(bytes) || math.IsInf(bytes, 0) {
		return "0 B"
	}
	if decimals < 0 {
		decimals = 0
	}

	i := 0
	v := bytes
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}

	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		rounded = v
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[i]
}

// FormatUptime renders hundredths of a second as "<d>d <h>h <m>m".
func FormatUptime(ticks int64) string {
	if ticks < 0 {
		return "N/A"
	}
	seconds := ticks / 100
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// Bytes formats a metric holding a byte count with two decimals.
// Missing or non-numeric values render as "0 B".
func Bytes(m engine.Metric) string {
	v, _ := m.Float()
	return FormatBytes(v, 2)
}

// Uptime formats a metric holding uptime ticks. Missing or non-numeric
// values render as "N/A".
func Uptime(m engine.Metric) string {
	ticks, ok := m.Int()
	if !ok {
		return "N/A"
	}
	return FormatUptime(ticks)
}

// Percent formats a CPU metric as "<value>%", or "--%" when it is not numeric.
func Percent(m engine.Metric) string {
	v, ok := m.Float()
	if !ok {
		return "--%"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Count returns the metric text, or "0" when it is empty.
func Count(m engine.Metric) string {
	if !m.IsSet() {
		return "0"
	}
	return m.String()
}
