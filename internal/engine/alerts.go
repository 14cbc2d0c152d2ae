package engine

import (
	"fmt"
	"strconv"
)

// Alert rule identifiers. They are stable across cycles.
const (
	AlertHighCPU       = 1
	AlertInterfaceDown = 2
	AlertTxErrors      = 3
)

// DefaultInterfaceNames are displayed when the backend omits an interface name.
var DefaultInterfaceNames = [InterfaceCount]string{"GigabitEthernet0/0", "GigabitEthernet0/1"}

// Evaluate derives the alert set for a snapshot. Every rule is checked
// independently and the result is ordered by rule ID. A nil snapshot yields
// no alerts.
func Evaluate(snap *Snapshot) []Alert {
	alerts := []Alert{}
	if snap == nil {
		return alerts
	}

	if cpu, ok := snap.CPU.Float(); ok && cpu > CPUThreshold {
		alerts = append(alerts, Alert{
			ID:       AlertHighCPU,
			Severity: SeverityCritical,
			Message: fmt.Sprintf("CRITICAL: CPU load is %s%% (threshold: %s%%)",
				strconv.FormatFloat(cpu, 'f', -1, 64),
				strconv.FormatFloat(CPUThreshold, 'f', -1, 64)),
		})
	}

	// Only the second interface is checked for link state.
	if snap.Interfaces[1].Down() {
		alerts = append(alerts, Alert{
			ID:       AlertInterfaceDown,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("WARNING: interface %s is DOWN", snap.Interfaces[1].DisplayName(DefaultInterfaceNames[1])),
		})
	}

	// Only the first interface is checked for transmission errors.
	if snap.Interfaces[0].HasErrors() {
		alerts = append(alerts, Alert{
			ID:       AlertTxErrors,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Transmission errors detected on %s", snap.Interfaces[0].DisplayName(DefaultInterfaceNames[0])),
		})
	}

	return alerts
}
