package web

import (
	"github.com/tonhe/snmpdash/internal/engine"
	"github.com/tonhe/snmpdash/internal/units"
)

// InterfaceView is one formatted row of the interface table.
type InterfaceView struct {
	Name      string `json:"name"`
	Up        bool   `json:"up"`
	In        string `json:"in"`
	Out       string `json:"out"`
	ErrIn     string `json:"errIn"`
	ErrOut    string `json:"errOut"`
	HasErrors bool   `json:"hasErrors"`
}

// Display holds server-side formatted values so the page does no unit math.
type Display struct {
	Online     bool            `json:"online"`
	Uptime     string          `json:"uptime"`
	CPU        string          `json:"cpu"`
	CPUHigh    bool            `json:"cpuHigh"`
	RAM        string          `json:"ram"`
	Interfaces []InterfaceView `json:"interfaces"`
}

// StateView is the JSON document served on /api/state and pushed over /api/ws.
type StateView struct {
	engine.State
	Display      Display `json:"display"`
	Threshold    float64 `json:"threshold"`
	PollInterval float64 `json:"pollIntervalSeconds"`
	ReportURL    string  `json:"reportUrl"`
}

// NewStateView decorates st with display strings.
func NewStateView(st engine.State) StateView {
	v := StateView{
		State:        st,
		Threshold:    engine.CPUThreshold,
		PollInterval: engine.PollInterval.Seconds(),
		ReportURL:    reportRoute,
		Display: Display{
			Online:     st.Online(),
			Uptime:     "N/A",
			CPU:        "--%",
			RAM:        "0 B",
			Interfaces: []InterfaceView{},
		},
	}
	if v.State.Alerts == nil {
		v.State.Alerts = []engine.Alert{}
	}
	if v.State.History == nil {
		v.State.History = []engine.HistoryPoint{}
	}

	snap := st.Snapshot
	if snap == nil {
		return v
	}
	v.Display.Uptime = units.Uptime(snap.UpTime)
	v.Display.CPU = units.Percent(snap.CPU)
	if cpu, ok := snap.CPU.Float(); ok && cpu > engine.CPUThreshold {
		v.Display.CPUHigh = true
	}
	v.Display.RAM = units.Bytes(snap.RAM)
	for i, iface := range snap.Interfaces {
		v.Display.Interfaces = append(v.Display.Interfaces, InterfaceView{
			Name:      iface.DisplayName(engine.DefaultInterfaceNames[i]),
			Up:        iface.Up(),
			In:        units.Bytes(iface.InOctets),
			Out:       units.Bytes(iface.OutOctets),
			ErrIn:     units.Count(iface.ErrIn),
			ErrOut:    units.Count(iface.ErrOut),
			HasErrors: iface.HasErrors(),
		})
	}
	return v
}
