package engine

import (
	"errors"
	"testing"
)

const testSnapshotJSON = `{
	"sysName": "rtr-core-1",
	"sysDescr": "Cisco IOS Software",
	"sysLocation": "Server room",
	"sysContact": "noc@example.com",
	"sysUpTime": "8640000",
	"cpuUsage": "45.2",
	"ramUsage": 1073741824,
	"if1_Name": "GigabitEthernet0/0",
	"if1_Status": "1",
	"if1_In": "123456",
	"if1_Out": "654321",
	"if1_ErrIn": "0",
	"if1_ErrOut": "0",
	"if2_Name": "GigabitEthernet0/1",
	"if2_Status": "2",
	"if2_In": "10",
	"if2_Out": "20",
	"if2_ErrIn": "0",
	"if2_ErrOut": "0"
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(testSnapshotJSON))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error: %v", err)
	}
	if snap.Name != "rtr-core-1" {
		t.Errorf("expected name rtr-core-1, got %q", snap.Name)
	}
	if snap.Location != "Server room" || snap.Contact != "noc@example.com" {
		t.Errorf("unexpected location/contact %q/%q", snap.Location, snap.Contact)
	}
	if cpu, ok := snap.CPU.Float(); !ok || cpu != 45.2 {
		t.Errorf("expected cpu 45.2, got %v (%v)", cpu, ok)
	}
	if ram, ok := snap.RAM.Float(); !ok || ram != 1073741824 {
		t.Errorf("expected numeric ram to decode, got %v (%v)", ram, ok)
	}
	if !snap.Interfaces[0].Up() {
		t.Error("expected interface 1 up")
	}
	if snap.Interfaces[1].Up() {
		t.Error("expected interface 2 down")
	}
	if snap.Interfaces[1].Name != "GigabitEthernet0/1" {
		t.Errorf("unexpected interface 2 name %q", snap.Interfaces[1].Name)
	}
	if snap.Interfaces[0].InOctets != "123456" {
		t.Errorf("unexpected if1 in %q", snap.Interfaces[0].InOctets)
	}
	if len(snap.Raw) == 0 {
		t.Error("expected raw JSON to be kept")
	}
}

func TestDecodeSnapshotMissingFields(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"cpuUsage": null, "error": "device offline"}`))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error: %v", err)
	}
	if snap.CPU.IsSet() {
		t.Error("null cpu should decode as unset")
	}
	if snap.Error != "device offline" {
		t.Errorf("expected error field, got %q", snap.Error)
	}
	if snap.Interfaces[1].Status != "" {
		t.Errorf("missing status should be empty, got %q", snap.Interfaces[1].Status)
	}
}

func TestDecodeSnapshotNotObject(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `"text"`, `42`, `null`} {
		_, err := DecodeSnapshot([]byte(body))
		if !errors.Is(err, ErrNotObject) {
			t.Errorf("DecodeSnapshot(%s): expected ErrNotObject, got %v", body, err)
		}
	}
	if _, err := DecodeSnapshot([]byte(`<html>`)); err == nil {
		t.Error("expected error for non-JSON body")
	}
	if _, err := DecodeSnapshot(nil); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestMetricInt(t *testing.T) {
	tests := []struct {
		in   Metric
		want int64
		ok   bool
	}{
		{"3", 3, true},
		{" 12 ", 12, true},
		{"-1", -1, true},
		{"3.7", 3, true},
		{"3 errors", 3, true},
		{"+7", 7, true},
		{"1e3", 1, true},
		{"", 0, false},
		{"-", 0, false},
		{"abc", 0, false},
		{"x3", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.in.Int()
		if got != tt.want || ok != tt.ok {
			t.Errorf("Metric(%q).Int() = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMetricUnmarshalNumber(t *testing.T) {
	var m Metric
	if err := m.UnmarshalJSON([]byte(`95.5`)); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if v, ok := m.Float(); !ok || v != 95.5 {
		t.Errorf("expected 95.5, got %v (%v)", v, ok)
	}
}

func TestDecodeNumericStatus(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"if1_Status":1,"if2_Status":"2"}`))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error: %v", err)
	}
	if1, if2 := snap.Interfaces[0], snap.Interfaces[1]
	if !if1.StatusNumeric || if1.Up() || if1.Down() {
		t.Errorf("numeric status 1 should be neither up nor down: %+v", if1)
	}
	if if2.StatusNumeric || !if2.Down() {
		t.Errorf("text status \"2\" should be down: %+v", if2)
	}
}
