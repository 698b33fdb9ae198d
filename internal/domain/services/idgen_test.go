package services

import (
	"strings"
	"testing"
)

func TestGenerateIdentitySet_Shape(t *testing.T) {
	ids := GenerateIdentitySet()

	if !strings.HasPrefix(ids.DeviceID, "device_") {
		t.Errorf("DeviceID = %q, want device_ prefix", ids.DeviceID)
	}
	if !strings.HasPrefix(ids.MachineID, "machine_") {
		t.Errorf("MachineID = %q, want machine_ prefix", ids.MachineID)
	}
	if len(ids.SessionID) != 32 {
		t.Errorf("SessionID length = %d, want 32", len(ids.SessionID))
	}

	other := GenerateIdentitySet()
	if ids.DeviceID == other.DeviceID {
		t.Error("two generated device ids are identical")
	}
}

func TestChooseReplacement(t *testing.T) {
	ids := GenerateIdentitySet()

	cases := []struct {
		name string
		want string
	}{
		{"deviceId", ids.DeviceID},
		{"machine_id", ids.MachineID},
		{"sessionId", ids.SessionID},
		{"uuid", ids.DeviceID},
		{"installation_id", ids.DeviceID},
	}
	for _, c := range cases {
		if got := ids.ChooseReplacement(c.name); got != c.want {
			t.Errorf("ChooseReplacement(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
