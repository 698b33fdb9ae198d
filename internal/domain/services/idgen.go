package services

import (
	"strings"

	"github.com/google/uuid"
)

// NewIdentitySet holds freshly generated replacement ids for one telemetry
// modification run.
type NewIdentitySet struct {
	DeviceID  string
	MachineID string
	SessionID string
}

// GenerateIdentitySet mints a new device/machine/session id triple.
func GenerateIdentitySet() NewIdentitySet {
	return NewIdentitySet{
		DeviceID:  "device_" + hexUUID(),
		MachineID: "machine_" + hexUUID(),
		SessionID: hexUUID(),
	}
}

// ChooseReplacement picks which new id a matched field receives, by
// substring on the matched pattern or value name; generic id-shaped names
// default to the device id.
func (s NewIdentitySet) ChooseReplacement(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "device"):
		return s.DeviceID
	case strings.Contains(lower, "machine"):
		return s.MachineID
	case strings.Contains(lower, "session"):
		return s.SessionID
	default:
		return s.DeviceID
	}
}

// hexUUID returns a UUIDv4 as a 32-character hex string.
func hexUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
