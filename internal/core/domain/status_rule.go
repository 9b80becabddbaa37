package domain

import "strings"

// ComputeFinalStatus resolves the status a load must end up with after a
// patch is applied. It is pure and performs no I/O.
//
// An explicit status in the patch always wins; no automatic rule runs on top
// of a manual override. Otherwise the presence of a driver name (the patched
// value if given, else the current one, whitespace treated as empty) drives
// the only automatic transitions: Ready promotes to Assigned when a driver is
// present, Assigned demotes to Ready when the driver is cleared. Every other
// status is left untouched.
//
// The second return value reports whether the automatic rule fired.
func ComputeFinalStatus(current Load, patch LoadPatch) (LoadStatus, bool) {
	if patch.Status != nil {
		return *patch.Status, false
	}

	driver := current.DriverName
	if patch.DriverName != nil {
		driver = *patch.DriverName
	}
	hasDriver := strings.TrimSpace(driver) != ""

	switch {
	case hasDriver && current.Status == StatusReady:
		return StatusAssigned, true
	case !hasDriver && current.Status == StatusAssigned:
		return StatusReady, true
	}
	return current.Status, false
}
