package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func statusPtr(s LoadStatus) *LoadStatus { return &s }

func TestComputeFinalStatus_DriverSetPromotesReady(t *testing.T) {
	current := Load{LoadID: "L100", Status: StatusReady, DriverName: ""}

	final, auto := ComputeFinalStatus(current, LoadPatch{DriverName: strPtr("J. Smith")})

	assert.Equal(t, StatusAssigned, final)
	assert.True(t, auto)
}

func TestComputeFinalStatus_DriverClearedDemotesAssigned(t *testing.T) {
	current := Load{LoadID: "L100", Status: StatusAssigned, DriverName: "J. Smith"}

	tests := []struct {
		name  string
		patch LoadPatch
	}{
		{"cleared to empty string", LoadPatch{DriverName: strPtr("")}},
		{"cleared to whitespace", LoadPatch{DriverName: strPtr("   ")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			final, auto := ComputeFinalStatus(current, tc.patch)
			assert.Equal(t, StatusReady, final)
			assert.True(t, auto)
		})
	}
}

func TestComputeFinalStatus_OmittedDriverUsesCurrentValue(t *testing.T) {
	// Assigned load whose stored driver is already empty demotes even when the
	// patch does not mention the driver at all.
	current := Load{LoadID: "L101", Status: StatusAssigned, DriverName: ""}
	final, auto := ComputeFinalStatus(current, LoadPatch{TrailerNo: strPtr("1234")})
	assert.Equal(t, StatusReady, final)
	assert.True(t, auto)

	// And a Ready load with a stored driver promotes on any unrelated edit.
	current = Load{LoadID: "L102", Status: StatusReady, DriverName: "K. Jones"}
	final, auto = ComputeFinalStatus(current, LoadPatch{TrailerNo: strPtr("1234")})
	assert.Equal(t, StatusAssigned, final)
	assert.True(t, auto)
}

func TestComputeFinalStatus_ExplicitStatusWins(t *testing.T) {
	tests := []struct {
		name    string
		current Load
		patch   LoadPatch
		want    LoadStatus
	}{
		{
			"manual override beats promotion",
			Load{Status: StatusReady, DriverName: ""},
			LoadPatch{DriverName: strPtr("J. Smith"), Status: statusPtr(StatusShipped)},
			StatusShipped,
		},
		{
			"manual override beats demotion",
			Load{Status: StatusAssigned, DriverName: "J. Smith"},
			LoadPatch{DriverName: strPtr(""), Status: statusPtr(StatusCancelled)},
			StatusCancelled,
		},
		{
			"manual Ready with a driver present is honored",
			Load{Status: StatusAssigned, DriverName: "J. Smith"},
			LoadPatch{Status: statusPtr(StatusReady)},
			StatusReady,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			final, auto := ComputeFinalStatus(tc.current, tc.patch)
			assert.Equal(t, tc.want, final)
			assert.False(t, auto)
		})
	}
}

func TestComputeFinalStatus_OtherStatusesUntouched(t *testing.T) {
	for _, status := range []LoadStatus{StatusOpen, StatusShipped, StatusClosed, StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			current := Load{Status: status, DriverName: ""}
			final, auto := ComputeFinalStatus(current, LoadPatch{DriverName: strPtr("J. Smith")})
			assert.Equal(t, status, final)
			assert.False(t, auto)
		})
	}
}

func TestComputeFinalStatus_WhitespaceDriverIsEmpty(t *testing.T) {
	current := Load{Status: StatusReady, DriverName: ""}
	final, auto := ComputeFinalStatus(current, LoadPatch{DriverName: strPtr("  \t ")})
	assert.Equal(t, StatusReady, final)
	assert.False(t, auto)
}

func TestLoadStatusRank(t *testing.T) {
	open, ok := StatusOpen.Rank()
	assert.True(t, ok)
	shipped, ok := StatusShipped.Rank()
	assert.True(t, ok)
	assert.Less(t, open, shipped)

	_, ok = LoadStatus("Bogus").Rank()
	assert.False(t, ok)
}

func TestLoadPatchApply(t *testing.T) {
	current := Load{
		LoadID:      "L200",
		ShipFromLoc: "HOU",
		CarrierCode: "JORD",
		Status:      StatusReady,
		DriverName:  "",
		TrailerNo:   "9001",
	}

	patch := LoadPatch{
		DriverName: strPtr("J. Smith"),
		TrailerNo:  strPtr("9001"), // unchanged, must not show up as a change
	}
	updated, changes := patch.Apply(current)

	assert.Equal(t, "J. Smith", updated.DriverName)
	assert.Len(t, changes, 1)
	assert.Equal(t, "driver_name", changes[0].FieldName)
	assert.Equal(t, "", changes[0].OldValue)
	assert.Equal(t, "J. Smith", changes[0].NewValue)

	// Empty patch produces no changes.
	_, changes = LoadPatch{}.Apply(current)
	assert.Empty(t, changes)
}
