package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleLoadFilter(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    LoadFilter
	}{
		{
			"admin sees everything",
			UserProfile{Organization: OrgWillbanks, Role: RoleAdmin},
			LoadFilter{},
		},
		{
			"wsi with location filter",
			UserProfile{Organization: OrgWSI, LocationFilter: "WSI"},
			LoadFilter{ShipFromLoc: "WSI"},
		},
		{
			"wsi without location filter is unfiltered",
			UserProfile{Organization: OrgWSI},
			LoadFilter{},
		},
		{
			"jordan with carrier filter restricts status too",
			UserProfile{Organization: OrgJordan, CarrierFilter: "Jordan"},
			LoadFilter{CarrierCode: "Jordan", Statuses: []LoadStatus{StatusReady, StatusAssigned, StatusShipped}},
		},
		{
			"jordan without carrier filter is unfiltered",
			UserProfile{Organization: OrgJordan},
			LoadFilter{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := VisibleLoadFilter(tc.profile)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.IsUnfiltered(), got.IsUnfiltered())
		})
	}
}

func TestDeriveProfileDefaults(t *testing.T) {
	org, role, loc, carrier := DeriveProfileDefaults("coordinator@WSIsteel.example")
	assert.Equal(t, OrgWSI, org)
	assert.Equal(t, RoleOperator, role)
	assert.Equal(t, "WSI", loc)
	assert.Empty(t, carrier)

	org, role, loc, carrier = DeriveProfileDefaults("dispatch@jordancarriers.example")
	assert.Equal(t, OrgJordan, org)
	assert.Equal(t, RoleOperator, role)
	assert.Empty(t, loc)
	assert.Equal(t, "Jordan", carrier)

	org, role, loc, carrier = DeriveProfileDefaults("admin@willbanks.example")
	assert.Equal(t, OrgWillbanks, org)
	assert.Equal(t, RoleAdmin, role)
	assert.Empty(t, loc)
	assert.Empty(t, carrier)
}
