package domain

// LoadFilter is the read filter a listing query must apply for a given user.
// Zero-value fields mean "no restriction".
type LoadFilter struct {
	ShipFromLoc string
	CarrierCode string
	Statuses    []LoadStatus
}

// IsUnfiltered reports whether the filter restricts nothing.
func (f LoadFilter) IsUnfiltered() bool {
	return f.ShipFromLoc == "" && f.CarrierCode == "" && len(f.Statuses) == 0
}

// VisibleLoadFilter maps a user profile to the row filter applied to every
// load listing. WSI users with a location filter see only their shipping
// location; Jordan users with a carrier filter see only their carrier's loads
// that are in flight (Ready, Assigned, or Shipped). Everyone else sees all
// loads.
func VisibleLoadFilter(profile UserProfile) LoadFilter {
	switch {
	case profile.Organization == OrgWSI && profile.LocationFilter != "":
		return LoadFilter{ShipFromLoc: profile.LocationFilter}
	case profile.Organization == OrgJordan && profile.CarrierFilter != "":
		return LoadFilter{
			CarrierCode: profile.CarrierFilter,
			Statuses:    []LoadStatus{StatusReady, StatusAssigned, StatusShipped},
		}
	}
	return LoadFilter{}
}
