package dto

// StatusCount is one row of the status summary.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// StatusSummaryResponse is the per-status load count feeding the dashboard
// summary cards, computed within the caller's visibility filter.
type StatusSummaryResponse struct {
	Total  int64         `json:"total"`
	Counts []StatusCount `json:"counts"`
}
