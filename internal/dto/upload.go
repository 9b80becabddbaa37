package dto

// ImportResult summarizes one CSV import: how many rows were seen, how many
// were applied, and every accumulated problem. Errors abort nothing by
// themselves; a row with an error is skipped, a row with a warning is applied.
type ImportResult struct {
	RowCount  int      `json:"rowCount"`
	ValidRows int      `json:"validRows"`
	Errors    []string `json:"errors,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

// SyncResult summarizes one ERP workbook sync pass.
type SyncResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}
