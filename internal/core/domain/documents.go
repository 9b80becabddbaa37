package domain

// LoadingDocData is the value object handed to the document renderer for the
// loading document. It carries everything the PDF needs so rendering stays
// free of repository access.
type LoadingDocData struct {
	Load  Load
	Items []LoadDetail
}

// BillOfLadingData is the value object for the bill of lading. Totals over
// miles and weight are computed by the renderer from the stop rows.
type BillOfLadingData struct {
	Load  Load
	Stops []StopDetail
}
