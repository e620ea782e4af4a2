package dto

// ImportRowErrorDTO records why a spreadsheet row was rejected. Row numbers
// are 1-based and include the header row, matching what the admin sees in the
// spreadsheet application.
type ImportRowErrorDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummaryDTO reports the partial-success outcome of a student import.
type ImportSummaryDTO struct {
	BatchID  string              `json:"batch_id"`
	Total    int                 `json:"total"`
	Imported int                 `json:"imported"`
	Rejected int                 `json:"rejected"`
	Errors   []ImportRowErrorDTO `json:"errors,omitempty"`
}
