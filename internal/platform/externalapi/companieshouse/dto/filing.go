package dto

// FilingHistoryItem is one entry of GET /company/{number}/filing-history.
type FilingHistoryItem struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Date        string `json:"date"`
	Links       struct {
		DocumentMetadata string `json:"document_metadata"`
		Self             string `json:"self"`
	} `json:"links"`
}

// FilingHistoryResponse is the body of GET /company/{number}/filing-history.
type FilingHistoryResponse struct {
	Items               []FilingHistoryItem `json:"items"`
	FilingHistoryStatus string              `json:"filing_history_status"`
}
