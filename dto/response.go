package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// BillAuditResponse is the final response structure.
type BillAuditResponse struct {
	Audit       BillAudit     `json:"audit"`
	Savings     SavingsResult `json:"savings"`
	PageCount   int           `json:"page_count"`
	ProcessedAt string        `json:"processed_at"`
}
