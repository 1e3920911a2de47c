// Package models defines client-side data models mirroring the backend's
// REST representations. The client treats them as an external contract and
// enforces nothing beyond optional-field presence before display.
package models

// Page is the paginated list envelope returned by collection endpoints.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

// BatchResult summarizes a batch operation (imports, bulk resets, bulk
// submits). Per-item failures are reported as counts, not raw errors.
type BatchResult struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
}
