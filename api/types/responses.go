package types

import (
	"github.com/killallgit/book-search/internal/models"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// SearchResponse for the one-shot search endpoint. A failed fetch is
// reported in Warning while Result holds the empty fallback.
type SearchResponse struct {
	BaseResponse
	Search    models.CurrentSearch `json:"search"`
	Result    models.SearchResult  `json:"result"`
	Paginator models.Paginator     `json:"paginator"`
	Warning   string               `json:"warning,omitempty"`
}

// SessionResponse describes a session and its current state
type SessionResponse struct {
	BaseResponse
	ID     string                `json:"id"`
	Search *models.CurrentSearch `json:"search"`
	Query  string                `json:"query"` // address-bar form of Search
	URL    string                `json:"url"`   // page URL restoring Search
	Events string                `json:"events"`
}

// HistoryEntry is one recorded fetch
type HistoryEntry struct {
	ID         uint   `json:"id"`
	SearchText string `json:"searchText"`
	PageSize   int    `json:"pageSize"`
	Page       int    `json:"page"`
	NumFound   int    `json:"numFound"`
	Failed     bool   `json:"failed"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
	CreatedAt  int64  `json:"createdAt"` // Unix timestamp
}

// HistoryResponse for the history endpoint
type HistoryResponse struct {
	BaseResponse
	Searches []HistoryEntry `json:"searches"`
	Count    int            `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Timestamp string                 `json:"timestamp"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// FromRecords converts stored records to history entries
func FromRecords(records []models.SearchRecord) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, HistoryEntry{
			ID:         r.ID,
			SearchText: r.SearchText,
			PageSize:   r.PageSize,
			Page:       r.Page,
			NumFound:   r.NumFound,
			Failed:     r.Failed,
			Error:      r.Error,
			DurationMs: r.DurationMs,
			CreatedAt:  r.CreatedAt.Unix(),
		})
	}
	return entries
}
