package dto

import "encoding/json"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// InsertDocumentsResponse lists the generated IDs in input order.
type InsertDocumentsResponse struct {
	InsertedIDs []string `json:"insertedIds"`
}

// DocumentsResponse represents a list of documents.
type DocumentsResponse struct {
	Documents []json.RawMessage `json:"documents" swaggertype:"array,object"`
	Count     int               `json:"count"`
}

// UpdateDocumentsResponse represents the outcome of an update.
type UpdateDocumentsResponse struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
}

// DeleteDocumentsResponse represents the outcome of a delete.
type DeleteDocumentsResponse struct {
	Deleted int64 `json:"deleted"`
}
