// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "encoding/json"

// Documents, filters and patches travel as MongoDB relaxed extended JSON,
// so identifiers are written as {"$oid": "..."}.

// InsertDocumentsRequest represents the request body for inserting documents.
type InsertDocumentsRequest struct {
	Documents []json.RawMessage `json:"documents" binding:"required,min=1" swaggertype:"array,object"`
}

// UpdateDocumentsRequest represents the request body for updating documents.
type UpdateDocumentsRequest struct {
	Filter json.RawMessage `json:"filter" swaggertype:"object"`
	// Set maps fields to new values, or holds update operators.
	Set  json.RawMessage `json:"set" binding:"required" swaggertype:"object"`
	Many bool            `json:"many"`
}

// FindOneAndUpdateRequest represents the request body for find-one-and-update.
type FindOneAndUpdateRequest struct {
	Filter        json.RawMessage `json:"filter" swaggertype:"object"`
	Set           json.RawMessage `json:"set" binding:"required" swaggertype:"object"`
	ReturnUpdated bool            `json:"returnUpdated"`
}

// DeleteDocumentsRequest represents the request body for deleting by filter.
type DeleteDocumentsRequest struct {
	Filter json.RawMessage `json:"filter" binding:"required" swaggertype:"object"`
}

// FindDocumentsQuery represents the query string of a find request.
type FindDocumentsQuery struct {
	Filter  string   `form:"filter"`
	Sort    []string `form:"sort"`
	Limit   int64    `form:"limit" binding:"gte=0"`
	Skip    int64    `form:"skip" binding:"gte=0"`
	Exclude []string `form:"exclude"`
}
