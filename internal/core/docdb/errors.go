package docdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocuments is returned by SingleResult.Err when nothing matched.
	ErrNoDocuments = errors.New("no documents in result")

	// ErrConnection marks failures to reach or talk to the server.
	ErrConnection = errors.New("connection failure")

	// ErrClientDisconnected is returned by operations on a disconnected client.
	ErrClientDisconnected = errors.New("client is disconnected")
)

// WriteError reports a document the store refused to write.
type WriteError struct {
	// Index is the position of the rejected document in a bulk write.
	Index   int
	Code    int
	Message string
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write error at index %d (code %d): %s", e.Index, e.Code, e.Message)
}
