package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/docstore/docstore-service/internal/core/docdb"
	domainerrors "github.com/docstore/docstore-service/internal/domain/errors"
)

// classify turns a backend error into a domain error. Rejections of write
// operations become write errors.
func classify(operation string, err error, write bool) error {
	if err == nil {
		return nil
	}
	if domainerrors.IsDomainError(err) {
		return err
	}

	msg := fmt.Sprintf("failed to %s", operation)
	var writeErr *docdb.WriteError
	switch {
	case errors.Is(err, docdb.ErrClientDisconnected):
		return domainerrors.NewConnectionClosedError(operation)
	case errors.Is(err, docdb.ErrConnection),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domainerrors.NewConnectionError(msg, err)
	case errors.As(err, &writeErr), write:
		return domainerrors.NewWriteError(msg, err, nil)
	default:
		return domainerrors.NewInternalError(msg, err)
	}
}
