// Package sheets declares the outbound ports of the export pipeline.
package sheets

import (
	"context"

	"pagos/internal/core"
)

// RowAppender appends a payment to the external audit sheet and returns a
// row reference for logging.
type RowAppender interface {
	Append(ctx context.Context, userID string, p core.Payment) (rowRef string, err error)
}
