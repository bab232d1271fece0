package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v4"

	"pagos/internal/amqp"
	"pagos/internal/core"
	"pagos/internal/payments"
	"pagos/internal/sheets"
	"pagos/internal/store"
)

// ExportWorker mirrors payment mutations to the external audit sheet. The
// sheet is append-only: creates and updates append a row, deletes are logged
// and skipped.
type ExportWorker struct {
	collections store.Collections
	appender    sheets.RowAppender
	maxRetries  uint64
}

func NewExportWorker(collections store.Collections, appender sheets.RowAppender, maxRetries uint64) *ExportWorker {
	return &ExportWorker{
		collections: collections,
		appender:    appender,
		maxRetries:  maxRetries,
	}
}

// HandleEvent processes a single payment event from AMQP.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.PaymentEventMessage) error {
	slog.InfoContext(ctx, "Processing payment event",
		"op", msg.Op,
		"user_id", msg.UserID,
		"payment_id", msg.PaymentID)

	if msg.Op == payments.OpDeleted {
		// Nothing to remove from an append-only export.
		slog.InfoContext(ctx, "Skipping delete event", "payment_id", msg.PaymentID)
		return nil
	}

	p, ok, err := w.findPayment(ctx, msg.UserID, msg.PaymentID)
	if err != nil {
		return fmt.Errorf("load payment: %w", err)
	}
	if !ok {
		// The record was deleted between publish and consume; do not requeue.
		slog.WarnContext(ctx, "Payment no longer exists, skipping export",
			"user_id", msg.UserID, "payment_id", msg.PaymentID)
		return nil
	}

	return w.exportPayment(ctx, msg.UserID, p)
}

func (w *ExportWorker) findPayment(ctx context.Context, userID, paymentID string) (core.Payment, bool, error) {
	collection, err := w.collections.Load(ctx, userID)
	if err != nil {
		return core.Payment{}, false, err
	}
	for _, p := range collection {
		if p.ID == paymentID {
			return p, true, nil
		}
	}
	return core.Payment{}, false, nil
}

func (w *ExportWorker) exportPayment(ctx context.Context, userID string, p core.Payment) error {
	var ref string
	operation := func() error {
		var err error
		ref, err = w.appender.Append(ctx, userID, p)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), w.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Payment exported",
		"user_id", userID,
		"payment_id", p.ID,
		"amount", p.Amount,
		"sheet_ref", ref)
	return nil
}
