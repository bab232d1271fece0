// Package payments implements the per-user payment record operations on top
// of a Collections store: list with filters, create, partial update, delete
// and aggregate stats. Every operation loads the user's full collection and
// mutations write it back wholesale.
package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"pagos/internal/core"
	"pagos/internal/store"
)

// ErrNotFound is returned by Update when no record carries the target id.
var ErrNotFound = errors.New("payment not found")

const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// EventPublisher fans mutation events out to the export pipeline. A nil
// publisher disables publishing; publish failures never fail the request.
type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, op, userID, paymentID string) error
}

type Service struct {
	collections store.Collections
	events      EventPublisher
}

func NewService(collections store.Collections, events EventPublisher) *Service {
	return &Service{collections: collections, events: events}
}

// CreateInput carries the caller-supplied fields of a new payment. Identity
// and timestamps are always generated server-side.
type CreateInput struct {
	Amount      int64         `json:"amount"`
	Status      core.Status   `json:"status"`
	Method      core.Method   `json:"method"`
	Type        core.Type     `json:"type"`
	Description string        `json:"description"`
	Category    core.Category `json:"category"`
	Notes       string        `json:"notes"`
}

// Changes is a partial update: nil fields keep their current value.
type Changes struct {
	Amount      *int64         `json:"amount"`
	Status      *core.Status   `json:"status"`
	Method      *core.Method   `json:"method"`
	Type        *core.Type     `json:"type"`
	Description *string        `json:"description"`
	Category    *core.Category `json:"category"`
	Notes       *string        `json:"notes"`
}

// List returns the user's collection with the filter applied, insertion order
// preserved (most recently created first).
func (s *Service) List(ctx context.Context, userID string, filter core.Filter) ([]core.Payment, error) {
	payments, err := s.collections.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	return filter.Apply(payments), nil
}

// Create validates the input, assigns identity and timestamps, and prepends
// the new record to the user's collection.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (core.Payment, error) {
	now := time.Now().UTC()
	p := core.Payment{
		ID:          newID(now),
		Amount:      in.Amount,
		Currency:    core.Currency,
		Status:      in.Status,
		Method:      in.Method,
		Type:        in.Type,
		Description: in.Description,
		Category:    in.Category,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Status == core.StatusCompleted {
		p.CompletedAt = &now
	}
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}

	payments, err := s.collections.Load(ctx, userID)
	if err != nil {
		return core.Payment{}, fmt.Errorf("load payments: %w", err)
	}
	payments = append([]core.Payment{p}, payments...)
	if err := s.collections.Save(ctx, userID, payments); err != nil {
		return core.Payment{}, fmt.Errorf("save payments: %w", err)
	}

	s.publish(ctx, OpCreated, userID, p.ID)
	return p, nil
}

// Update merges the supplied changes over the stored record and refreshes
// updatedAt. A transition to completed stamps completedAt once; reverting to
// pending never clears it.
func (s *Service) Update(ctx context.Context, userID, id string, changes Changes) (core.Payment, error) {
	payments, err := s.collections.Load(ctx, userID)
	if err != nil {
		return core.Payment{}, fmt.Errorf("load payments: %w", err)
	}

	idx := -1
	for i, p := range payments {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Payment{}, ErrNotFound
	}

	now := time.Now().UTC()
	p := payments[idx]
	if changes.Amount != nil {
		p.Amount = *changes.Amount
	}
	if changes.Status != nil {
		p.Status = *changes.Status
	}
	if changes.Method != nil {
		p.Method = *changes.Method
	}
	if changes.Type != nil {
		p.Type = *changes.Type
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.Category != nil {
		p.Category = *changes.Category
	}
	if changes.Notes != nil {
		p.Notes = *changes.Notes
	}
	p.UpdatedAt = now
	if p.Status == core.StatusCompleted && p.CompletedAt == nil {
		p.CompletedAt = &now
	}

	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}

	payments[idx] = p
	if err := s.collections.Save(ctx, userID, payments); err != nil {
		return core.Payment{}, fmt.Errorf("save payments: %w", err)
	}

	s.publish(ctx, OpUpdated, userID, p.ID)
	return p, nil
}

// Delete removes the record with the given id. Deleting an id that does not
// exist is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	payments, err := s.collections.Load(ctx, userID)
	if err != nil {
		return fmt.Errorf("load payments: %w", err)
	}

	kept := payments[:0]
	for _, p := range payments {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if err := s.collections.Save(ctx, userID, kept); err != nil {
		return fmt.Errorf("save payments: %w", err)
	}

	s.publish(ctx, OpDeleted, userID, id)
	return nil
}

// Stats recomputes the aggregates from the full collection on every call.
func (s *Service) Stats(ctx context.Context, userID string) (core.Stats, error) {
	payments, err := s.collections.Load(ctx, userID)
	if err != nil {
		return core.Stats{}, fmt.Errorf("load payments: %w", err)
	}
	return core.ComputeStats(payments), nil
}

func (s *Service) publish(ctx context.Context, op, userID, paymentID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishPaymentEvent(ctx, op, userID, paymentID); err != nil {
		// The record is already persisted; the export pipeline catches up later.
		slog.ErrorContext(ctx, "Failed to publish payment event",
			"op", op, "user_id", userID, "payment_id", paymentID, "error", err)
	}
}

// newID builds record ids like TRX-1756640000000-3f2a9c1d: the millisecond
// timestamp keeps them roughly sortable, the random suffix keeps them unique
// within a burst.
func newID(now time.Time) string {
	return fmt.Sprintf("TRX-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
