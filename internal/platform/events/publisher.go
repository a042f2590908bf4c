package events

import (
	"context"

	"github.com/staffbook/staff_ledger_app/internal/core/domain"
)

// Publisher emits domain events after a reconciliation transition commits.
// Publishing is best effort: a failed publish is logged and never unwinds
// the transition that already happened.
type Publisher interface {
	PublishPaymentCreated(ctx context.Context, payment *domain.Payment)
	PublishPaymentReverted(ctx context.Context, payment *domain.Payment, revertedEntryIDs []string)
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPaymentCreated(context.Context, *domain.Payment)            {}
func (NoopPublisher) PublishPaymentReverted(context.Context, *domain.Payment, []string) {}
func (NoopPublisher) Close() error                                                      { return nil }
