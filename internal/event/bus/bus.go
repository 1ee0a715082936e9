// Package bus implements the in-process publish/subscribe router for domain
// events. It fans an envelope out to every handler registered for the event
// name, isolating each handler so one failure cannot suppress the others.
package bus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/metrics"
)

// Handler reacts to a single event type. Implementations must treat delivery
// as at-least-once and must not rely on errors propagating past the bus.
type Handler interface {
	Handle(ctx context.Context, envelope *domain.Envelope) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, envelope *domain.Envelope) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, envelope *domain.Envelope) error {
	return f(ctx, envelope)
}

// PublishError reports a failure that happened before any handler ran. Handler
// failures are never surfaced through it.
type PublishError struct {
	EventName string
	Err       error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	return fmt.Sprintf("publish %q: %v", e.EventName, e.Err)
}

// Unwrap returns the underlying error.
func (e *PublishError) Unwrap() error {
	return e.Err
}

// registration pairs a handler with a stable name used in diagnostics.
type registration struct {
	name    string
	handler Handler
}

// Bus routes envelopes to subscribed handlers. The subscription table is built
// once during process initialization; Publish may be called concurrently.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]registration
	logger   *slog.Logger
	metrics  metrics.BusinessMetrics
}

// New creates a new event bus. The metrics recorder is optional.
func New(logger *slog.Logger, businessMetrics metrics.BusinessMetrics) *Bus {
	return &Bus{
		handlers: make(map[string][]registration),
		logger:   logger,
		metrics:  businessMetrics,
	}
}

// Subscribe registers a handler for a named event type. Multiple handlers per
// event name are permitted; they are invoked in registration order.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], registration{
		name:    fmt.Sprintf("%T", handler),
		handler: handler,
	})
}

// Publish enriches the envelope and synchronously invokes every handler
// registered for its name. A handler failure (error or panic) is caught and
// logged but never propagated to the caller nor to sibling handlers. A
// PublishError is returned only when dispatch cannot start at all.
func (b *Bus) Publish(ctx context.Context, envelope *domain.Envelope) error {
	if envelope == nil {
		return &PublishError{Err: domain.ErrNilEnvelope}
	}
	if envelope.Name == "" {
		return &PublishError{Err: domain.ErrEmptyEventName}
	}

	envelope.Enrich()

	b.mu.RLock()
	registrations := b.handlers[envelope.Name]
	b.mu.RUnlock()

	for _, reg := range registrations {
		b.invoke(ctx, reg, envelope)
	}

	return nil
}

// PublishAll fires all publishes concurrently and returns once every one has
// settled. It fails only when a publish could not start; the caller must then
// treat the whole batch as unresolved.
func (b *Bus) PublishAll(ctx context.Context, envelopes []*domain.Envelope) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, envelope := range envelopes {
		g.Go(func() error {
			return b.Publish(ctx, envelope)
		})
	}

	return g.Wait()
}

// invoke runs a single handler with panic and error isolation.
func (b *Bus) invoke(ctx context.Context, reg registration, envelope *domain.Envelope) {
	status := "success"
	defer func() {
		if r := recover(); r != nil {
			status = "error"
			if b.logger != nil {
				b.logger.Error("event handler panicked",
					slog.String("event", envelope.Name),
					slog.String("handler", reg.name),
					slog.Any("panic", r),
				)
			}
		}
		if b.metrics != nil {
			b.metrics.RecordOperation(ctx, "events", "handler_invoke", status)
		}
	}()

	if err := reg.handler.Handle(ctx, envelope); err != nil {
		status = "error"
		if b.logger != nil {
			b.logger.Error("event handler failed",
				slog.String("event", envelope.Name),
				slog.String("handler", reg.name),
				slog.String("correlation_id", envelope.Metadata.CorrelationID),
				slog.Any("error", err),
			)
		}
	}
}
