// Package saga implements event-to-command coordination. A saga is a pure
// transformation from the event stream to a possibly empty stream of commands;
// produced commands are routed to registered command handlers, which must be
// idempotent because events may be re-delivered.
package saga

import (
	"context"
	"log/slog"

	busPkg "github.com/songifi/lyricsflip-server-sub002/internal/event/bus"
	"github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	"github.com/songifi/lyricsflip-server-sub002/internal/metrics"
)

// Transform maps an event to a derived command. Returning a nil command means
// the event does not qualify (predicate or business filter rejected it).
// Transforms must be pure: any "has this work already happened?" check belongs
// in the command handler or in a query against durable state.
type Transform func(envelope *domain.Envelope) (*domain.Command, error)

// Saga describes one subscription of the coordinator: the event type it
// observes and the pure transformation applied to each occurrence.
type Saga struct {
	Name      string
	EventType string
	Transform Transform
}

// CommandHandler executes a command produced by a saga. Execute must be
// idempotent with respect to repeated delivery of logically-identical commands.
type CommandHandler interface {
	Execute(ctx context.Context, command *domain.Command) error
}

// Coordinator wires sagas into the event bus and routes derived commands to
// their handlers. Registration is static startup-time metadata; the
// coordinator holds no mutable state of its own beyond the registry.
type Coordinator struct {
	sagas    []Saga
	handlers map[string]CommandHandler
	logger   *slog.Logger
	metrics  metrics.BusinessMetrics
}

// NewCoordinator creates a new saga coordinator. The metrics recorder is optional.
func NewCoordinator(logger *slog.Logger, businessMetrics metrics.BusinessMetrics) *Coordinator {
	return &Coordinator{
		handlers: make(map[string]CommandHandler),
		logger:   logger,
		metrics:  businessMetrics,
	}
}

// RegisterSaga adds a saga to the registry and subscribes it on the bus.
func (c *Coordinator) RegisterSaga(b *busPkg.Bus, saga Saga) {
	c.sagas = append(c.sagas, saga)
	b.Subscribe(saga.EventType, busPkg.HandlerFunc(func(ctx context.Context, envelope *domain.Envelope) error {
		return c.react(ctx, saga, envelope)
	}))
}

// RegisterCommandHandler maps a command name to its handler. Exactly one
// handler per command name.
func (c *Coordinator) RegisterCommandHandler(commandName string, handler CommandHandler) {
	c.handlers[commandName] = handler
}

// react applies one saga to one event occurrence and dispatches the derived
// command, if any. Failures are logged and isolated: the bus treats this like
// any other handler, so a broken saga never blocks sibling subscribers.
func (c *Coordinator) react(ctx context.Context, saga Saga, envelope *domain.Envelope) error {
	command, err := saga.Transform(envelope)
	if err != nil {
		return apperrors.Wrapf(err, "saga %s transform failed", saga.Name)
	}
	if command == nil {
		return nil
	}

	handler, ok := c.handlers[command.Name]
	if !ok {
		return apperrors.Wrapf(apperrors.ErrNotFound, "no handler for command %q", command.Name)
	}

	if c.logger != nil {
		c.logger.Info("dispatching saga command",
			slog.String("saga", saga.Name),
			slog.String("command", command.Name),
			slog.String("correlation_id", command.Metadata.CorrelationID),
		)
	}

	err = handler.Execute(ctx, command)

	status := "success"
	if err != nil {
		status = "error"
	}
	if c.metrics != nil {
		c.metrics.RecordOperation(ctx, "events", "saga_command", status)
	}

	return apperrors.Wrapf(err, "command %s failed", command.Name)
}
