package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher publishes notification messages.
type Publisher interface {
	Publish(ctx context.Context, msg any) error
}

// Discard is a Publisher that drops every message.
type Discard struct{}

// Publish implements Publisher.
func (Discard) Publish(context.Context, any) error { return nil }

// Options configures a Bus.
type Options struct {
	// BufferSize is the output buffer of each in-process subscription.
	BufferSize int64
	// Sender receives registration confirmations. Defaults to a LogSender.
	Sender Sender
}

// marshaler names topics after the bare struct name, e.g. "EventCreated".
var marshaler = cqrs.JSONMarshaler{GenerateName: cqrs.StructName}

// Bus publishes notification messages on an in-process pub/sub and routes them
// to the registered handlers.
type Bus struct {
	pubSub   *gochannel.GoChannel
	eventBus *cqrs.EventBus
	router   *message.Router
}

// NewBus builds a Bus with the audit and confirmation handlers registered.
// Handlers only receive messages once Run has been called.
func NewBus(logger *slog.Logger, opts Options) (*Bus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: opts.BufferSize,
	}, wmLogger)

	eventBus, err := cqrs.NewEventBusWithConfig(pubSub, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    wmLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	processor, err := cqrs.NewEventProcessorWithConfig(router, cqrs.EventProcessorConfig{
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return params.EventName, nil
		},
		SubscriberConstructor: func(cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return pubSub, nil
		},
		Marshaler: marshaler,
		Logger:    wmLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event processor: %w", err)
	}

	sender := opts.Sender
	if sender == nil {
		sender = &LogSender{Logger: logger}
	}
	h := &handlers{sender: sender, logger: logger}

	err = processor.AddHandlers(
		cqrs.NewEventHandler("AuditEventCreated", h.auditEventCreated),
		cqrs.NewEventHandler("AuditEventUpdated", h.auditEventUpdated),
		cqrs.NewEventHandler("AuditEventDeleted", h.auditEventDeleted),
		cqrs.NewEventHandler("AuditRegistrationCreated", h.auditRegistrationCreated),
		cqrs.NewEventHandler("SendRegistrationConfirmation", h.sendConfirmation),
	)
	if err != nil {
		return nil, fmt.Errorf("adding handlers: %w", err)
	}

	return &Bus{
		pubSub:   pubSub,
		eventBus: eventBus,
		router:   router,
	}, nil
}

// Publish sends msg to every handler subscribed to its type. Messages
// published before Run has started are dropped.
func (b *Bus) Publish(ctx context.Context, msg any) error {
	return b.eventBus.Publish(ctx, msg)
}

// Run starts the handlers and blocks until ctx is done.
func (b *Bus) Run(ctx context.Context) error {
	return b.router.Run(ctx)
}

// Running is closed once the handlers are subscribed.
func (b *Bus) Running() chan struct{} {
	return b.router.Running()
}

// Close stops the router and the underlying pub/sub.
func (b *Bus) Close() error {
	if err := b.router.Close(); err != nil {
		return fmt.Errorf("closing router: %w", err)
	}
	if err := b.pubSub.Close(); err != nil {
		return fmt.Errorf("closing pub/sub: %w", err)
	}
	return nil
}
