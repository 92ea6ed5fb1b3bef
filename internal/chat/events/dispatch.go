package events

import (
	"context"
	"fmt"
	"time"

	"wachat/pkg/kafka"
	"wachat/pkg/middleware"
)

const (
	EventTypeDispatched = "chat.dispatched"
	SchemaVersion       = "1"
	ServiceName         = "wachat"

	// unknownCountryKey partitions dispatches that resolved no country.
	unknownCountryKey = "ZZ"
)

const (
	SourceAuto   = "auto"
	SourceManual = "manual"
)

// DispatchEvent records that a deep link was handed out. It intentionally
// carries no phone number.
type DispatchEvent struct {
	Source      string    `json:"source"`
	Strategy    string    `json:"strategy"`
	CountryCode string    `json:"country_code,omitempty"`
	CallingCode string    `json:"calling_code,omitempty"`
	Timezone    string    `json:"timezone,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishDispatch(ctx context.Context, event DispatchEvent) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type KafkaPublisher struct {
	producer MessagePublisher
	timeout  time.Duration
}

func NewKafkaPublisher(producer MessagePublisher, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		timeout:  timeout,
	}
}

func (p *KafkaPublisher) PublishDispatch(ctx context.Context, event DispatchEvent) error {
	if event.Source == "" || event.Strategy == "" {
		return fmt.Errorf("%w: dispatch event needs a source and a strategy", kafka.ErrInvalidMessage)
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	key := event.CountryCode
	if key == "" {
		key = unknownCountryKey
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(event).
		WithEventType(EventTypeDispatched).
		WithCorrelationID(middleware.RequestID(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(ServiceName).
		WithTimestamp(event.OccurredAt).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build dispatch event: %w", err)
	}

	// This runs before the redirect is written. A client disconnect must not
	// abort the publish, and the timeout caps how long a synchronous producer
	// can hold the redirect back.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	return p.producer.Publish(ctx, msg)
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishDispatch(context.Context, DispatchEvent) error {
	return nil
}
