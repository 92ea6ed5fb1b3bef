package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	kafka_config "wachat/pkg/kafka/config"
	"wachat/pkg/logger"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, "wachat.dispatches")

	msg, err := NewMessage().
		WithKey("NG").
		WithValue(map[string]string{"strategy": "prefixed"}).
		WithEventType("chat.dispatched").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message written, got %d", len(writer.messages))
	}
	written := writer.messages[0]
	if string(written.Key) != "NG" {
		t.Errorf("key = %q, want NG", written.Key)
	}
	if string(written.Value) != `{"strategy":"prefixed"}` {
		t.Errorf("value = %s", written.Value)
	}

	headers := map[string]string{}
	for _, h := range written.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers[HeaderEventType] != "chat.dispatched" {
		t.Errorf("event type header = %q", headers[HeaderEventType])
	}
	if headers[HeaderEventID] == "" {
		t.Error("expected an event id header")
	}
}

func TestProducer_PublishValidation(t *testing.T) {
	p := newProducer(&fakeWriter{}, "topic")

	tests := []struct {
		name string
		msg  Message
		want error
	}{
		{name: "empty key", msg: Message{Value: []byte("{}")}, want: ErrEmptyKey},
		{name: "empty value", msg: Message{Key: "NG"}, want: ErrEmptyValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := p.Publish(context.Background(), tt.msg); !errors.Is(err, tt.want) {
				t.Errorf("Publish() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := newProducer(&fakeWriter{}, "topic")

	var calls []string
	for _, name := range []string{"first", "second"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			calls = append(calls, name)
			if msg.Topic != "topic" {
				t.Errorf("middleware %s saw topic %q, want default topic", name, msg.Topic)
			}
			return next(ctx, msg)
		})
	}

	msg := Message{Key: "k", Value: []byte("v"), Headers: map[string]string{}}
	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", calls)
	}
}

func TestProducer_WriterError(t *testing.T) {
	writeErr := errors.New("connection refused")
	p := newProducer(&fakeWriter{err: writeErr}, "topic")

	err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")})
	if !errors.Is(err, writeErr) {
		t.Errorf("Publish() error = %v, want %v", err, writeErr)
	}
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	p := newProducer(writer, "topic")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if !writer.closed {
		t.Error("expected writer to be closed")
	}

	err := p.Publish(context.Background(), Message{Key: "k", Value: []byte("v")})
	if !errors.Is(err, ErrProducerClosed) {
		t.Errorf("Publish() after Close error = %v, want %v", err, ErrProducerClosed)
	}
}

func TestMessageBuilder(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg, err := NewMessage().
		WithKey("IN").
		WithValue(struct{ A int }{A: 1}).
		WithCorrelationID("req-1").
		WithCorrelationID("").
		WithSchemaVersion("1").
		WithSource("wachat").
		WithTimestamp(ts).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if msg.GetCorrelationID() != "req-1" {
		t.Errorf("correlation id = %q, want req-1", msg.GetCorrelationID())
	}
	if msg.Headers[HeaderTimestamp] != "2024-05-01T12:00:00Z" {
		t.Errorf("timestamp header = %q", msg.Headers[HeaderTimestamp])
	}
	if msg.Headers[HeaderSource] != "wachat" {
		t.Errorf("source header = %q", msg.Headers[HeaderSource])
	}

	var decoded struct{ A int }
	if err := msg.DecodeValue(&decoded); err != nil || decoded.A != 1 {
		t.Errorf("DecodeValue() = %+v, %v", decoded, err)
	}
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if err == nil {
		t.Error("expected encoding error for unsupported value")
	}
}

func TestNewProducer_Validation(t *testing.T) {
	log := logger.Discard()

	if _, err := NewProducer(nil, "wachat.dispatches", log); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewProducer(&kafka_config.Config{}, "wachat.dispatches", log); !errors.Is(err, ErrNoBrokers) {
		t.Errorf("expected ErrNoBrokers, got %v", err)
	}
	if _, err := NewProducer(&kafka_config.Config{Brokers: []string{"localhost:9092"}}, "", log); !errors.Is(err, ErrEmptyTopic) {
		t.Errorf("expected ErrEmptyTopic, got %v", err)
	}

	p, err := NewProducer(&kafka_config.Config{Brokers: []string{"localhost:9092"}, ProducerCompression: "zstd"}, "wachat.dispatches", log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Topic() != "wachat.dispatches" {
		t.Errorf("Topic() = %q", p.Topic())
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
