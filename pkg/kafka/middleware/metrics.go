package kafka_middleware

import (
	"context"

	"wachat/pkg/kafka"
	"wachat/pkg/metrics"
)

// MetricsProducerMiddleware counts publish results on the service registry
func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		err := next(ctx, msg)
		m.ObserveEvent(err)
		return err
	}
}
