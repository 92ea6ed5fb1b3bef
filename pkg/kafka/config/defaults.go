package kafka_config

import "time"

const (
	// Empty brokers disable event publishing
	DefaultKafkaBrokers = ""

	DefaultDispatchTopic  = "wachat.dispatches"
	DefaultPublishTimeout = 2 * time.Second

	// Producer defaults
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = 1 // Leader only, events are best effort
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = true
)
