package kafka_config

import (
	"testing"
	"time"
)

func TestLoad_DisabledByDefault(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "")

	cfg := Load()

	if cfg.Enabled() {
		t.Errorf("expected Kafka to be disabled without brokers, got %v", cfg.Brokers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled config should validate, got %v", err)
	}
}

func TestLoad_Brokers(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " kafka-1:9092, ,kafka-2:9092 ")

	cfg := Load()

	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "kafka-1:9092" || cfg.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Brokers)
	}
	if !cfg.Enabled() {
		t.Error("expected Kafka to be enabled")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Brokers:              []string{"localhost:9092"},
			DispatchTopic:        DefaultDispatchTopic,
			PublishTimeout:       time.Second,
			ProducerMaxAttempts:  3,
			ProducerBatchTimeout: 10 * time.Millisecond,
			ProducerRequireAcks:  1,
			ProducerCompression:  "snappy",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty topic", mutate: func(c *Config) { c.DispatchTopic = "" }, wantErr: true},
		{name: "bad compression", mutate: func(c *Config) { c.ProducerCompression = "brotli" }, wantErr: true},
		{name: "bad acks", mutate: func(c *Config) { c.ProducerRequireAcks = 2 }, wantErr: true},
		{name: "zero attempts", mutate: func(c *Config) { c.ProducerMaxAttempts = 0 }, wantErr: true},
		{name: "zero publish timeout", mutate: func(c *Config) { c.PublishTimeout = 0 }, wantErr: true},
		{name: "disabled ignores bad values", mutate: func(c *Config) { c.Brokers = nil; c.ProducerRequireAcks = 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
