package main

import (
	"wachat/internal/chat/events"
	"wachat/internal/chat/handler"
	"wachat/internal/chat/service"
	"wachat/internal/chat/validator"
	"wachat/pkg/app"
	"wachat/pkg/config"
	"wachat/pkg/kafka"
	kafka_middleware "wachat/pkg/kafka/middleware"
	"wachat/pkg/locale"
	"wachat/pkg/metrics"
)

const serviceName = "wachat"

func main() {
	cfg := config.Load(serviceName)
	cfg.Log.Info("Starting wachat service")

	m := metrics.NewMetrics(serviceName)
	tables := loadTables(cfg, m)

	application := app.NewApplication(cfg, m)
	publisher := initPublisher(cfg, m, application)

	resolver := service.NewResolver(tables,
		service.WithBaseURL(cfg.DeepLinkBaseURL),
		service.WithMaxLocalLength(cfg.MaxLocalNumberLength),
	)
	chatService := service.NewChatService(tables, resolver, publisher, m, cfg.Log)
	cfg.Log.Info("Chat service initialized")

	application.SetApp(
		handler.NewHealthHandler(tables, cfg.Log),
		handler.NewChatHandler(chatService, validator.NewQueryValidator(), cfg.Log),
		handler.Routes,
	)
	application.Run()
}

func loadTables(cfg *config.Config, m *metrics.Metrics) *locale.Tables {
	tables, err := locale.Load()
	if err != nil {
		cfg.Log.Fatal("Failed to load lookup tables", "error", err)
	}

	issues := tables.Issues()
	for _, issue := range issues {
		cfg.Log.Warn("Lookup table issue", "issue", issue)
	}
	m.TableIssues.Set(float64(len(issues)))

	cfg.Log.Info("Lookup tables loaded",
		"countries", tables.CountryCount(),
		"timezones", tables.TimezoneCount(),
		"issues", len(issues),
	)
	return tables
}

func initPublisher(cfg *config.Config, m *metrics.Metrics, application *app.Application) events.Publisher {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, dispatch events disabled")
		return events.NoopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Kafka.DispatchTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	application.OnShutdown(producer)

	cfg.Log.Info("Dispatch events enabled",
		"brokers", cfg.Kafka.Brokers,
		"topic", producer.Topic(),
	)
	return events.NewKafkaPublisher(producer, cfg.Kafka.PublishTimeout)
}
