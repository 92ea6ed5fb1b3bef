package common

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"wachat/internal/chat/handler"
	"wachat/internal/chat/service"
	"wachat/internal/chat/validator"
	"wachat/pkg/app"
	"wachat/pkg/client"
	"wachat/pkg/config"
	"wachat/pkg/locale"
	"wachat/pkg/logger"
	"wachat/pkg/metrics"
)

// IntegrationTestSuite runs against TEST_SERVER_URL when it is set and
// against an in-process server with the production wiring otherwise.
type IntegrationTestSuite struct {
	HTTPClient  *client.HttpClient
	ServiceName string

	server *httptest.Server
}

func NewIntegrationTestSuite(t *testing.T, serviceName string) *IntegrationTestSuite {
	t.Helper()

	s := &IntegrationTestSuite{ServiceName: serviceName}

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		s.server = httptest.NewServer(inProcessHandler(t, serviceName))
		serverURL = s.server.URL
	}

	s.HTTPClient = client.NewHttpClient(serverURL)
	if err := s.HTTPClient.WaitForReady(10 * time.Second); err != nil {
		t.Fatalf("service at %s is not ready: %v", serverURL, err)
	}

	t.Cleanup(s.Teardown)
	return s
}

// InProcess reports whether the suite owns the server under test.
func (s *IntegrationTestSuite) InProcess() bool {
	return s.server != nil
}

func (s *IntegrationTestSuite) Teardown() {
	if s.server != nil {
		s.server.Close()
	}
}

func inProcessHandler(t *testing.T, serviceName string) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Port:                 config.DefaultPort,
		DeepLinkBaseURL:      config.DefaultDeepLinkBaseURL,
		MaxLocalNumberLength: config.DefaultMaxLocalNumberLength,
		RateLimitRequests:    10000,
		RateLimitWindow:      time.Minute,
		RequestTimeout:       config.DefaultRequestTimeout,
		MaxRequestSize:       config.DefaultMaxRequestSize,
		ReadTimeout:          config.DefaultReadTimeout,
		WriteTimeout:         config.DefaultWriteTimeout,
		IdleTimeout:          config.DefaultIdleTimeout,
		ShutdownTimeout:      config.DefaultShutdownTimeout,
		MetricsEnabled:       true,
		Log:                  logger.Discard(),
	}

	tables, err := locale.Load()
	if err != nil {
		t.Fatalf("failed to load lookup tables: %v", err)
	}

	m := metrics.NewMetrics(serviceName)
	resolver := service.NewResolver(tables,
		service.WithBaseURL(cfg.DeepLinkBaseURL),
		service.WithMaxLocalLength(cfg.MaxLocalNumberLength),
	)
	chatService := service.NewChatService(tables, resolver, nil, m, cfg.Log)

	application := app.NewApplication(cfg, m)
	application.SetApp(
		handler.NewHealthHandler(tables, cfg.Log),
		handler.NewChatHandler(chatService, validator.NewQueryValidator(), cfg.Log),
		handler.Routes,
	)
	t.Cleanup(application.Stop)
	return application.Handler()
}
