package config

import "time"

const (
	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultDeepLinkBaseURL      = "https://wa.me/"
	DefaultMaxLocalNumberLength = 9

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 5 * time.Second
	DefaultMaxRequestSize = 16 * 1024 // 16KB, the only body is a one-field form

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMetricsEnabled = true
)
