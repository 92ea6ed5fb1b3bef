package service

import (
	"context"
	"time"

	"wachat/internal/chat/events"
	apperrors "wachat/pkg/errors"
	"wachat/pkg/locale"
	"wachat/pkg/logger"
	"wachat/pkg/metrics"
	"wachat/pkg/sanitizer"
)

type ChatService interface {
	// AutoDispatch normalizes raw, infers a calling code from timezone and
	// records the dispatch.
	AutoDispatch(ctx context.Context, raw, timezone string) Destination
	// ManualDispatch links to value exactly as typed and records the dispatch.
	ManualDispatch(ctx context.Context, value string) Destination
	// Preview resolves like AutoDispatch without recording anything.
	Preview(ctx context.Context, raw, timezone string) Destination

	Timezone(ctx context.Context, timezone string) (*TimezoneInfo, error)
	Country(ctx context.Context, code string) (*locale.Country, error)
}

// TimezoneInfo is what the tables know about a single timezone.
type TimezoneInfo struct {
	Timezone    string   `json:"timezone"`
	CountryCode string   `json:"country_code"`
	CallingCode string   `json:"calling_code,omitempty"`
	Candidates  []string `json:"candidates"`
	Alias       string   `json:"alias,omitempty"`
}

type chatService struct {
	tables    *locale.Tables
	resolver  *Resolver
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
	now       func() time.Time
}

func NewChatService(
	tables *locale.Tables,
	resolver *Resolver,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *logger.Logger,
) ChatService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &chatService{
		tables:    tables,
		resolver:  resolver,
		publisher: publisher,
		metrics:   m,
		log:       log,
		now:       time.Now,
	}
}

func (s *chatService) AutoDispatch(ctx context.Context, raw, timezone string) Destination {
	dest := s.Preview(ctx, raw, timezone)
	s.record(ctx, events.SourceAuto, dest)
	return dest
}

func (s *chatService) ManualDispatch(ctx context.Context, value string) Destination {
	dest := s.resolver.Verbatim(value)
	s.record(ctx, events.SourceManual, dest)
	return dest
}

func (s *chatService) Preview(_ context.Context, raw, timezone string) Destination {
	return s.resolver.Resolve(sanitizer.NormalizePhone(raw), timezone)
}

func (s *chatService) Timezone(_ context.Context, timezone string) (*TimezoneInfo, error) {
	if timezone == "" {
		return nil, apperrors.InvalidInput("Timezone cannot be empty")
	}

	entry, ok := s.tables.Timezone(timezone)
	if !ok {
		return nil, apperrors.NotFoundWithID("Timezone", timezone)
	}
	country, ok := entry.PrimaryCountry()
	if !ok {
		return nil, apperrors.NotFoundWithID("Timezone", timezone)
	}

	info := &TimezoneInfo{
		Timezone:    timezone,
		CountryCode: country,
		Candidates:  append([]string(nil), entry.Countries...),
		Alias:       entry.Alias,
	}
	if callingCode, ok := s.tables.CallingCode(country); ok {
		info.CallingCode = callingCode
	}
	return info, nil
}

func (s *chatService) Country(_ context.Context, code string) (*locale.Country, error) {
	if code == "" {
		return nil, apperrors.InvalidInput("Country code cannot be empty")
	}

	country, ok := s.tables.Country(code)
	if !ok {
		return nil, apperrors.NotFoundWithID("Country", code)
	}
	return &country, nil
}

func (s *chatService) record(ctx context.Context, source string, dest Destination) {
	s.metrics.ObserveDispatch(source, string(dest.Strategy))

	s.log.Info("Chat dispatched",
		"source", source,
		"strategy", dest.Strategy,
		"phone", logger.MaskPhone(dest.PhoneNumber),
		"timezone", dest.Timezone,
		"country_code", dest.CountryCode,
		"calling_code", dest.CallingCode,
	)

	err := s.publisher.PublishDispatch(ctx, events.DispatchEvent{
		Source:      source,
		Strategy:    string(dest.Strategy),
		CountryCode: dest.CountryCode,
		CallingCode: dest.CallingCode,
		Timezone:    dest.Timezone,
		OccurredAt:  s.now().UTC(),
	})
	if err != nil {
		s.log.Warn("Failed to publish dispatch event",
			"source", source,
			"strategy", dest.Strategy,
			"error", err,
		)
	}
}
