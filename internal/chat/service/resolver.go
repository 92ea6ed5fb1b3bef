package service

import "unicode/utf8"

// Directory answers the two lookups the resolver needs. *locale.Tables
// satisfies it.
type Directory interface {
	CountryForTimezone(timezone string) (string, bool)
	CallingCode(countryCode string) (string, bool)
}

type Resolver struct {
	directory      Directory
	baseURL        string
	maxLocalLength int
}

type ResolverOption func(*Resolver)

func WithBaseURL(baseURL string) ResolverOption {
	return func(r *Resolver) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

func WithMaxLocalLength(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxLocalLength = n
		}
	}
}

func NewResolver(directory Directory, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		directory:      directory,
		baseURL:        DefaultBaseURL,
		maxLocalLength: DefaultMaxLocalLength,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve turns an already normalized number and an IANA timezone into a
// deep link. It never fails: anything it cannot infer falls back to the
// number as given. The length rule counts characters, not bytes.
func (r *Resolver) Resolve(phoneNumber, timezone string) Destination {
	dest := Destination{
		PhoneNumber: phoneNumber,
		Timezone:    timezone,
	}

	if utf8.RuneCountInString(phoneNumber) > r.maxLocalLength || timezone == "" {
		dest.URL = r.DeepLink(phoneNumber)
		dest.Strategy = StrategyAsIs
		return dest
	}

	country, ok := r.directory.CountryForTimezone(timezone)
	if ok {
		dest.CountryCode = country
		if callingCode, ok := r.directory.CallingCode(country); ok {
			dest.CallingCode = callingCode
			dest.URL = r.DeepLink(callingCode + phoneNumber)
			dest.Strategy = StrategyPrefixed
			return dest
		}
	}

	dest.URL = r.DeepLink(phoneNumber)
	dest.Strategy = StrategyFallback
	return dest
}

// Verbatim links to value without touching it.
func (r *Resolver) Verbatim(value string) Destination {
	return Destination{
		URL:         r.DeepLink(value),
		PhoneNumber: value,
		Strategy:    StrategyVerbatim,
	}
}

// DeepLink appends digits to the configured base URL. Nothing is escaped or
// validated.
func (r *Resolver) DeepLink(digits string) string {
	return r.baseURL + digits
}
