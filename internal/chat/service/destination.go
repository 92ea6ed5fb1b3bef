package service

// DefaultBaseURL is the WhatsApp click-to-chat endpoint.
const DefaultBaseURL = "https://wa.me/"

// DefaultMaxLocalLength is the longest number that is still treated as a
// local number and therefore eligible for a calling-code prefix.
const DefaultMaxLocalLength = 9

type Strategy string

const (
	// StrategyAsIs: the number is long enough to already be international,
	// or there was no timezone to infer from.
	StrategyAsIs Strategy = "as_is"
	// StrategyPrefixed: the calling code inferred from the timezone was prepended.
	StrategyPrefixed Strategy = "prefixed"
	// StrategyFallback: inference was attempted but the timezone or its
	// country had no calling code.
	StrategyFallback Strategy = "fallback"
	// StrategyVerbatim: the manual form value, used untouched.
	StrategyVerbatim Strategy = "verbatim"
)

// Destination is a resolved deep link together with how it was derived.
type Destination struct {
	URL         string   `json:"url"`
	PhoneNumber string   `json:"phone_number"`
	Timezone    string   `json:"timezone,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
	CallingCode string   `json:"calling_code,omitempty"`
	Strategy    Strategy `json:"strategy"`
}
