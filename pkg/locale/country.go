package locale

import (
	"strconv"

	"github.com/nyaruka/phonenumbers"
)

type Country struct {
	Code        string `json:"countryCode" validate:"required,iso3166_1_alpha2"` // ISO 3166-1 alpha-2 country code (e.g., "NG", "US")
	Name        string `json:"countryName" validate:"required"`                  // Human-readable country name
	CallingCode string `json:"countryCallingCode,omitempty" validate:"omitempty,numeric,max=3"`
}

// HasCallingCode reports whether international dialing to the country is known.
func (c Country) HasCallingCode() bool {
	return c.CallingCode != ""
}

// callingCodeForRegion returns the dialing prefix libphonenumber knows for the
// region, or "" when the region has none (e.g. Antarctica).
func callingCodeForRegion(region string) string {
	code := phonenumbers.GetCountryCodeForRegion(region)
	if code <= 0 {
		return ""
	}
	return strconv.Itoa(code)
}
