package locale

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

//go:embed data/countries.json
var countriesData []byte

//go:embed data/timezones.json
var timezonesData []byte

// Tables holds the country and timezone reference data. A Tables value is
// never mutated after construction and is safe for concurrent readers.
type Tables struct {
	countries []Country
	byCode    map[string]int
	timezones map[string]TimezoneEntry
	issues    []string
}

// NewTables builds lookup tables from records that already carry their
// calling codes. The inputs are copied. Later duplicates of a country code
// are ignored so the first record wins, as with an ordered find.
func NewTables(countries []Country, timezones map[string]TimezoneEntry) *Tables {
	t := &Tables{
		countries: make([]Country, 0, len(countries)),
		byCode:    make(map[string]int, len(countries)),
		timezones: make(map[string]TimezoneEntry, len(timezones)),
	}

	for _, c := range countries {
		if _, dup := t.byCode[c.Code]; dup {
			t.issues = append(t.issues, fmt.Sprintf("duplicate country %s ignored", c.Code))
			continue
		}
		t.byCode[c.Code] = len(t.countries)
		t.countries = append(t.countries, c)
	}

	for tz, entry := range timezones {
		t.timezones[tz] = TimezoneEntry{
			Countries: append([]string(nil), entry.Countries...),
			Alias:     entry.Alias,
		}
	}

	t.issues = append(t.issues, t.danglingReferences()...)
	return t
}

// Load parses the embedded datasets. Calling codes are resolved through
// libphonenumber at load time.
func Load() (*Tables, error) {
	return LoadFrom(countriesData, timezonesData)
}

// LoadFrom parses country and timezone JSON documents. Records that fail
// validation are dropped and reported through Issues rather than failing the
// load; only malformed JSON or an empty result is an error.
func LoadFrom(countriesJSON, timezonesJSON []byte) (*Tables, error) {
	var rawCountries []Country
	if err := json.Unmarshal(countriesJSON, &rawCountries); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}

	var rawTimezones map[string]TimezoneEntry
	if err := json.Unmarshal(timezonesJSON, &rawTimezones); err != nil {
		return nil, fmt.Errorf("decode timezones: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(validateTimezoneEntry, TimezoneEntry{})
	var issues []string

	countries := make([]Country, 0, len(rawCountries))
	for i, c := range rawCountries {
		if c.CallingCode == "" {
			c.CallingCode = callingCodeForRegion(c.Code)
		}
		if err := validate.Struct(c); err != nil {
			issues = append(issues, fmt.Sprintf("country #%d (%q) dropped: %v", i, c.Code, err))
			continue
		}
		countries = append(countries, c)
	}

	timezones := make(map[string]TimezoneEntry, len(rawTimezones))
	for _, tz := range sortedKeys(rawTimezones) {
		entry := rawTimezones[tz]
		if tz == "" {
			issues = append(issues, "timezone with empty identifier dropped")
			continue
		}
		if err := validate.Struct(entry); err != nil {
			issues = append(issues, fmt.Sprintf("timezone %s dropped: %v", tz, err))
			continue
		}
		timezones[tz] = entry
	}

	if len(countries) == 0 {
		return nil, errors.New("country table is empty")
	}
	if len(timezones) == 0 {
		return nil, errors.New("timezone table is empty")
	}

	t := NewTables(countries, timezones)
	t.issues = append(issues, t.issues...)
	return t, nil
}

// Country returns the first record whose code equals the given code.
func (t *Tables) Country(code string) (Country, bool) {
	i, ok := t.byCode[code]
	if !ok {
		return Country{}, false
	}
	return t.countries[i], true
}

// CallingCode is absent both for unknown countries and for known countries
// without a dialing prefix.
func (t *Tables) CallingCode(countryCode string) (string, bool) {
	c, ok := t.Country(countryCode)
	if !ok || !c.HasCallingCode() {
		return "", false
	}
	return c.CallingCode, true
}

// Timezone looks the identifier up by exact match. An entry without its own
// candidates takes them from its alias, one hop only, and keeps the alias.
func (t *Tables) Timezone(tz string) (TimezoneEntry, bool) {
	entry, ok := t.timezones[tz]
	if !ok {
		return TimezoneEntry{}, false
	}
	if len(entry.Countries) == 0 && entry.Alias != "" {
		target, ok := t.timezones[entry.Alias]
		if !ok || len(target.Countries) == 0 {
			return TimezoneEntry{}, false
		}
		return TimezoneEntry{Countries: target.Countries, Alias: entry.Alias}, true
	}
	return entry, true
}

// CountryForTimezone returns the canonical country of a timezone.
func (t *Tables) CountryForTimezone(tz string) (string, bool) {
	entry, ok := t.Timezone(tz)
	if !ok {
		return "", false
	}
	return entry.PrimaryCountry()
}

func (t *Tables) CountryCount() int {
	return len(t.countries)
}

func (t *Tables) TimezoneCount() int {
	return len(t.timezones)
}

// Issues lists the records dropped at load time, every timezone candidate
// that does not resolve to a known country and every alias that leads nowhere.
func (t *Tables) Issues() []string {
	return append([]string(nil), t.issues...)
}

func (t *Tables) danglingReferences() []string {
	var out []string
	for _, tz := range sortedKeys(t.timezones) {
		entry := t.timezones[tz]
		if len(entry.Countries) == 0 {
			if target, ok := t.timezones[entry.Alias]; !ok || len(target.Countries) == 0 {
				out = append(out, fmt.Sprintf("timezone %s aliases unresolvable timezone %s", tz, entry.Alias))
			}
		}
		for _, code := range entry.Countries {
			if _, ok := t.byCode[code]; !ok {
				out = append(out, fmt.Sprintf("timezone %s references unknown country %s", tz, code))
			}
		}
	}
	return out
}

func sortedKeys(m map[string]TimezoneEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
