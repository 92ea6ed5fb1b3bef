package locale

import "github.com/go-playground/validator/v10"

// TimezoneEntry describes one IANA timezone identifier. Countries lists the
// candidate ISO 3166-1 alpha-2 codes for the zone; the first one is treated as
// the canonical country. Alias names the canonical zone for legacy identifiers
// such as "Asia/Calcutta". An entry needs candidates, an alias, or both.
type TimezoneEntry struct {
	Countries []string `json:"c,omitempty" validate:"omitempty,dive,iso3166_1_alpha2"`
	Alias     string   `json:"a,omitempty"`
}

func validateTimezoneEntry(sl validator.StructLevel) {
	entry := sl.Current().Interface().(TimezoneEntry)
	if len(entry.Countries) == 0 && entry.Alias == "" {
		sl.ReportError(entry.Countries, "Countries", "c", "required_without_alias", "")
	}
}

func (e TimezoneEntry) PrimaryCountry() (string, bool) {
	if len(e.Countries) == 0 {
		return "", false
	}
	return e.Countries[0], true
}
