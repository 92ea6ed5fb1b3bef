package locale

import (
	"strings"
	"testing"
)

func TestLoad_EmbeddedTables(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if tables.CountryCount() < 200 {
		t.Errorf("expected at least 200 countries, got %d", tables.CountryCount())
	}
	if tables.TimezoneCount() < 300 {
		t.Errorf("expected at least 300 timezones, got %d", tables.TimezoneCount())
	}
	for _, issue := range tables.Issues() {
		if strings.Contains(issue, "references unknown country") {
			t.Errorf("embedded tables should be consistent: %s", issue)
		}
	}
}

func TestLoad_CallingCodes(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		country string
		want    string
	}{
		{country: "NG", want: "234"},
		{country: "US", want: "1"},
		{country: "IL", want: "972"},
		{country: "GB", want: "44"},
		{country: "IN", want: "91"},
		{country: "DE", want: "49"},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			got, ok := tables.CallingCode(tt.country)
			if !ok {
				t.Fatalf("CallingCode(%q) not found", tt.country)
			}
			if got != tt.want {
				t.Errorf("CallingCode(%q) = %q, want %q", tt.country, got, tt.want)
			}
		})
	}
}

func TestCountryForTimezone(t *testing.T) {
	tables, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		name     string
		timezone string
		want     string
		wantOK   bool
	}{
		{name: "Lagos", timezone: "Africa/Lagos", want: "NG", wantOK: true},
		{name: "Jerusalem", timezone: "Asia/Jerusalem", want: "IL", wantOK: true},
		{name: "New York", timezone: "America/New_York", want: "US", wantOK: true},
		{name: "London", timezone: "Europe/London", want: "GB", wantOK: true},
		{name: "zone shared by several countries uses the first", timezone: "Asia/Dubai", want: "AE", wantOK: true},
		{name: "legacy alias", timezone: "Asia/Calcutta", want: "IN", wantOK: true},
		{name: "legacy link name", timezone: "US/Pacific", want: "US", wantOK: true},
		{name: "unknown zone", timezone: "Etc/Unknown", wantOK: false},
		{name: "UTC has no country", timezone: "UTC", wantOK: false},
		{name: "lookup is case sensitive", timezone: "africa/lagos", wantOK: false},
		{name: "empty", timezone: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tables.CountryForTimezone(tt.timezone)
			if ok != tt.wantOK {
				t.Fatalf("CountryForTimezone(%q) ok = %v, want %v", tt.timezone, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("CountryForTimezone(%q) = %q, want %q", tt.timezone, got, tt.want)
			}
		})
	}
}

func TestNewTables_FirstRecordWins(t *testing.T) {
	tables := NewTables([]Country{
		{Code: "NG", Name: "Nigeria", CallingCode: "234"},
		{Code: "NG", Name: "Duplicate", CallingCode: "999"},
	}, nil)

	c, ok := tables.Country("NG")
	if !ok {
		t.Fatal("expected NG to be found")
	}
	if c.Name != "Nigeria" || c.CallingCode != "234" {
		t.Errorf("expected first NG record, got %+v", c)
	}
	if tables.CountryCount() != 1 {
		t.Errorf("expected 1 country, got %d", tables.CountryCount())
	}
}

func TestNewTables_DanglingReference(t *testing.T) {
	tables := NewTables(
		[]Country{{Code: "NG", Name: "Nigeria", CallingCode: "234"}},
		map[string]TimezoneEntry{
			"Africa/Lagos":  {Countries: []string{"NG"}},
			"Africa/Luanda": {Countries: []string{"AO"}},
		},
	)

	issues := tables.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %v", issues)
	}
	if !strings.Contains(issues[0], "Africa/Luanda") || !strings.Contains(issues[0], "AO") {
		t.Errorf("unexpected issue text: %s", issues[0])
	}

	country, ok := tables.CountryForTimezone("Africa/Luanda")
	if !ok || country != "AO" {
		t.Fatalf("CountryForTimezone(Africa/Luanda) = %q, %v", country, ok)
	}
	if _, ok := tables.CallingCode(country); ok {
		t.Error("expected no calling code for a country missing from the table")
	}
}

func TestNewTables_AliasWithoutCandidates(t *testing.T) {
	tables := NewTables(
		[]Country{{Code: "IN", Name: "India", CallingCode: "91"}},
		map[string]TimezoneEntry{
			"Asia/Kolkata":  {Countries: []string{"IN"}},
			"Asia/Calcutta": {Alias: "Asia/Kolkata"},
			"Broken/Link":   {Alias: "Nowhere/Zone"},
		},
	)

	if got, ok := tables.CountryForTimezone("Asia/Calcutta"); !ok || got != "IN" {
		t.Errorf("CountryForTimezone(Asia/Calcutta) = %q, %v; want IN, true", got, ok)
	}
	if entry, _ := tables.Timezone("Asia/Calcutta"); entry.Alias != "Asia/Kolkata" {
		t.Errorf("expected the alias to be kept, got %+v", entry)
	}
	if _, ok := tables.CountryForTimezone("Broken/Link"); ok {
		t.Error("expected a broken alias to resolve to nothing")
	}

	issues := tables.Issues()
	if len(issues) != 1 || !strings.Contains(issues[0], "Broken/Link") {
		t.Errorf("expected the broken alias to be reported, got %v", issues)
	}
}

func TestLoadFrom_AliasOnlyEntries(t *testing.T) {
	tables, err := LoadFrom(
		[]byte(`[{"countryCode":"IN","countryName":"India"}]`),
		[]byte(`{"Asia/Kolkata":{"c":["IN"]},"Asia/Calcutta":{"a":"Asia/Kolkata"},"Etc/Nothing":{}}`),
	)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if tables.TimezoneCount() != 2 {
		t.Errorf("expected the alias-only entry kept and the empty one dropped, got %d timezones", tables.TimezoneCount())
	}
	if got, ok := tables.CountryForTimezone("Asia/Calcutta"); !ok || got != "IN" {
		t.Errorf("CountryForTimezone(Asia/Calcutta) = %q, %v; want IN, true", got, ok)
	}
	if code, ok := tables.CallingCode("IN"); !ok || code != "91" {
		t.Errorf("CallingCode(IN) = %q, %v; want 91, true", code, ok)
	}

	issues := tables.Issues()
	if len(issues) != 1 || !strings.Contains(issues[0], "Etc/Nothing") {
		t.Errorf("expected only Etc/Nothing to be reported, got %v", issues)
	}
}

func TestNewTables_CopiesInput(t *testing.T) {
	countries := []string{"NG"}
	tables := NewTables(
		[]Country{{Code: "NG", Name: "Nigeria", CallingCode: "234"}},
		map[string]TimezoneEntry{"Africa/Lagos": {Countries: countries}},
	)

	countries[0] = "XX"

	if got, _ := tables.CountryForTimezone("Africa/Lagos"); got != "NG" {
		t.Errorf("tables must not alias caller slices, got %q", got)
	}
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name       string
		countries  string
		timezones  string
		wantErr    bool
		wantIssues int
	}{
		{
			name:      "valid documents",
			countries: `[{"countryCode":"NG","countryName":"Nigeria"}]`,
			timezones: `{"Africa/Lagos":{"c":["NG"]}}`,
		},
		{
			name:       "invalid country code is dropped",
			countries:  `[{"countryCode":"NG","countryName":"Nigeria"},{"countryCode":"ZZZ","countryName":"Nowhere"}]`,
			timezones:  `{"Africa/Lagos":{"c":["NG"]}}`,
			wantIssues: 1,
		},
		{
			name:       "timezone without candidates is dropped",
			countries:  `[{"countryCode":"NG","countryName":"Nigeria"}]`,
			timezones:  `{"Africa/Lagos":{"c":["NG"]},"Etc/Empty":{"c":[]}}`,
			wantIssues: 1,
		},
		{
			name:      "malformed countries",
			countries: `{`,
			timezones: `{}`,
			wantErr:   true,
		},
		{
			name:      "malformed timezones",
			countries: `[]`,
			timezones: `[`,
			wantErr:   true,
		},
		{
			name:      "empty country table",
			countries: `[]`,
			timezones: `{"Africa/Lagos":{"c":["NG"]}}`,
			wantErr:   true,
		},
		{
			name:      "empty timezone table",
			countries: `[{"countryCode":"NG","countryName":"Nigeria"}]`,
			timezones: `{}`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables, err := LoadFrom([]byte(tt.countries), []byte(tt.timezones))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := len(tables.Issues()); got != tt.wantIssues {
				t.Errorf("expected %d issues, got %d: %v", tt.wantIssues, got, tables.Issues())
			}
			if code, ok := tables.CallingCode("NG"); !ok || code != "234" {
				t.Errorf("CallingCode(NG) = %q, %v; want 234, true", code, ok)
			}
		})
	}
}
