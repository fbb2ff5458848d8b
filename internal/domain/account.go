package domain

import "strings"

type AccountID string

// Account is one configured identity authorized against the remote
// reward system. Constructed once at startup from configuration and
// immutable afterwards; only its session (owned by the session store)
// changes over time.
type Account struct {
	ID     AccountID
	Handle string
	Secret string `json:"-"`
}

// DefaultCountryCode is prefixed to handles that do not already carry
// a country code.
const DefaultCountryCode = "57"

// minLocalDigits is the shortest local number accepted as already
// carrying a country code when it starts with one.
const minLocalDigits = 10

// NormalizeHandle reduces a phone-style login handle to canonical
// "+<country><number>" form: every non-digit character is dropped,
// then the country code is prefixed unless the number already starts
// with it and is long enough to plausibly include it.
//
// Normalization is idempotent: normalizing an already normalized
// handle yields the same handle.
func NormalizeHandle(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cleaned := digits.String()
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, countryCode) && len(cleaned) >= len(countryCode)+minLocalDigits {
		return "+" + cleaned
	}

	return "+" + countryCode + cleaned
}
