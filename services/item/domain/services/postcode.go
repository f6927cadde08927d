package services

import "regexp"

// Five digits, optionally followed by a hyphen or whitespace and four digits,
// anchored at the end only. A single trailing newline is allowed before the end.
var postcodePattern = regexp.MustCompile(`\d{5}(?:[-\s]\d{4})?\n?$`)

// IsValidPostcode reports whether postcode looks like a US ZIP or ZIP+4 code.
// Text in front of a valid five or nine digit suffix is tolerated.
func IsValidPostcode(postcode string) bool {
	return postcodePattern.MatchString(postcode)
}
