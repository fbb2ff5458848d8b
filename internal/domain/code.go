package domain

import "regexp"

var claimCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// IsClaimCode reports whether s is a well-formed redemption code:
// exactly six uppercase alphanumeric characters.
func IsClaimCode(s string) bool {
	return claimCodePattern.MatchString(s)
}
