// Package validate holds pure predicates for the network parameter formats
// the access point sends to the portal.
package validate

import "regexp"

var (
	macColonPattern  = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
	macHyphenPattern = regexp.MustCompile(`^([0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}$`)
	ipPattern        = regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)
)

// IsValidMAC reports whether s is six two-hex-digit groups delimited by a
// uniform separator, either all colons or all hyphens
func IsValidMAC(s string) bool {
	return macColonPattern.MatchString(s) || macHyphenPattern.MatchString(s)
}

// IsValidIP reports whether s is a dotted-quad IPv4 address with each octet
// in [0, 255]
func IsValidIP(s string) bool {
	return ipPattern.MatchString(s)
}
