// Package uid parses, formats and compares Swiss business identifiers (UID).
//
// # Accepted input
//
// A UID appears in many textual forms, for example:
//   - "CHE-123.456.789" (canonical display form)
//   - "che 123 456 789", "CHE123456789", "CHE.123-456 789"
//   - "CHE-123.456.789 MWST" (VAT suffixes MWST, TVA and IVA, any case)
//   - "123456789" (bare digits)
//
// Parsing runs in two stages. The structured stage matches an optional "CHE"
// prefix, a run of exactly nine digits separated by any mix of spaces,
// periods and hyphens, and an optional VAT suffix. When that does not match,
// the fallback stage strips every non-digit from the input. Either way the
// result must be exactly nine digits.
//
// The fallback is lenient: any string carrying exactly nine digits is
// accepted, including "A1B2C3D4E5F6G7H8I9" or "CHE-123.456.789 HR". Callers
// that need a strict check should match the canonical form themselves.
//
// Invalid input is never an error. Normalize reports it through its boolean
// result and Format echoes the input back.
package uid

import (
	"regexp"
	"strings"
)

// Length is the number of digits in a normalized UID.
const Length = 9

const (
	prefix       = "CHE"
	groupSize    = 3
	groupSep     = "."
	prefixSep    = "-"
	formattedLen = len(prefix) + len(prefixSep) + Length + 2
)

var structured = regexp.MustCompile(`^(?i:CHE)?[\s.\-]*(\d(?:[\s.\-]*\d){8})(?:\s+(?i:MWST|TVA|IVA))?$`)

// UID is a normalized identifier: exactly nine ASCII digits, no prefix, no
// separators. The zero value is not a valid UID.
type UID string

// String returns the nine digits.
func (u UID) String() string {
	return string(u)
}

// Formatted returns the canonical display form "CHE-DDD.DDD.DDD".
func (u UID) Formatted() string {
	if !u.valid() {
		return string(u)
	}

	var b strings.Builder

	b.Grow(formattedLen)
	b.WriteString(prefix)
	b.WriteString(prefixSep)
	b.WriteString(string(u[0:groupSize]))
	b.WriteString(groupSep)
	b.WriteString(string(u[groupSize : 2*groupSize]))
	b.WriteString(groupSep)
	b.WriteString(string(u[2*groupSize:]))

	return b.String()
}

// Compact returns "CHEDDDDDDDDD", the form used in ZEFIX request paths.
func (u UID) Compact() string {
	if !u.valid() {
		return string(u)
	}

	return prefix + string(u)
}

func (u UID) valid() bool {
	return len(u) == Length && allDigits(string(u))
}

// Normalize converts raw into a UID. The boolean is false when raw does not
// contain a UID.
func Normalize(raw string) (UID, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	var digits string
	if m := structured.FindStringSubmatch(trimmed); m != nil {
		digits = keepDigits(m[1])
	} else {
		digits = keepDigits(trimmed)
	}

	if len(digits) != Length {
		return "", false
	}

	return UID(digits), true
}

// Format renders raw in the canonical display form, or returns raw unchanged
// when it is not a UID.
func Format(raw string) string {
	u, ok := Normalize(raw)
	if !ok {
		return raw
	}

	return u.Formatted()
}

// IsValidFormat reports whether raw normalizes to a UID.
func IsValidFormat(raw string) bool {
	_, ok := Normalize(raw)

	return ok
}

// Equal reports whether a and b are both UIDs and denote the same one.
// Two invalid inputs are never equal, even when textually identical.
func Equal(a, b string) bool {
	ua, ok := Normalize(a)
	if !ok {
		return false
	}

	ub, ok := Normalize(b)
	if !ok {
		return false
	}

	return ua == ub
}

func keepDigits(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}

	return b.String()
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
