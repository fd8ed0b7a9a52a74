package directory

import (
	"strings"
)

// normalizePhone strips everything but digits: "+1 (416) 123-4567" becomes
// "14161234567".
func normalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// phoneEquivalent reports whether an entered phone number refers to the same
// line as a stored one. Comparison is on digits only, under three rules:
//
//  1. the digits match verbatim;
//  2. the input matches the last 10 digits of the stored number, for stored
//     values carrying a country code the caller omitted;
//  3. the input prefixed with "1" matches the stored number, for callers who
//     typed the NANP country code the store left out.
func phoneEquivalent(input, stored string) bool {
	in := normalizePhone(input)
	st := normalizePhone(stored)
	if in == "" || st == "" {
		return false
	}

	switch {
	case in == st:
		return true
	case len(st) >= 10 && in == st[len(st)-10:]:
		return true
	case "1"+in == st:
		return true
	}
	return false
}
