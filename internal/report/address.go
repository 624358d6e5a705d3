package report

import (
	"regexp"
	"strings"
)

// Address is the canonical form of a raw From header.
type Address struct {
	Email   string // lower-cased local@domain, or UnknownEmail
	Domain  string // lower-cased domain, or UnknownDomain
	Display string // header with any <...> span removed, trimmed
}

var (
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	angleSpan    = regexp.MustCompile(`<[^>]*>`)
)

// NormalizeAddress extracts the first email-address-looking substring from a
// raw From header. It never fails: headers without a parseable address map
// to the UnknownEmail/UnknownDomain sentinels.
func NormalizeAddress(raw string) Address {
	display := strings.TrimSpace(angleSpan.ReplaceAllString(raw, ""))

	email := strings.ToLower(emailPattern.FindString(raw))
	if email == "" {
		return Address{Email: UnknownEmail, Domain: UnknownDomain, Display: display}
	}
	return Address{Email: email, Domain: domainOf(email), Display: display}
}

// domainOf returns the part after the last '@' of a normalized email.
func domainOf(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return UnknownDomain
}
