package service

import "strings"

// DefaultCountryCode is Argentina.
const DefaultCountryCode = "54"

// PhonePolicy normalizes patient phones to international form before submission.
// The raw value is only trimmed; other characters are left as entered.
type PhonePolicy struct {
	CountryCode string
}

func NewPhonePolicy(countryCode string) PhonePolicy {
	countryCode = strings.TrimPrefix(strings.TrimSpace(countryCode), "+")
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	return PhonePolicy{CountryCode: countryCode}
}

// Normalize keeps "+..." numbers, prefixes "+" when the country code is
// already present, and otherwise adds "+<code>" after stripping leading zeros.
func (p PhonePolicy) Normalize(raw string) string {
	phone := strings.TrimSpace(raw)
	switch {
	case phone == "":
		return ""
	case strings.HasPrefix(phone, "+"):
		return phone
	case strings.HasPrefix(phone, p.CountryCode):
		return "+" + phone
	default:
		return "+" + p.CountryCode + strings.TrimLeft(phone, "0")
	}
}
