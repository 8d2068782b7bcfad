package validators

import (
	"strings"
	"unicode"
)

// IsValidEmail accepts local@domain.tld: exactly one "@", no whitespace,
// and a dot in the domain with something on both sides of it.
func IsValidEmail(email string) bool {
	if strings.Count(email, "@") != 1 {
		return false
	}
	if strings.IndexFunc(email, unicode.IsSpace) >= 0 {
		return false
	}

	at := strings.IndexByte(email, '@')
	local, domain := email[:at], email[at+1:]
	if local == "" || domain == "" {
		return false
	}

	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72
