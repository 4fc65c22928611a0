package validators

import "strings"

// NormalizePhone keeps the digits of a phone number (and a leading +).
// Clients are identified by the result, so "(555) 123-4567" and
// "555.123.4567" are the same person.
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			return "", false
		}
	}

	out := b.String()
	digits := strings.TrimPrefix(out, "+")
	if len(digits) < 10 || len(digits) > 15 {
		return "", false
	}
	return out, true
}
