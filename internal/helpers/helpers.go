package helpers

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

var (
	slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)
	// Romanian mobile/landline numbers, with or without the country prefix.
	phonePattern = regexp.MustCompile(`^(\+4|004)?0(7\d{8}|[23]\d{8})$`)
)

// GenerateSlug builds a URL slug from the title and location.
func GenerateSlug(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	slug := slugUnsafe.ReplaceAllString(joined, "-")
	return strings.Trim(slug, "-")
}

// GenerateVoucherCode returns a short human-typable coupon code, e.g.
// "GIFT-7K2M9QX4". Crypto randomness so codes are not guessable.
func GenerateVoucherCode() (string, error) {
	const alphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ" // no 0/O/1/I/L
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate voucher code: %v", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return "GIFT-" + string(buf), nil
}

// IsValidPhone checks a phone number after stripping spaces, dots and
// dashes. Invalid numbers are user-correctable, never fatal.
func IsValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", ".", "", "-", "").Replace(strings.TrimSpace(phone))
	return phonePattern.MatchString(cleaned)
}
