package domain

import (
	"crypto/rand"
	"regexp"
	"strings"
)

// PairingCodePrefix starts every pairing code.
const PairingCodePrefix = "RW"

var pairingCodePattern = regexp.MustCompile(`^RW-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// NormalizePairingCode trims a user-entered code and upper-cases its ASCII
// letters. Other runes are left alone so that look-alikes such as 'ſ' or 'ı'
// still fail ValidPairingCode. It does not validate.
func NormalizePairingCode(code string) string {
	return strings.Map(func(r rune) rune {
		if 'a' <= r && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, strings.TrimSpace(code))
}

// ValidPairingCode reports whether code, already normalized, has the
// RW-XXXX-XXXX shape.
func ValidPairingCode(code string) bool {
	return pairingCodePattern.MatchString(code)
}

// NewPairingCode returns a random, normalized pairing code. The site's own
// code flow lives elsewhere; this exists for tooling and tests.
func NewPairingCode() string {
	// rand.Text is base32 (A-Z, 2-7), a subset of the code alphabet.
	s := rand.Text()
	return PairingCodePrefix + "-" + s[:4] + "-" + s[4:8]
}
