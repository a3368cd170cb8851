package order

import (
	"math/rand"
	"strings"
)

// base36 without the visually ambiguous 0, o, i and j.
const codeAlphabet = "123456789abcdefghklmnpqrstuvwxyz"

// NewCode generates a short order code. Codes are cosmetic identifiers;
// collisions are accepted as negligible and never checked.
func NewCode() string {
	b := make([]byte, 5)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return strings.ToUpper(string(b))
}
