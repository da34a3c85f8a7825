package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

// Generator produces opaque identifiers. The auth layer uses it for
// session tokens.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator emits 32 hex characters from a CSPRNG.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return hex.EncodeToString(raw), nil
}
