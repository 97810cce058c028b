package id

import (
	"strings"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for external references.
type Generator interface {
	NewID() (string, error)
}

// namespace scopes every derived ID to this service.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://scouting.aaaj.org.ar/players"))

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	v, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// Derive returns a name-based (v5) UUID for the given parts, so the same
// source row always gets the same ID across reloads.
func Derive(parts ...string) string {
	return uuid.NewSHA1(namespace, []byte(strings.Join(parts, "\x1f"))).String()
}
