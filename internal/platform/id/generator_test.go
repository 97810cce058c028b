package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestDerive_IsStable(t *testing.T) {
	a := Derive("laterales", "3", "Gonzalo Montiel", "River Plate")
	b := Derive("laterales", "3", "Gonzalo Montiel", "River Plate")
	if a != b {
		t.Fatalf("expected stable id, got %s and %s", a, b)
	}
	parsed, err := uuid.Parse(a)
	if err != nil {
		t.Fatalf("derived id is not a uuid: %v", err)
	}
	if parsed.Version() != 5 {
		t.Fatalf("expected version 5, got %d", parsed.Version())
	}
}

func TestDerive_PartBoundariesMatter(t *testing.T) {
	if Derive("ab", "c") == Derive("a", "bc") {
		t.Fatalf("different part splits must not collide")
	}
}

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()
	first, err := g.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	second, _ := g.NewID()
	if first == second {
		t.Fatalf("expected distinct ids")
	}
}
