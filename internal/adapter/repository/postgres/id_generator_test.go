package postgres

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestULIDGenerator(t *testing.T) {
	g := NewULIDGenerator()

	first, second := g.Generate(), g.Generate()
	if first == second {
		t.Fatalf("expected unique ids")
	}
	if _, err := ulid.ParseStrict(first); err != nil {
		t.Fatalf("expected a valid ULID, got %q: %v", first, err)
	}
}
