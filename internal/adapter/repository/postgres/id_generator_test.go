package postgres

import "testing"

func TestULIDGeneratorOrderedWithinMillisecond(t *testing.T) {
	g := NewULIDGenerator()

	prev := ""
	for i := 0; i < 1000; i++ {
		id := g.Generate()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", id)
		}
		if id <= prev {
			t.Fatalf("expected strictly increasing IDs, got %q after %q", id, prev)
		}
		prev = id
	}
}
