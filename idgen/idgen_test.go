package idgen

import (
	"strings"
	"testing"
)

func TestUUIDv7_Format(t *testing.T) {
	gen := UUIDv7()
	id := gen()
	// UUID format: 8-4-4-4-12
	parts := strings.Split(id, "-")
	if len(parts) != 5 {
		t.Fatalf("UUIDv7: expected 5 parts, got %d in %q", len(parts), id)
	}
	if len(id) != 36 {
		t.Fatalf("UUIDv7: expected length 36, got %d", len(id))
	}
}

func TestUUIDv7_Uniqueness(t *testing.T) {
	gen := UUIDv7()
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := gen()
		if _, ok := seen[id]; ok {
			t.Fatalf("UUIDv7: duplicate at iteration %d", i)
		}
		seen[id] = struct{}{}
	}
}

func TestPrefixed(t *testing.T) {
	gen := Prefixed("evt_", UUIDv7())
	id := gen()
	if !strings.HasPrefix(id, "evt_") {
		t.Fatalf("Prefixed: expected prefix 'evt_', got %q", id)
	}
	if len(id) != 4+36 {
		t.Fatalf("Prefixed: expected length 40, got %d", len(id))
	}
}

func TestSequential_Format(t *testing.T) {
	gen := Sequential("op_")
	id := gen()
	if !strings.HasPrefix(id, "op_") {
		t.Fatalf("Sequential: expected prefix 'op_', got %q", id)
	}
	// op_ + 14-digit timestamp + _ + counter
	rest := strings.TrimPrefix(id, "op_")
	parts := strings.Split(rest, "_")
	if len(parts) != 2 {
		t.Fatalf("Sequential: bad format %q", id)
	}
	if len(parts[0]) != 14 {
		t.Fatalf("Sequential: expected 14-digit timestamp, got %q", parts[0])
	}
	if parts[1] != "1" {
		t.Fatalf("Sequential: first counter should be 1, got %q", parts[1])
	}
}

func TestSequential_UniqueWithinSecond(t *testing.T) {
	gen := Sequential("op_")
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen()
		if _, ok := seen[id]; ok {
			t.Fatalf("Sequential: duplicate at iteration %d: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestSequential_IndependentCounters(t *testing.T) {
	a := Sequential("op_")
	b := Sequential("op_")
	a()
	a()
	id := b()
	if !strings.HasSuffix(id, "_1") {
		t.Fatalf("Sequential: generators must not share counters, got %q", id)
	}
}

func TestDefault_IsUUIDv7(t *testing.T) {
	id := New()
	if len(id) != 36 {
		t.Fatalf("New (UUIDv7 default): expected length 36, got %d for %q", len(id), id)
	}
}
