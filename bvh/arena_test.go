package bvh

import (
	"testing"

	"github.com/achilleasa/spatial/types"
)

func TestArenaAllocate(t *testing.T) {
	a := newArena[types.Bound2](4)

	for i := int32(0); i < 4; i++ {
		if idx := a.allocate(); idx != i {
			t.Fatalf("expected allocation %d to return slot %d; got %d", i, i, idx)
		}
	}
	if len(a.nodes) != 4 {
		t.Fatalf("expected arena to hold 4 nodes; got %d", len(a.nodes))
	}
}

func TestArenaCapacityViolationPanics(t *testing.T) {
	a := newArena[types.Bound2](2)
	a.allocate()
	a.allocate()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected allocate to panic once capacity is exceeded")
		}
	}()
	a.allocate()
}

func TestArenaNodeAddressStability(t *testing.T) {
	// Child links are arena indices, but the builder also takes node
	// pointers while deriving internal nodes; the backing array must
	// therefore never move across allocations.
	a := newArena[types.Bound2](8)
	first := a.allocate()
	firstAddr := &a.nodes[first]

	for i := 0; i < 7; i++ {
		a.allocate()
	}
	if firstAddr != &a.nodes[first] {
		t.Fatalf("expected node addresses to remain stable across allocations")
	}
}
