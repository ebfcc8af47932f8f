// Package alloc provides a growable typed pool with stack discipline:
// blocks are carved off the end of a contiguous backing array and must
// be released in reverse allocation order.
package alloc

import "fmt"

// DefaultFactor is the growth multiplier applied when the backing array
// runs out of space.
const DefaultFactor = 2

// Stack is a stack-discipline allocator for values of type T. The zero
// value is not usable; construct with NewStack.
//
// Growing the pool moves the backing array. Blocks returned by earlier
// Allocate calls remain valid views of the old array but no longer
// alias the pool, so callers must not retain a block across a later
// Allocate.
type Stack[T any] struct {
	elements []T
	factor   int
}

// NewStack creates a pool with the given initial capacity and growth
// factor. A non-positive capacity is rounded up to one slot; a factor
// below two is rounded up to DefaultFactor.
func NewStack[T any](space, factor int) *Stack[T] {
	if space <= 0 {
		space = 1
	}
	if factor < 2 {
		factor = DefaultFactor
	}
	return &Stack[T]{
		elements: make([]T, 0, space),
		factor:   factor,
	}
}

// Len returns the number of allocated slots.
func (s *Stack[T]) Len() int {
	return len(s.elements)
}

// Cap returns the current capacity of the backing array.
func (s *Stack[T]) Cap() int {
	return cap(s.elements)
}

// Allocate reserves count zeroed slots at the top of the stack and
// returns them as a contiguous block, growing the backing array by the
// configured factor when needed.
func (s *Stack[T]) Allocate(count int) []T {
	if count <= 0 {
		return nil
	}
	s.grow(len(s.elements) + count)

	top := len(s.elements)
	s.elements = s.elements[:top+count]
	for i := top; i < top+count; i++ {
		var zero T
		s.elements[i] = zero
	}
	return s.elements[top : top+count]
}

// Deallocate releases the count most recently allocated slots.
// Releasing more slots than are allocated is a programmer error.
func (s *Stack[T]) Deallocate(count int) {
	if count > len(s.elements) {
		panic(fmt.Sprintf("alloc: deallocating %d slots but only %d are allocated", count, len(s.elements)))
	}
	// Drop references held by the released slots so the garbage
	// collector can reclaim what they point at.
	var zero T
	for i := len(s.elements) - count; i < len(s.elements); i++ {
		s.elements[i] = zero
	}
	s.elements = s.elements[:len(s.elements)-count]
}

func (s *Stack[T]) grow(spaceNeeded int) {
	space := cap(s.elements)
	if space >= spaceNeeded {
		return
	}
	for space < spaceNeeded {
		space *= s.factor
	}

	expanded := make([]T, len(s.elements), space)
	copy(expanded, s.elements)
	s.elements = expanded
}
