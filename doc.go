// Package bumpfill builds fixed-length slices in place inside a bump arena
// from producers that may fail.
//
// A fill reserves one block for all n elements up front, then constructs
// element 0, 1, ... in order. If the producer fails at index k, elements
// [0, k) are destroyed exactly once, in order, and the failure is returned;
// slots [k, n) are never read. The abandoned block is not reclaimed until the
// arena is reset or released.
//
// # Entry Points
//
//	FillWith(a, n, func(i int) (T, error))   // error payload
//	FillWithOK(a, n, func(i int) (T, bool))  // presence, fails with ErrAbsent
//	FillFrom(a, Stream[T, error])            // exact-length stream
//	FillFromOK(a, Stream[T, bool])
//
// A stream whose item count disagrees with its Len fails with
// ErrLengthMismatch and never returns a partly built slice.
//
// # Example
//
//	a := arena.NewArena(0)
//	defer a.Release()
//
//	xs, err := bumpfill.FillWith(a, 5, func(i int) (int, error) {
//		return 5 * (i + 1), nil
//	})
//
// # Destruction
//
// Elements of an abandoned fill are destroyed with the WithDestroy hook if
// given, else with their Destroy method (see Destroyer), and then zeroed.
//
// # Memory
//
// Element types without Go pointers live in arena memory. Types holding
// pointers are placed on the Go heap so the garbage collector can trace
// them; the fill protocol is the same for both.
package bumpfill
