// Package arena implements a chunked bump allocator (memory arena) for Go.
//
// # Overview
//
// An arena hands out monotonically increasing offsets from large chunks and
// never frees individual allocations. Memory comes back only in bulk, through
// Reset (keep the chunks, rewind the offsets) or Release (drop everything).
// It is the backing store for the fill operations of package bumpfill.
//
// # Basic Usage
//
//	a := arena.NewArena(0) // Use default chunk size
//	defer a.Release()      // Clean up when done
//
//	// Reserve raw, uninitialized slots
//	p, err := a.Reserve(16, 8, 8)
//
//	// Allocate typed values (pointer-free types only)
//	ptr := arena.Alloc[MyStruct](a)
//	slice := arena.AllocSlice[int](a, 100)
//
//	// Reset for reuse
//	a.Reset()
//
// # Limits and Backing Memory
//
// WithMaxBytes bounds the total chunk capacity; a reservation beyond it fails
// with ErrAllocationExhausted. WithOffHeap backs chunks with anonymous
// mappings so large arenas add nothing to the garbage collector's heap.
//
// # Thread Safety
//
// The basic Arena type is not thread-safe. For concurrent access, use SafeArena:
//
//	safeArena := arena.NewSafeArena(0)
//	defer safeArena.Release()
//
//	buf := safeArena.AllocBytes(1024)
//	ptr := arena.SafeAlloc[MyStruct](safeArena)
//
// # Important Notes
//
//   - Allocated memory is only valid while the arena exists and until Reset
//   - Memory from Reserve and AllocSlice is not zeroed
//   - Arena memory is not scanned by the garbage collector; never store Go
//     pointers in it
//   - Every reservation is aligned for its element type
package arena
