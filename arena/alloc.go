package arena

import "unsafe"

// The typed helpers place T in untyped arena bytes. T must not contain Go
// pointers: the garbage collector does not scan arena memory.

// Alloc returns a pointer to a T stored inside the arena with zeroed memory.
// The returned pointer is valid as long as the arena hasn't been released.
func Alloc[T any](a *Arena) *T {
	p := AllocUninitialized[T](a)
	*p = *new(T)
	return p
}

// AllocUninitialized returns a *T located in the arena without zeroing memory.
// This is faster than Alloc but the memory contents are undefined.
// Use with caution - ensure proper initialization before use.
func AllocUninitialized[T any](a *Arena) *T {
	var zero T
	p, err := a.Reserve(1, unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if err != nil {
		panic(err)
	}
	return (*T)(p)
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The slice elements are not initialized (contain garbage data).
// Returns nil if n <= 0.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	p, err := a.Reserve(uintptr(n), unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if err != nil {
		panic(err)
	}
	return unsafe.Slice((*T)(p), n)
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed memory.
// This is slower than AllocSlice but ensures clean initialization.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	clear(s)
	return s
}
