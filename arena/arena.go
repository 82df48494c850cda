// Package arena implements a chunked bump allocator (memory arena).
// Typical usage: create one arena per request, allocate many temporary
// objects from it, then Reset() at the end of the request for O(1) cleanup.
package arena

import (
	"errors"
	"math/bits"
	"unsafe"

	pkgerrors "github.com/pkg/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// ptrAlign is the alignment used by AllocBytes.
const ptrAlign = unsafe.Sizeof(uintptr(0))

var (
	// ErrAllocationExhausted is returned when the arena cannot grow to satisfy a reservation.
	ErrAllocationExhausted = errors.New("arena: allocation exhausted")
	// ErrReleased is returned when a released arena is asked for memory.
	ErrReleased = errors.New("arena: use after Release()")
)

// zeroBlock backs every zero-byte reservation so callers always get a non-nil base.
var zeroBlock [0]uint64

// chunk represents a single memory chunk within an arena.
type chunk struct {
	buf    []byte             // backing memory
	offset uintptr            // allocation offset within buf
	unmap  func([]byte) error // non-nil for off-heap chunks
}

// Arena is a chunked bump allocator. Not goroutine-safe by default.
// Use SafeArena for concurrent access.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk serving allocations
	maxBytes  int
	offHeap   bool
	released  bool

	reservations uint64
	exhaustions  uint64
}

// Option configures an Arena.
type Option func(*Arena)

// WithMaxBytes caps the total chunk capacity of the arena. Reservations that
// would need more fail with ErrAllocationExhausted. n <= 0 means unlimited.
func WithMaxBytes(n int) Option {
	return func(a *Arena) {
		a.maxBytes = n
	}
}

// WithOffHeap backs chunks with anonymous mappings outside the Go heap.
// Off-heap chunks are invisible to the garbage collector, so they must only
// hold pointer-free data. Platforms without mmap silently use heap chunks.
func WithOffHeap() Option {
	return func(a *Arena) {
		a.offHeap = true
	}
}

// NewArena creates a new Arena with the specified chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	for _, opt := range opts {
		opt(a)
	}
	first := chunkSize
	if a.maxBytes > 0 && first > a.maxBytes {
		first = a.maxBytes
	}
	a.grow(first)
	return a
}

// Reserve returns the base of count uninitialized slots of size bytes each,
// aligned to align. It never zeroes the memory. A zero-byte request returns a
// valid non-nil pointer without consuming arena space.
func (a *Arena) Reserve(count, size, align uintptr) (unsafe.Pointer, error) {
	if a.released {
		return nil, ErrReleased
	}
	if align == 0 {
		align = 1
	}
	if align&(align-1) != 0 {
		return nil, pkgerrors.Errorf("arena: alignment %d is not a power of two", align)
	}
	hi, total := bits.Mul64(uint64(count), uint64(size))
	if hi != 0 || total > uint64(maxAlloc) {
		a.exhaustions++
		return nil, pkgerrors.Wrapf(ErrAllocationExhausted, "reserve %d x %d bytes", count, size)
	}
	if total == 0 {
		return unsafe.Pointer(&zeroBlock), nil
	}
	b, err := a.alloc(int(total), align)
	if err != nil {
		return nil, err
	}
	a.reservations++
	return unsafe.Pointer(unsafe.SliceData(b)), nil
}

// maxAlloc bounds a single reservation so offsets never overflow int.
const maxAlloc = int(^uint(0) >> 2)

// AllocBytes returns a []byte slice pointing into the arena's backing chunk.
// The caller must ensure the arena remains reachable while the returned slice is in use.
// Returns nil if n <= 0. Panics on use after Release or when a WithMaxBytes
// limit is hit; use Reserve to receive those conditions as errors.
func (a *Arena) AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	b, err := a.alloc(n, ptrAlign)
	if err != nil {
		panic(err)
	}
	return b
}

// alloc bumps the current chunk, moving on to retained chunks and finally
// growing the arena when nothing left fits.
func (a *Arena) alloc(n int, align uintptr) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}

	// Fast path: current chunk
	if b, ok := a.chunks[a.current].bump(n, align); ok {
		return b, nil
	}

	// Chunks kept across Reset
	for i := a.current + 1; i < len(a.chunks); i++ {
		if b, ok := a.chunks[i].bump(n, align); ok {
			a.current = i
			return b, nil
		}
	}

	// Leave room to align within the fresh chunk whatever its base.
	need := n + int(align) - 1
	size := max(a.chunkSize, need)
	if a.maxBytes > 0 {
		free := a.maxBytes - a.Capacity()
		if free < need {
			a.exhaustions++
			return nil, pkgerrors.Wrapf(ErrAllocationExhausted,
				"need %d bytes, %d of %d left", need, max(free, 0), a.maxBytes)
		}
		size = min(size, free)
	}
	a.grow(size)

	b, ok := a.chunks[a.current].bump(n, align)
	if !ok {
		a.exhaustions++
		return nil, pkgerrors.Wrapf(ErrAllocationExhausted,
			"%d bytes aligned to %d do not fit a fresh %d byte chunk", n, align, size)
	}
	return b, nil
}

// bump carves n bytes aligned to align out of the chunk, if they fit.
func (c *chunk) bump(n int, align uintptr) ([]byte, bool) {
	if len(c.buf) == 0 {
		return nil, false
	}
	off := c.aligned(align)
	if off+uintptr(n) > uintptr(len(c.buf)) {
		return nil, false
	}
	c.offset = off + uintptr(n)
	return c.buf[off : off+uintptr(n) : off+uintptr(n)], true
}

// aligned returns the next offset whose absolute address is a multiple of align.
func (c *chunk) aligned(align uintptr) uintptr {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	return alignUp(base+c.offset, align) - base
}

// free reports how many bytes aligned to align are left in the chunk.
func (c *chunk) free(align uintptr) int {
	off := c.aligned(align)
	if off >= uintptr(len(c.buf)) {
		return 0
	}
	return len(c.buf) - int(off)
}

// EnsureCapacity ensures the current chunk has at least n free bytes.
// If not, it grows the arena with a new chunk.
func (a *Arena) EnsureCapacity(n int) {
	a.panicIfReleased()
	if a.chunks[a.current].free(ptrAlign) >= n {
		return
	}
	size := max(a.chunkSize, n)
	if a.maxBytes > 0 {
		// Past the limit the next allocation reports exhaustion instead.
		if a.Capacity()+n > a.maxBytes {
			return
		}
		size = min(size, a.maxBytes-a.Capacity())
	}
	a.grow(size)
}

// Reset resets allocation offsets to zero but keeps allocated chunks for reuse.
// This provides O(1) cleanup for arena reuse.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = 0
}

// Release drops all chunks and makes the arena unusable.
// Any subsequent allocation panics, and Reserve returns ErrReleased.
// The returned error reports failures unmapping off-heap chunks.
func (a *Arena) Release() error {
	var errs []error
	for _, c := range a.chunks {
		if c.unmap != nil {
			if err := c.unmap(c.buf); err != nil {
				errs = append(errs, err)
			}
		}
	}
	a.chunks = nil
	a.current = 0
	a.released = true
	return errors.Join(errs...)
}

// grow appends a new chunk of size bytes and makes it current.
func (a *Arena) grow(size int) {
	c := chunk{}
	if a.offHeap {
		if buf, unmap, err := mapAnon(size); err == nil {
			c.buf, c.unmap = buf, unmap
		}
	}
	if c.buf == nil {
		c.buf = make([]byte, size)
	}
	a.chunks = append(a.chunks, c)
	a.current = len(a.chunks) - 1
}

// panicIfReleased panics if the arena has been released.
func (a *Arena) panicIfReleased() {
	if a.released {
		panic(ErrReleased)
	}
}

func alignUp(v, align uintptr) uintptr {
	mask := align - 1
	return (v + mask) & ^mask
}
