package bumpfill

import (
	"math/bits"
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/pavanmanishd/bumpfill/arena"
)

// Allocator is the arena capability a fill reserves its block from.
// *arena.Arena, *arena.SafeArena and *Builder implement it.
type Allocator interface {
	// Reserve returns the base of count uninitialized slots of size bytes,
	// aligned to align. It fails with arena.ErrAllocationExhausted when the
	// arena cannot grow.
	Reserve(count, size, align uintptr) (unsafe.Pointer, error)
}

// block is the storage reserved for one fill.
type block[T any] struct {
	slots []T
	// onHeap is set when T holds pointers and the slots live in GC memory.
	onHeap bool
}

// reserve obtains n slots for T. Pointer-free types go to the allocator;
// types holding pointers are placed on the Go heap, where the collector can
// trace them.
func reserve[T any](a Allocator, n int) (block[T], error) {
	var zero T
	size, align := unsafe.Sizeof(zero), unsafe.Alignof(zero)

	if hi, total := bits.Mul64(uint64(n), uint64(size)); hi != 0 || total > uint64(maxBlockBytes) {
		return block[T]{}, errors.Wrapf(arena.ErrAllocationExhausted, "%d elements of %d bytes", n, size)
	}
	if size == 0 {
		return block[T]{slots: make([]T, n)}, nil
	}
	if hasPointers(reflect.TypeFor[T]()) {
		return block[T]{slots: make([]T, n), onHeap: true}, nil
	}

	p, err := a.Reserve(uintptr(n), size, align)
	if err != nil {
		return block[T]{}, errors.Wrapf(err, "reserve %d elements", n)
	}
	return block[T]{slots: unsafe.Slice((*T)(p), n)}, nil
}

const maxBlockBytes = int(^uint(0) >> 2)

var pointerTypes sync.Map // reflect.Type -> bool

// hasPointers reports whether values of t contain anything the garbage
// collector must trace.
func hasPointers(t reflect.Type) bool {
	if v, ok := pointerTypes.Load(t); ok {
		return v.(bool)
	}
	has := scanPointers(t)
	pointerTypes.Store(t, has)
	return has
}

func scanPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && scanPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if scanPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// guard tracks how many leading slots of a block hold live values. Until it
// is disarmed by finish, release destroys exactly those slots.
type guard[T any] struct {
	slots     []T
	count     int
	destroy   func(*T)
	state     State
	destroyed int
}

func newGuard[T any](b block[T], destroy func(*T)) *guard[T] {
	return &guard[T]{slots: b.slots, destroy: destroy, state: Constructing}
}

// push constructs the next slot.
func (g *guard[T]) push(v T) {
	g.slots[g.count] = v
	g.count++
}

// finish hands the block over and disarms the guard.
func (g *guard[T]) finish() []T {
	g.state = Finished
	s := g.slots
	g.slots = nil
	return s
}

// release destroys the live prefix in index order and zeroes it.
// It is a no-op once the guard is finished or released.
func (g *guard[T]) release() {
	if g.state != Constructing {
		return
	}
	g.state = Abandoned
	live := g.slots[:g.count]
	g.count = 0
	g.slots = nil
	g.destroyed = len(live)
	if g.destroy != nil {
		for i := range live {
			g.destroy(&live[i])
		}
	}
	clear(live)
}
