package bumpfill

import (
	"github.com/pkg/errors"
)

// FillWith reserves n elements from a and constructs element i from
// produce(i), for i = 0, 1, ... in order. It stops at the first error,
// destroys the elements already built and returns that error unchanged.
//
// The returned slice has length and capacity n and lives in arena memory
// when T holds no pointers. n == 0 returns an empty slice without calling
// produce or touching a.
func FillWith[T any](a Allocator, n int, produce func(i int) (T, error), opts ...Option[T]) ([]T, error) {
	return run(a, "FillWith", n, produce, nil, opts)
}

// FillWithOK is FillWith for producers that report a missing value instead
// of an error. Absence is returned as ErrAbsent.
func FillWithOK[T any](a Allocator, n int, produce func(i int) (T, bool), opts ...Option[T]) ([]T, error) {
	return run(a, "FillWithOK", n, func(i int) (T, error) {
		v, ok := produce(i)
		if !ok {
			return v, ErrAbsent
		}
		return v, nil
	}, nil, opts)
}

// result describes how a fill ended, for logging and statistics.
type result struct {
	state     State
	built     int
	destroyed int
	heap      bool
	err       error
}

// run drives a fill and reports its outcome. verify, when set, runs after
// the last element is built and may still abandon the fill.
func run[T any](a Allocator, op string, n int, next func(int) (T, error), verify func() error, opts []Option[T]) ([]T, error) {
	var cfg fillConfig[T]
	for _, opt := range opts {
		opt(&cfg)
	}
	b := builderFor(a)

	out, r := construct(b.alloc, n, next, verify, destroyFunc(cfg.destroy))
	b.logger.LogFill(op, n, r.built, r.state, r.err)
	b.stats.record(r)
	return out, r.err
}

// construct moves one block through Reserving, Constructing and then
// Finished or Abandoned. The guard's release runs on every early exit,
// panics included, so the live prefix is destroyed before construct returns.
func construct[T any](a Allocator, n int, next func(int) (T, error), verify func() error, destroy func(*T)) (out []T, r result) {
	r.state = Reserving
	if n < 0 {
		r.err = errors.Wrapf(ErrInvalidLength, "length %d", n)
		return nil, r
	}

	var blk block[T]
	if n == 0 {
		blk.slots = []T{}
	} else {
		var err error
		if blk, err = reserve[T](a, n); err != nil {
			r.err = err
			return nil, r
		}
	}
	r.heap = blk.onHeap

	g := newGuard(blk, destroy)
	defer func() {
		g.release()
		r.state = g.state
		r.destroyed = g.destroyed
	}()

	for i := 0; i < n; i++ {
		v, err := next(i)
		if err != nil {
			r.built = i
			r.err = err
			return nil, r
		}
		g.push(v)
	}
	r.built = n

	if verify != nil {
		if err := verify(); err != nil {
			r.err = err
			return nil, r
		}
	}
	return g.finish(), r
}
