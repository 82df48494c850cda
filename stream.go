package bumpfill

import (
	"iter"

	"github.com/pkg/errors"
)

// Stream is a sequence that knows its length before it is consumed. All
// must yield exactly Len items; the second value of each pair is the
// failure signal (an error, or a presence flag).
type Stream[T, S any] interface {
	Len() int
	All() iter.Seq2[T, S]
}

type exact[T, S any] struct {
	n   int
	seq iter.Seq2[T, S]
}

func (e exact[T, S]) Len() int {
	return e.n
}

func (e exact[T, S]) All() iter.Seq2[T, S] {
	return e.seq
}

// Exact declares that seq yields n items.
func Exact[T, S any](n int, seq iter.Seq2[T, S]) Stream[T, S] {
	return exact[T, S]{n: n, seq: seq}
}

// Map streams f applied to each element of in, with length len(in).
func Map[In, T, S any](in []In, f func(In) (T, S)) Stream[T, S] {
	return Exact[T, S](len(in), func(yield func(T, S) bool) {
		for _, x := range in {
			if !yield(f(x)) {
				return
			}
		}
	})
}

// FillFrom reserves s.Len() elements from a and fills them from s in order.
// The first error from s is returned unchanged after the elements built so
// far are destroyed. A stream that ends early or runs past its declared
// length fails with ErrLengthMismatch and keeps nothing.
//
// Once s.Len() items are built, FillFrom pulls one more item to detect a
// stream that runs long. That holds for s.Len() == 0 too: the stream is
// started exactly once, and nothing is reserved from a.
func FillFrom[T any](a Allocator, s Stream[T, error], opts ...Option[T]) ([]T, error) {
	return fillStream(a, "FillFrom", s, func(err error) error { return err }, opts)
}

// FillFromOK is FillFrom for streams of (value, present) pairs. The first
// absent item stops the fill with ErrAbsent. Like FillFrom it pulls once past
// the declared length, even when that length is 0.
func FillFromOK[T any](a Allocator, s Stream[T, bool], opts ...Option[T]) ([]T, error) {
	return fillStream(a, "FillFromOK", s, func(ok bool) error {
		if !ok {
			return ErrAbsent
		}
		return nil
	}, opts)
}

// fillStream pulls from s one item per slot. After the block is full it
// pulls once more; any surplus item abandons the fill.
func fillStream[T, S any](a Allocator, op string, s Stream[T, S], failure func(S) error, opts []Option[T]) ([]T, error) {
	n := s.Len()
	pull, stop := iter.Pull2(s.All())
	defer stop()

	next := func(i int) (T, error) {
		v, sig, ok := pull()
		if !ok {
			return v, errors.Wrapf(ErrLengthMismatch, "stream declared %d items, ended after %d", n, i)
		}
		return v, failure(sig)
	}
	verify := func() error {
		if _, _, ok := pull(); ok {
			return errors.Wrapf(ErrLengthMismatch, "stream declared %d items, yielded more", n)
		}
		return nil
	}
	return run(a, op, n, next, verify, opts)
}
