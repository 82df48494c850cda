package bumpfill

import (
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavanmanishd/bumpfill/arena"
)

// yields streams items in order, independent of the declared length.
func yields[T, S any](declared int, items []T, sigs []S) Stream[T, S] {
	return Exact[T, S](declared, func(yield func(T, S) bool) {
		for i := range items {
			if !yield(items[i], sigs[i]) {
				return
			}
		}
	})
}

func TestFillFromMatchesFillWith(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	values := []int64{3, 1, 4, 1, 5, 9, 2, 6}
	fromStream, err := FillFrom(a, Map(values, func(v int64) (int64, error) { return v * v, nil }))
	require.NoError(t, err)

	indexed, err := FillWith(a, len(values), func(i int) (int64, error) { return values[i] * values[i], nil })
	require.NoError(t, err)

	assert.Equal(t, indexed, fromStream)
	assert.Equal(t, len(values), cap(fromStream))
}

func TestFillFromFailure(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	boom := errors.New("boom")
	pulled := 0
	var rec recorder
	s := Exact[tracked, error](5, func(yield func(tracked, error) bool) {
		for i := 0; i < 5; i++ {
			pulled++
			var err error
			if i == 2 {
				err = boom
			}
			if !yield(tracked{id: i}, err) {
				return
			}
		}
	})

	out, err := FillFrom(a, s, WithDestroy(rec.hook))
	assert.Nil(t, out)
	assert.Same(t, boom, err)
	assert.Equal(t, 3, pulled)
	assert.Equal(t, []int{0, 1}, rec.ids)
}

func TestFillFromShortStream(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	var rec recorder
	s := yields(3, []tracked{{id: 0}, {id: 1}}, []error{nil, nil})
	out, err := FillFrom(a, s, WithDestroy(rec.hook))

	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Contains(t, err.Error(), "declared 3 items, ended after 2")
	assert.Equal(t, []int{0, 1}, rec.ids)
}

func TestFillFromLongStream(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	var rec recorder
	s := yields(2, []tracked{{id: 0}, {id: 1}, {id: 2}, {id: 3}}, make([]error, 4))
	out, err := FillFrom(a, s, WithDestroy(rec.hook))

	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Equal(t, []int{0, 1}, rec.ids)
}

func TestFillFromEmptyStream(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	out, err := FillFrom(a, Map([]int{}, func(v int) (int, error) { return v, nil }))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	_, err = FillFrom(a, yields(0, []int{1}, []error{nil}))
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, a.SizeInUse())

	// A declared-empty stream is still started once to look for surplus items.
	started := 0
	out, err = FillFrom(a, Exact[int, error](0, func(yield func(int, error) bool) {
		started++
	}))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 1, started)
	assert.Zero(t, a.Metrics().Reservations)
}

func TestFillFromNegativeLength(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	_, err := FillFrom(a, yields(-1, []int{1}, []error{nil}))
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestFillFromOK(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	square := func(v int32) (int32, bool) {
		sq := int64(v) * int64(v)
		if sq > math.MaxInt32 {
			return 0, false
		}
		return int32(sq), true
	}

	out, err := FillFromOK(a, Map([]int32{2, 3, 5}, square))
	require.NoError(t, err)
	assert.Equal(t, []int32{4, 9, 25}, out)

	out, err = FillFromOK(a, Map([]int32{2, 3, math.MaxInt32}, square))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrAbsent)

	_, err = FillFromOK(a, yields(4, []int32{1, 2}, []bool{true, true}))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestFillFromStopsStream(t *testing.T) {
	a := arena.NewArena(1024)
	defer a.Release()

	stopped := false
	s := Exact[int, error](3, func(yield func(int, error) bool) {
		defer func() { stopped = true }()
		for i := 0; ; i++ {
			if !yield(i, nil) {
				return
			}
		}
	})
	_, err := FillFrom(a, s)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.True(t, stopped)
}

func TestExact(t *testing.T) {
	var seq iter.Seq2[string, bool] = func(yield func(string, bool) bool) {
		yield("a", true)
	}
	s := Exact(1, seq)
	assert.Equal(t, 1, s.Len())

	n := 0
	for v, ok := range s.All() {
		assert.Equal(t, "a", v)
		assert.True(t, ok)
		n++
	}
	assert.Equal(t, 1, n)
}
