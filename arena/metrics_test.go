package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)

	assert.Zero(t, a.SizeInUse())
	assert.Equal(t, 1, a.NumChunks())
	assert.Equal(t, 1024, a.Capacity())
	assert.Equal(t, 1024, a.ChunkSize())
	assert.Zero(t, a.Utilization())

	a.AllocBytes(100)
	a.AllocBytes(200)
	assert.NotZero(t, a.SizeInUse())
	assert.InDelta(t, 0.3, a.Utilization(), 0.01)

	// Force chunk growth
	a.AllocBytes(2000)
	assert.Equal(t, 2, a.NumChunks())
	assert.Greater(t, a.Capacity(), 1024)

	_, err := a.Reserve(4, 8, 8)
	require.NoError(t, err)

	m := a.Metrics()
	assert.Equal(t, ArenaMetrics{
		SizeInUse:    a.SizeInUse(),
		Capacity:     a.Capacity(),
		NumChunks:    a.NumChunks(),
		ChunkSize:    a.ChunkSize(),
		Utilization:  a.Utilization(),
		Reservations: 1,
	}, m)
}

func TestArenaMetricsAfterReset(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(500)
	require.NotZero(t, a.Utilization())

	a.Reset()
	assert.Zero(t, a.SizeInUse())
	assert.Zero(t, a.Utilization())
	assert.NotZero(t, a.NumChunks())
	assert.NotZero(t, a.Capacity())
}

func TestArenaMetricsAfterRelease(t *testing.T) {
	a := NewArena(1024)
	a.AllocBytes(100)
	require.NoError(t, a.Release())

	m := a.Metrics()
	assert.Zero(t, m.SizeInUse)
	assert.Zero(t, m.NumChunks)
	assert.Zero(t, m.Capacity)
	assert.Zero(t, m.Utilization)
}

func TestSafeArenaMetrics(t *testing.T) {
	s := NewSafeArena(2048)
	s.AllocBytes(300)

	m := s.Metrics()
	assert.Equal(t, 2048, m.ChunkSize)
	assert.Equal(t, s.SizeInUse(), m.SizeInUse)
	assert.Greater(t, m.Utilization, 0.0)
	assert.LessOrEqual(t, m.Utilization, 1.0)
}

func BenchmarkMetrics(b *testing.B) {
	a := NewArena(1024 * 1024)
	for i := 0; i < 100; i++ {
		a.AllocBytes(1000)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Metrics()
	}
}
