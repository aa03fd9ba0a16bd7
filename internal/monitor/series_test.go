package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"default capacity", 0, DefaultCapacity},
		{"negative capacity", -1, DefaultCapacity},
		{"custom capacity", 100, 100},
		{"small capacity", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeries(tt.capacity)
			require.NotNil(t, s)
			assert.Equal(t, tt.expected, s.Cap())
			assert.Equal(t, 0, s.Len())
		})
	}
}

func TestSeries_Empty(t *testing.T) {
	s := NewSeries(10)

	assert.Nil(t, s.Points())
	assert.Nil(t, s.Ticks())
	assert.Nil(t, s.Values())

	_, ok := s.Latest()
	assert.False(t, ok)
}

func TestSeries_PushUnderCapacity(t *testing.T) {
	s := NewSeries(10)
	for i := 0; i < 5; i++ {
		s.Push(i, float64(i*10))
	}

	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int{0, 1, 2, 3, 4}, s.Ticks())
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, s.Values())
}

func TestSeries_EvictsOldest(t *testing.T) {
	s := NewSeries(60)
	for i := 0; i < 70; i++ {
		s.Push(i, float64(i))
	}

	require.Equal(t, 60, s.Len())

	ticks := s.Ticks()
	assert.Equal(t, 10, ticks[0])
	assert.Equal(t, 69, ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.Equal(t, ticks[i-1]+1, ticks[i])
	}

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, Point{Tick: 69, Value: 69}, latest)
}

func TestSeries_LenNeverExceedsCap(t *testing.T) {
	s := NewSeries(3)
	for i := 0; i < 10; i++ {
		s.Push(i, 1)
		assert.LessOrEqual(t, s.Len(), s.Cap())
		assert.Len(t, s.Points(), s.Len())
	}
}

func TestSeries_Reset(t *testing.T) {
	s := NewSeries(5)
	s.Push(0, 1)
	s.Push(1, 2)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Points())

	s.Push(7, 3)
	assert.Equal(t, []Point{{Tick: 7, Value: 3}}, s.Points())
}
