package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntRange(0, 1000), b.IntRange(0, 1000))
		assert.Equal(t, a.HexID(16), b.HexID(16))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.HexID(16) != b.HexID(16) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestUnseededSourcePanics(t *testing.T) {
	assert.Panics(t, func() {
		var s Source
		s.Float64()
	})
	assert.Panics(t, func() {
		var s *Source
		s.IntRange(0, 1)
	})
}

func TestIntRangeBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.IntRange(3, 9)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
	}
	// Degenerate range is a single value.
	assert.Equal(t, 5, s.IntRange(5, 5))

	assert.Panics(t, func() { s.IntRange(9, 3) })
}

func TestHexIDShape(t *testing.T) {
	s := New(99)
	id := s.HexID(16)
	assert.Len(t, id, 16)
	for _, c := range id {
		assert.Contains(t, hexAlphabet, string(c))
	}
}

func TestChoiceRespectsWeights(t *testing.T) {
	s := New(42)
	table := []Weighted[string]{
		{Value: "common", Weight: 0.9},
		{Value: "rare", Weight: 0.1},
	}

	counts := map[string]int{}
	const draws = 10000
	for i := 0; i < draws; i++ {
		counts[Choice(s, table)]++
	}

	assert.Greater(t, counts["common"], counts["rare"])
	// Loose statistical bound; 10k draws at 90/10 stays well inside it.
	assert.InDelta(t, 0.9, float64(counts["common"])/draws, 0.05)
}

func TestChoiceZeroWeightNeverDrawn(t *testing.T) {
	s := New(42)
	table := []Weighted[string]{
		{Value: "only", Weight: 1.0},
		{Value: "never", Weight: 0.0},
	}
	for i := 0; i < 1000; i++ {
		assert.Equal(t, "only", Choice(s, table))
	}
}

func TestChoiceRejectsBadTables(t *testing.T) {
	s := New(42)
	assert.Panics(t, func() { Choice(s, []Weighted[int]{}) })
	assert.Panics(t, func() { Choice(s, []Weighted[int]{{Value: 1, Weight: 0}}) })
	assert.Panics(t, func() { Choice(s, []Weighted[int]{{Value: 1, Weight: -1}}) })
}

func TestPick(t *testing.T) {
	s := New(42)
	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		assert.Contains(t, items, Pick(s, items))
	}
	assert.Panics(t, func() { Pick(s, []string{}) })
}
