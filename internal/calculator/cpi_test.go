package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() map[int]float64 {
	return map[int]float64{
		2015: 100.0, 2016: 100.0, 2017: 100.2, 2018: 101.0, 2019: 101.9,
		2020: 101.3, 2021: 102.8, 2022: 107.3, 2023: 111.8, 2024: 113.8,
	}
}

func testIndex(t *testing.T) *CpiIndex {
	t.Helper()
	idx, err := NewCpiIndex(testTable())
	require.NoError(t, err)
	return idx
}

func TestNewCpiIndex_Empty(t *testing.T) {
	_, err := NewCpiIndex(nil)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = NewCpiIndex(map[int]float64{})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCpiIndex_NonPositive(t *testing.T) {
	_, err := NewCpiIndex(map[int]float64{2020: 100, 2021: 0})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "2021")
}

func TestNewCpiIndex_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewCpiIndex(map[int]float64{2020: v, 2024: 110})
		require.ErrorIs(t, err, ErrConfiguration, "value %g", v)
	}

	idx := testIndex(t)
	_, err := idx.Merge(map[int]float64{2025: math.NaN()})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.InDelta(t, 113.8, idx.Latest(), 1e-9)
}

func TestCpiIndex_At(t *testing.T) {
	idx := testIndex(t)

	assert.Equal(t, 2024, idx.LatestYear())
	assert.Equal(t, 113.8, idx.Latest())
	assert.Equal(t, 101.0, idx.At(2018))

	tests := []int{2024, 2025, 2100, 2014, 1990}
	for _, year := range tests {
		assert.Equal(t, idx.Latest(), idx.At(year), "year %d", year)
	}
}

func TestCpiIndex_SingleEntry(t *testing.T) {
	idx, err := NewCpiIndex(map[int]float64{2010: 87.5})
	require.NoError(t, err)
	assert.Equal(t, 87.5, idx.Latest())
	assert.Equal(t, 87.5, idx.At(2023))
}

func TestCpiIndex_Merge(t *testing.T) {
	idx := testIndex(t)

	merged, err := idx.Merge(map[int]float64{2024: 114.1, 2025: 116.9})
	require.NoError(t, err)

	assert.Equal(t, 2025, merged.LatestYear())
	assert.Equal(t, 116.9, merged.Latest())
	assert.Equal(t, 114.1, merged.At(2024))
	assert.Equal(t, 100.2, merged.At(2017))

	// the receiver is left untouched
	assert.Equal(t, 2024, idx.LatestYear())
	assert.Equal(t, 113.8, idx.At(2024))
	assert.Len(t, idx.Years(), 10)
	assert.Len(t, merged.Years(), 11)
}

func TestCpiIndex_MergeRejectsBadValue(t *testing.T) {
	idx := testIndex(t)
	_, err := idx.Merge(map[int]float64{2025: -1})
	require.ErrorIs(t, err, ErrConfiguration)
}
