package calculator

import (
	"fmt"
	"math"
	"sort"
)

// CpiIndex maps a year to its consumer price index value.
// Years missing from the table are treated as the latest year.
type CpiIndex struct {
	values     map[int]float64
	latestYear int
}

// NewCpiIndex copies table into a new index. The table must be non-empty and
// every value a positive finite number.
func NewCpiIndex(table map[int]float64) (*CpiIndex, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: CPI table is empty", ErrConfiguration)
	}
	idx := &CpiIndex{values: make(map[int]float64, len(table))}
	first := true
	for year, v := range table {
		if !PositiveFinite(v) {
			return nil, fmt.Errorf("%w: CPI value for %d must be a positive finite number, got %g", ErrConfiguration, year, v)
		}
		idx.values[year] = v
		if first || year > idx.latestYear {
			idx.latestYear = year
			first = false
		}
	}
	return idx, nil
}

// PositiveFinite reports whether v can serve as an index value.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// At returns the index for year, or the latest index when year is not in the table.
func (c *CpiIndex) At(year int) float64 {
	if v, ok := c.values[year]; ok {
		return v
	}
	return c.Latest()
}

// Latest returns the index of the most recent year.
func (c *CpiIndex) Latest() float64 {
	return c.values[c.latestYear]
}

// LatestYear returns the most recent year in the table.
func (c *CpiIndex) LatestYear() int {
	return c.latestYear
}

// Years returns the table years in ascending order.
func (c *CpiIndex) Years() []int {
	years := make([]int, 0, len(c.values))
	for y := range c.values {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Table returns a copy of the underlying table.
func (c *CpiIndex) Table() map[int]float64 {
	t := make(map[int]float64, len(c.values))
	for y, v := range c.values {
		t[y] = v
	}
	return t
}

// Merge returns a new index where overlay values replace or extend the receiver's.
func (c *CpiIndex) Merge(overlay map[int]float64) (*CpiIndex, error) {
	t := c.Table()
	for y, v := range overlay {
		t[y] = v
	}
	return NewCpiIndex(t)
}
