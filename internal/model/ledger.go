package model

import (
	"sort"
	"time"
)

// Ledger maps a deposit year to the total amount deposited that year.
type Ledger map[int]float64

// Years returns the ledger years in ascending order.
func (l Ledger) Years() []int {
	years := make([]int, 0, len(l))
	for y := range l {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Total returns the sum of all deposits.
func (l Ledger) Total() float64 {
	sum := 0.0
	for _, amount := range l {
		sum += amount
	}
	return sum
}

// Span returns the first and last deposit years. ok is false for an empty ledger.
func (l Ledger) Span() (first, last int, ok bool) {
	for y := range l {
		if !ok || y < first {
			first = y
		}
		if !ok || y > last {
			last = y
		}
		ok = true
	}
	return first, last, ok
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	c := make(Ledger, len(l))
	for y, amount := range l {
		c[y] = amount
	}
	return c
}

// Scenario holds the inputs of one analysis run besides the deposits.
type Scenario struct {
	CurrentValue      float64  `json:"current_value"`
	CurrentCommission float64  `json:"current_commission"`
	YieldOverride     *float64 `json:"yield_override,omitempty"`
	NewYield          float64  `json:"new_yield"`
	NewCommission     float64  `json:"new_commission"`
	NewTransactionFee float64  `json:"new_transaction_fee"`
	YearsToProject    int      `json:"years_to_project"`
	ReinvestShare     float64  `json:"reinvest_share"`
}

// LedgerState is the persisted deposit ledger together with the last scenario.
type LedgerState struct {
	Deposits  Ledger    `json:"deposits"`
	Scenario  Scenario  `json:"scenario"`
	UpdatedAt time.Time `json:"updated_at"`
}
