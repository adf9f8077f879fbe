package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks inputs the caller should have rejected (empty ledger, bad rates).
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks a broken setup such as an empty CPI table.
	ErrConfiguration = errors.New("configuration error")
	// ErrDivisionByZero is returned when the deposits sum to zero.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrValidation)
)
