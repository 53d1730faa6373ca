package income

import "errors"

// Income validation and lookup errors
var (
	ErrIncomeNotFound   = errors.New("income not found")
	ErrEmptyDescription = errors.New("description is required")
	ErrNegativeAmount   = errors.New("amount must not be negative")
)
