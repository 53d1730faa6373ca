package expense

import "errors"

// Expense validation and lookup errors
var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrEmptyDescription = errors.New("description is required")
	ErrNegativeAmount   = errors.New("amount must not be negative")
	ErrDuplicateImport  = errors.New("expense already imported from splitwise")
)
