package group

import "errors"

// Group validation and lookup errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrEmptyName     = errors.New("group name is required")
)
