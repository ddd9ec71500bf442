package repositories

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateOrderRef is returned by OrderRepository.Create when the
	// reference is already taken.
	ErrDuplicateOrderRef = errors.New("order reference already exists")
)
