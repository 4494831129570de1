// Package repository persists the domain entities with pgx. Sentinel errors
// defined here let the usecase layer distinguish transactional outcomes
// without parsing error strings.
package repository

import "errors"

// ErrCapacityExceeded is returned when the conditional booking-counter
// increment touches zero rows, i.e. another writer filled the slot between
// the availability check and the update.
var ErrCapacityExceeded = errors.New("slot capacity exceeded")
