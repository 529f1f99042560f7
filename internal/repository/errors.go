// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// assistant and the HTTP handlers to distinguish between different
// failure scenarios without inspecting storage errors.
package repository

import "errors"

// ErrReservationNotFound is returned when a reservation does not exist
// or belongs to another user.  The two cases are deliberately not told
// apart so a caller cannot discover other users' booking ids.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrConflict is returned when an operation cannot proceed because of
// the current state of a record, such as cancelling a reservation that
// is already cancelled or registering a taken username.
var ErrConflict = errors.New("conflict")

// ErrUserNotFound is returned when no user has the requested username.
var ErrUserNotFound = errors.New("user not found")
