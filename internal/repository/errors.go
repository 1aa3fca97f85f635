// Package repository defines error types that are reused across multiple
// repositories. These values allow higher layers such as handlers to
// distinguish between different failure scenarios: a lookup key with no
// matching row, a purchase turned away by a rule the database enforces,
// and plain infrastructure failure. Handlers translate each into its own
// HTTP status instead of collapsing everything into a 500.
package repository

import "errors"

// ErrMovieNotFound indicates that the requested movie id has no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrShowtimeNotFound indicates that the requested showtime id has no row.
var ErrShowtimeNotFound = errors.New("showtime not found")

// PurchaseRejectedError is returned when the Process_Ticket_Purchase
// procedure (or one of its triggers) raises a business-rule violation,
// such as a sold-out showtime or a showing that has already started.
// Message carries the SIGNAL text raised inside the database so the
// caller sees the actual reason.
type PurchaseRejectedError struct {
	Message string
}

func (e *PurchaseRejectedError) Error() string {
	return e.Message
}
