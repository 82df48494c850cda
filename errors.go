package bumpfill

import "errors"

var (
	// ErrAbsent is returned by the presence variants when the producer
	// reports a missing value. It carries no payload.
	ErrAbsent = errors.New("bumpfill: value absent")
	// ErrLengthMismatch is returned when a stream yields fewer or more items
	// than its declared length.
	ErrLengthMismatch = errors.New("bumpfill: stream length mismatch")
	// ErrInvalidLength is returned for a negative element count.
	ErrInvalidLength = errors.New("bumpfill: invalid length")
)
