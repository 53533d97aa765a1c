package mem

import "errors"

var (
	// ErrBusy indicates the pool lock was contended; the operation did not
	// run and may be retried.
	ErrBusy = errors.New("mem: pool busy, try again")

	// ErrNoSpace indicates no free block is large enough for the request.
	ErrNoSpace = errors.New("mem: no free block large enough")

	// ErrNoRecords indicates the block record arena is exhausted, so a
	// split could not be tracked. The pool is left unmodified.
	ErrNoRecords = errors.New("mem: block records exhausted")

	// ErrNotFound indicates a free of an offset that is not the base of
	// any tracked block.
	ErrNotFound = errors.New("mem: no block at offset")

	// ErrBadReserve indicates the reserve offset leaves no allocatable
	// space in the region.
	ErrBadReserve = errors.New("mem: reserve exceeds region size")
)
