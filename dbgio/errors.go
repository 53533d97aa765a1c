package dbgio

import "errors"

var (
	// ErrNoDevice indicates no handler matched a selection request, or
	// auto-detection found nothing usable.
	ErrNoDevice = errors.New("dbgio: no such device")

	// ErrDisabled indicates console I/O was attempted while the console
	// is disabled. Distinct from ErrNoDevice: the selection may be fine.
	ErrDisabled = errors.New("dbgio: console disabled")

	// ErrNoData indicates a read found nothing waiting; try again later.
	ErrNoData = errors.New("dbgio: no data available")
)
