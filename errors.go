package pivotchart

import "errors"

var (
	// ErrUnknownColumn is returned when a filter, dimension, measure or
	// join key names a column the dataset does not have.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidAggregate is returned for an unrecognized aggregate function.
	ErrInvalidAggregate = errors.New("invalid aggregate function")
)
