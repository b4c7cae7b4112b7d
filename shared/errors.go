package shared

import "errors"

var (
	// ErrOutOfRange is returned when a load factor or grow factor
	// argument falls outside its accepted range. An out-of-range bucket
	// width panics at construction instead.
	ErrOutOfRange = errors.New("value out of range")

	// ErrKeyNotFound is returned by Map.At and similar accessors when
	// the requested key is not present.
	ErrKeyNotFound = errors.New("key not found")
)
