package slugfield

import "errors"

var (
	ErrEmptyBase     = errors.New("slugfield: empty base slug")
	ErrInvalidTarget = errors.New("slugfield: resource and field are required")
	ErrLookupFailed  = errors.New("slugfield: lookup failed")
)
