package lookup

import "errors"

var (
	ErrCountFailed  = errors.New("lookup: count query failed")
	ErrSelectFailed = errors.New("lookup: prefix query failed")
	ErrInvalidate   = errors.New("lookup: cache invalidation failed")
)
