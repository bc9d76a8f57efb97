// Package id generates sortable identifiers.
package id

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewULID returns a 26-character Crockford base32 ULID.
// IDs from one process are strictly increasing, even within a millisecond.
func NewULID() string {
	return ulid.Make().String()
}

// Time extracts the creation time encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("id: parse %q: %w", s, err)
	}
	return ulid.Time(u.Time()), nil
}
