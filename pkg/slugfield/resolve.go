package slugfield

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Resolve returns base if no record in t holds it, otherwise the first free
// "base-N" counting up from 1.
//
// Exactly one Count query is issued; SelectPrefix is only issued on collision.
// When t.MaxLength is set and "base-N" would not fit, base is shortened to
// make room for the suffix, and one more SelectPrefix is issued for each
// additional suffix digit the search needs.
// Backend errors are wrapped with ErrLookupFailed.
func Resolve(ctx context.Context, b Backend, t Target, base string) (string, error) {
	if base == "" {
		return "", ErrEmptyBase
	}
	if err := t.Validate(); err != nil {
		return "", err
	}

	n, err := b.Count(ctx, t.Resource, t.Field, base)
	if err != nil {
		return "", errors.Join(ErrLookupFailed, err)
	}
	if n == 0 {
		return base, nil
	}

	if t.MaxLength <= 0 {
		existing, err := b.SelectPrefix(ctx, t.Resource, t.Field, base)
		if err != nil {
			return "", errors.Join(ErrLookupFailed, err)
		}
		return NextAvailable(base, existing), nil
	}

	var (
		prefix string
		taken  map[string]struct{}
	)
	for digits, lo := 1, 1; ; digits, lo = digits+1, lo*10 {
		stem := Stem(base, t.MaxLength, digits)
		if taken == nil || stem != prefix {
			existing, err := b.SelectPrefix(ctx, t.Resource, t.Field, stem)
			if err != nil {
				return "", errors.Join(ErrLookupFailed, err)
			}
			prefix, taken = stem, takenSet(existing)
		}
		if candidate, ok := nextInRange(stem, taken, lo, lo*10-1); ok {
			return candidate, nil
		}
	}
}

// NextAvailable returns "base-N" for the smallest N >= 1 not present in existing.
// The result depends only on the set of values, not their order.
func NextAvailable(base string, existing []string) string {
	taken := takenSet(existing)
	prefix := base + "-"
	for n := 1; ; n++ {
		candidate := prefix + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}

// Stem shortens base so that base plus a "-" and a counter of the given
// number of digits fits in maxLength. A trailing hyphen left by the cut is
// dropped. base is returned unchanged when it already fits, when maxLength
// is not positive, or when no room is left for any of it.
func Stem(base string, maxLength, digits int) string {
	room := maxLength - 1 - digits
	if maxLength <= 0 || room < 1 {
		return base
	}
	runes := []rune(base)
	if len(runes) <= room {
		return base
	}
	stem := strings.TrimRight(string(runes[:room]), "-")
	if stem == "" {
		return base
	}
	return stem
}

func nextInRange(stem string, taken map[string]struct{}, lo, hi int) (string, bool) {
	prefix := stem + "-"
	for n := lo; n <= hi; n++ {
		candidate := prefix + strconv.Itoa(n)
		if _, ok := taken[candidate]; !ok {
			return candidate, true
		}
	}
	return "", false
}

func takenSet(existing []string) map[string]struct{} {
	taken := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		taken[v] = struct{}{}
	}
	return taken
}
