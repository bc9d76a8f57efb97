package slugfield_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

var prompts = slugfield.Target{Resource: "prompts", Field: "id"}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("free base passes through with a single count", func(t *testing.T) {
		t.Parallel()
		b := newFakeBackend("other")

		got, err := slugfield.Resolve(context.Background(), b, prompts, "base")
		require.NoError(t, err)
		assert.Equal(t, "base", got)
		assert.Equal(t, []string{"base"}, b.countCalls())
		assert.Empty(t, b.selectCalls())
	})

	t.Run("smallest free suffix wins", func(t *testing.T) {
		t.Parallel()
		b := newFakeBackend("base", "base-1", "base-3")

		got, err := slugfield.Resolve(context.Background(), b, prompts, "base")
		require.NoError(t, err)
		assert.Equal(t, "base-2", got)
		assert.Equal(t, []string{"base"}, b.selectCalls())
	})

	t.Run("empty base issues no queries", func(t *testing.T) {
		t.Parallel()
		b := newFakeBackend()

		_, err := slugfield.Resolve(context.Background(), b, prompts, "")
		require.ErrorIs(t, err, slugfield.ErrEmptyBase)
		assert.Empty(t, b.countCalls())
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		b := newFakeBackend()

		_, err := slugfield.Resolve(context.Background(), b, slugfield.Target{Resource: "prompts"}, "x")
		require.ErrorIs(t, err, slugfield.ErrInvalidTarget)
		assert.Empty(t, b.countCalls())
	})

	t.Run("backend error is wrapped", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		b := newFakeBackend("base")
		b.setErr(boom)

		_, err := slugfield.Resolve(context.Background(), b, prompts, "base")
		require.ErrorIs(t, err, slugfield.ErrLookupFailed)
		require.ErrorIs(t, err, boom)
	})
}

func TestNextAvailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
	}{
		{name: "gap in sequence", base: "base", existing: []string{"base", "base-1", "base-3"}, want: "base-2"},
		{name: "only base taken", base: "base", existing: []string{"base"}, want: "base-1"},
		{name: "contiguous run", base: "a", existing: []string{"a", "a-1", "a-2", "a-3"}, want: "a-4"},
		{name: "order independent", base: "a", existing: []string{"a-2", "a", "a-1"}, want: "a-3"},
		{name: "unrelated prefix matches ignored", base: "go", existing: []string{"go", "golang", "go-fast", "go-1x"}, want: "go-1"},
		{name: "empty snapshot", base: "x", existing: nil, want: "x-1"},
		{
			name:     "end to end example",
			base:     "my-great-prompt",
			existing: []string{"my-great-prompt", "my-great-prompt-1"},
			want:     "my-great-prompt-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slugfield.NextAvailable(tt.base, tt.existing))
		})
	}
}

func TestResolveWithinMaxLength(t *testing.T) {
	t.Parallel()

	tags := slugfield.Target{Resource: "prompts", Field: "id", MaxLength: 8}
	nines := func(stem string) []string {
		vs := []string{stem}
		for i := 1; i <= 9; i++ {
			vs = append(vs, stem+"-"+strconv.Itoa(i))
		}
		return vs
	}

	tests := []struct {
		name     string
		base     string
		existing []string
		want     string
		selects  []string
	}{
		{name: "free base at the limit", base: "aaaaaaaa", want: "aaaaaaaa"},
		{name: "suffix replaces the tail", base: "aaaaaaaa", existing: []string{"aaaaaaaa"}, want: "aaaaaa-1", selects: []string{"aaaaaa"}},
		{name: "shortened stem skips taken", base: "aaaaaaaa", existing: []string{"aaaaaaaa", "aaaaaa-1"}, want: "aaaaaa-2", selects: []string{"aaaaaa"}},
		{name: "cut on a hyphen", base: "abcdef-gh", existing: []string{"abcdef-gh"}, want: "abcdef-1", selects: []string{"abcdef"}},
		{name: "short base is untouched", base: "go", existing: []string{"go", "go-1"}, want: "go-2", selects: []string{"go"}},
		{name: "one digit fits without a cut", base: "abcde", existing: []string{"abcde"}, want: "abcde-1", selects: []string{"abcde"}},
		{name: "rollover to two digits", base: "abcdef", existing: append(nines("abcdef"), "abcde-10"), want: "abcde-11", selects: []string{"abcdef", "abcde"}},
		{name: "rollover without a shorter stem", base: "go", existing: nines("go"), want: "go-10", selects: []string{"go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b := newFakeBackend(tt.existing...)

			got, err := slugfield.Resolve(context.Background(), b, tags, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tags.MaxLength)
			assert.Equal(t, tt.selects, b.selectCalls())
		})
	}
}

func TestStem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		base   string
		max    int
		digits int
		want   string
	}{
		{name: "no limit", base: "abcdef", max: 0, digits: 1, want: "abcdef"},
		{name: "fits", base: "abc", max: 5, digits: 1, want: "abc"},
		{name: "cut", base: "abcdef", max: 5, digits: 1, want: "abc"},
		{name: "cut for two digits", base: "abcdef", max: 5, digits: 2, want: "ab"},
		{name: "trailing hyphen dropped", base: "ab-cdef", max: 5, digits: 1, want: "ab"},
		{name: "no room keeps base", base: "abcdef", max: 2, digits: 1, want: "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slugfield.Stem(tt.base, tt.max, tt.digits))
		})
	}
}
