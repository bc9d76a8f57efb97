package slug

import (
	"crypto/rand"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	mixedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// canonical matches slugs produced by Make with default options.
var canonical = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// undecomposable folds letters that NFD leaves intact.
var undecomposable = strings.NewReplacer(
	"ß", "s", "ẞ", "S",
	"ł", "l", "Ł", "L",
	"ø", "o", "Ø", "O",
	"æ", "a", "Æ", "A",
	"œ", "o", "Œ", "O",
	"đ", "d", "Đ", "D",
	"ð", "d", "Ð", "D",
	"þ", "th", "Þ", "Th",
	"ı", "i",
)

// Make converts s into a slug.
func Make(s string, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if len(o.replacements) > 0 {
		s = replace(s, o.replacements)
	}
	if o.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = fold(s)
	if o.lowercase {
		s = strings.ToLower(s)
	}

	base := join(s, o.separator)

	switch {
	case o.suffixLength > 0:
		return withSuffix(base, randomSuffix(o.suffixLength, o.lowercase), o, false)
	case o.isReserved(base):
		return withSuffix(base, randomSuffix(defaultSuffixLength, o.lowercase), o, true)
	default:
		return truncate(base, o.separator, o.maxLength)
	}
}

// Valid reports whether s is a canonical slug: lowercase ASCII letters and
// digits joined by single hyphens.
func Valid(s string) bool {
	return canonical.MatchString(s)
}

// fold strips combining marks and transliterates the remaining Latin letters.
// Transformer chains keep internal buffers, so each call builds its own.
func fold(s string) string {
	s = undecomposable.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// join keeps ASCII letters and digits and collapses everything else into
// single separators, never emitting one at either end.
func join(s, sep string) string {
	var b strings.Builder
	b.Grow(len(s))

	pending := false
	for _, r := range s {
		if isASCIIAlnum(r) {
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// replace applies pairs longest key first for a deterministic result.
func replace(s string, pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	args := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, pairs[k])
	}
	return strings.NewReplacer(args...).Replace(s)
}

// withSuffix joins base and suffix within the length limit.
// keepBase shortens the suffix first (reserved slugs must stay recognizable);
// otherwise the base is shortened and the suffix kept whole.
func withSuffix(base, suffix string, o *options, keepBase bool) string {
	if base == "" {
		return truncateRunes(suffix, o.maxLength)
	}

	full := base + o.separator + suffix
	if o.maxLength == 0 || utf8.RuneCountInString(full) <= o.maxLength {
		return full
	}

	sepLen := utf8.RuneCountInString(o.separator)
	baseLen := utf8.RuneCountInString(base)

	if keepBase {
		if room := o.maxLength - baseLen - sepLen; room > 0 {
			return base + o.separator + truncateRunes(suffix, room)
		}
	}

	avail := o.maxLength - sepLen - utf8.RuneCountInString(suffix)
	if avail <= 0 {
		return truncateRunes(suffix, o.maxLength)
	}

	short := trimSeparator(truncateRunes(base, avail), o.separator)
	if short == "" {
		return truncateRunes(suffix, o.maxLength)
	}
	return short + o.separator + suffix
}

func truncate(s, sep string, n int) string {
	if n == 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return trimSeparator(truncateRunes(s, n), sep)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// trimSeparator removes trailing separators, including a partial
// multi-character separator left behind by truncation.
func trimSeparator(s, sep string) string {
	if sep == "" {
		return s
	}
	for strings.HasSuffix(s, sep) {
		s = strings.TrimSuffix(s, sep)
	}
	for i := len(sep) - 1; i > 0; i-- {
		if strings.HasSuffix(s, sep[:i]) {
			return s[:len(s)-i]
		}
	}
	return s
}

// randomSuffix returns n characters from the suffix alphabet.
func randomSuffix(n int, lowercase bool) string {
	alphabet := lowerAlphabet
	if !lowercase {
		alphabet = mixedAlphabet
	}

	buf := make([]byte, n)
	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(buf)

	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}
