package slug

import "strings"

// defaultSuffixLength is used when a reserved slug needs disambiguation
// and no explicit suffix length was configured.
const defaultSuffixLength = 6

// Option configures slug generation.
type Option func(*options)

type options struct {
	replacements map[string]string
	reserved     map[string]struct{}
	separator    string
	stripChars   string
	maxLength    int
	suffixLength int
	lowercase    bool
}

func defaultOptions() *options {
	return &options{
		separator: "-",
		lowercase: true,
	}
}

// MaxLength limits the slug to n runes. Zero or negative disables the limit.
func MaxLength(n int) Option {
	return func(o *options) {
		o.maxLength = max(n, 0)
	}
}

// Separator sets the string placed between words. Default: "-".
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// Lowercase controls whether the output is lowercased. Default: true.
func Lowercase(enabled bool) Option {
	return func(o *options) {
		o.lowercase = enabled
	}
}

// StripChars removes every character in chars before slugification.
func StripChars(chars string) Option {
	return func(o *options) {
		o.stripChars = chars
	}
}

// CustomReplace replaces substrings before slugification.
// Longer keys are applied first so overlapping keys behave predictably.
func CustomReplace(pairs map[string]string) Option {
	return func(o *options) {
		if o.replacements == nil {
			o.replacements = make(map[string]string, len(pairs))
		}
		for k, v := range pairs {
			if k != "" {
				o.replacements[k] = v
			}
		}
	}
}

// WithSuffix appends a random alphanumeric suffix of n characters.
func WithSuffix(n int) Option {
	return func(o *options) {
		o.suffixLength = max(n, 0)
	}
}

// ReservedSlugs marks slugs that must never be produced as-is.
// Matching is case-insensitive; a reserved result gets a random suffix.
func ReservedSlugs(slugs ...string) Option {
	return func(o *options) {
		if o.reserved == nil {
			o.reserved = make(map[string]struct{}, len(slugs))
		}
		for _, s := range slugs {
			if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
				o.reserved[s] = struct{}{}
			}
		}
	}
}

func (o *options) isReserved(s string) bool {
	if len(o.reserved) == 0 || s == "" {
		return false
	}
	_, ok := o.reserved[strings.ToLower(s)]
	return ok
}
