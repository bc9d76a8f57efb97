// Package slug generates URL-safe slugs from arbitrary strings with Unicode normalization.
//
// This package turns human-readable labels (prompt names, category titles,
// provider names) into the identifiers used as record keys. Diacritics are
// folded to ASCII, every run of other characters becomes a single separator,
// and separators never lead, trail or repeat.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/promptdesk/pkg/slug"
//
//	s := slug.Make("My Great Prompt!")
//	// Output: "my-great-prompt"
//
//	s = slug.Make("Café & Restaurant")
//	// Output: "cafe-restaurant"
//
// With default options the transform is idempotent:
//
//	slug.Make(slug.Make(x)) == slug.Make(x)
//
// # Configuration Options
//
// MaxLength limits the slug length (rune-based) and drops a dangling separator:
//
//	slug.Make("Cut off cleanly here", slug.MaxLength(7))
//	// Output: "cut-off"
//
// Separator sets the string placed between words:
//
//	slug.Make("Product Name", slug.Separator("_"))
//	// Output: "product_name"
//
// Lowercase controls case conversion:
//
//	slug.Make("Product Name", slug.Lowercase(false))
//	// Output: "Product-Name"
//
// StripChars removes specific characters before processing:
//
//	slug.Make("Price: $100", slug.StripChars("$:"))
//	// Output: "price-100"
//
// CustomReplace applies string replacements before slugification:
//
//	slug.Make("Fish & Chips", slug.CustomReplace(map[string]string{"&": "and"}))
//	// Output: "fish-and-chips"
//
// WithSuffix appends a random alphanumeric suffix. The base is shortened
// when MaxLength leaves no room for the whole suffix:
//
//	slug.Make("Article Title", slug.WithSuffix(6))
//	// Output: "article-title-a3f7k2"
//
// ReservedSlugs (case-insensitive) forces a random suffix on slugs that would
// shadow application routes:
//
//	slug.Make("new", slug.ReservedSlugs("new", "edit"))
//	// Output: "new-k7x2m4"
//
// Deterministic numbered variants ("base-1", "base-2", ...) are produced by the
// resolver in package slugfield, not here.
//
// # Unicode Support
//
// Latin letters with combining marks are decomposed (NFD) and stripped of
// their marks. Letters without a decomposition use a fixed table:
//
//	slug.Make("Über Größe straße")  // "uber-grose-strase"
//	slug.Make("Zażółć gęślą jaźń")  // "zazolc-gesla-jazn"
//
// Unsupported scripts (Cyrillic, CJK, emoji) are replaced with separators.
package slug
