// Package sanitizer cleans user supplied text and HTML with bluemonday.
//
// [StripHTML] removes all markup, [SanitizeHTML] keeps a small set of
// formatting tags, and [SanitizeMarkdownHTML] cleans the output of the
// markdown renderer. [SanitizeStruct] applies these by `sanitize` struct tag:
//
//	type PromptInput struct {
//	    Name        string `sanitize:"trim,strip"`
//	    Description string `sanitize:"trim,html"`
//	}
package sanitizer
