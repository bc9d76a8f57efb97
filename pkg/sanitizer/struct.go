package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStructPointer is returned by SanitizeStruct for anything but a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected pointer to struct")

const tagName = "sanitize"

// SanitizeStruct rewrites string fields in place according to their
// `sanitize` tag. Rules are comma separated and applied in order:
//
//	trim   strings.TrimSpace
//	strip  StripHTML
//	html   SanitizeHTML
//
// Fields of type *string are handled when non-nil. Nested structs are
// walked. Unknown rules are an error.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return walk(rv.Elem())
}

func walk(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)

		if fv.Kind() == reflect.Struct {
			if err := walk(fv); err != nil {
				return err
			}
			continue
		}

		tag, ok := sf.Tag.Lookup(tagName)
		if !ok || tag == "" || tag == "-" {
			continue
		}

		target := fv
		if fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.String {
			if fv.IsNil() {
				continue
			}
			target = fv.Elem()
		}
		if target.Kind() != reflect.String {
			continue
		}

		out, err := apply(tag, target.String())
		if err != nil {
			return fmt.Errorf("sanitizer: field %s: %w", sf.Name, err)
		}
		target.SetString(out)
	}
	return nil
}

func apply(tag, s string) (string, error) {
	for rule := range strings.SplitSeq(tag, ",") {
		switch strings.TrimSpace(rule) {
		case "trim":
			s = strings.TrimSpace(s)
		case "strip":
			s = StripHTML(s)
		case "html":
			s = SanitizeHTML(s)
		default:
			return "", fmt.Errorf("unknown rule %q", rule)
		}
	}
	return s, nil
}
