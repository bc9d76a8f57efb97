package handlers

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

var invalidInput = []error{
	content.ErrNameRequired,
	content.ErrInvalidSlug,
	content.ErrReservedSlug,
	content.ErrEmptySlug,
	content.ErrImmutableID,
}

// httpError maps domain errors onto HTTP errors. Unknown errors pass
// through and end up as a 500.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil
	case internal.IsHTTPError(err):
		return err
	case errors.Is(err, content.ErrUnknownResource):
		return internal.ErrNotFound("Unknown resource", internal.WithError(err))
	case errors.Is(err, content.ErrUnknownField):
		return internal.ErrBadRequest("Field is not lookup-able", internal.WithError(err))
	case errors.Is(err, content.ErrNotFound):
		return internal.ErrNotFound("Record not found", internal.WithError(err))
	case errors.Is(err, content.ErrConflict):
		return internal.ErrConflict(message(content.ErrConflict), internal.WithError(err), internal.WithErrorCode("conflict"))
	case errors.Is(err, slugfield.ErrEmptyBase):
		return internal.ErrBadRequest("Value is required", internal.WithError(err))
	case errors.Is(err, content.ErrLookup), errors.Is(err, slugfield.ErrLookupFailed):
		return internal.ErrServiceUnavailable("Lookup backend unavailable", internal.WithError(err))
	}

	for _, target := range invalidInput {
		if errors.Is(err, target) {
			return internal.ErrUnprocessable(message(target), internal.WithError(err), internal.WithErrorCode("invalid"))
		}
	}
	return err
}

// message is the user-facing text of a content sentinel.
func message(sentinel error) string {
	msg := strings.TrimPrefix(sentinel.Error(), "content: ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
