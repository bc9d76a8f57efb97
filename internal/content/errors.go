package content

import "errors"

var (
	ErrUnknownResource = errors.New("content: unknown resource")
	ErrUnknownField    = errors.New("content: field is not lookup-able")
	ErrInvalidRegistry = errors.New("content: invalid registry")
	ErrNotFound        = errors.New("content: record not found")
	ErrConflict        = errors.New("content: identifier already taken")
	ErrNameRequired    = errors.New("content: name is required")
	ErrInvalidSlug     = errors.New("content: identifier must be a lowercase slug")
	ErrReservedSlug    = errors.New("content: identifier is reserved")
	ErrEmptySlug       = errors.New("content: name yields an empty identifier")
	ErrImmutableID     = errors.New("content: identifier cannot be changed")
	ErrLookup          = errors.New("content: identifier lookup failed")
	ErrStore           = errors.New("content: store failure")
	ErrRender          = errors.New("content: markdown render failed")
)
