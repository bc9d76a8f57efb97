package content

import (
	"context"
	"strings"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// reservedBackend reports reserved identifiers as held by a record, so
// the resolver steps past them the same way it steps past stored ones.
type reservedBackend struct {
	next     slugfield.Backend
	registry *Registry
}

func (b reservedBackend) Count(ctx context.Context, resource, field, value string) (int, error) {
	n, err := b.next.Count(ctx, resource, field, value)
	if err != nil {
		return 0, err
	}
	if res, ok := b.identifier(resource, field); ok && res.IsReserved(value) {
		n++
	}
	return n, nil
}

func (b reservedBackend) SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error) {
	values, err := b.next.SelectPrefix(ctx, resource, field, prefix)
	if err != nil {
		return nil, err
	}
	res, ok := b.identifier(resource, field)
	if !ok {
		return values, nil
	}
	for _, id := range res.Reserved {
		if strings.HasPrefix(id, prefix) {
			values = append(values, id)
		}
	}
	return values, nil
}

func (b reservedBackend) identifier(resource, field string) (Resource, bool) {
	if field != IdentifierField {
		return Resource{}, false
	}
	res, err := b.registry.Lookup(resource)
	return res, err == nil
}
