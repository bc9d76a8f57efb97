package slugfield

import "context"

// Backend answers the two queries the resolver needs.
// Implementations must treat resource and field as untrusted input.
type Backend interface {
	// Count returns the number of records in resource whose field equals value.
	Count(ctx context.Context, resource, field, value string) (int, error)

	// SelectPrefix returns the values of field in resource that start with prefix.
	SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error)
}

// Target names the collection and the unique column a slug is checked against.
// A positive MaxLength caps suffixed candidates at that many characters.
type Target struct {
	Resource  string `json:"resource"`
	Field     string `json:"field"`
	MaxLength int    `json:"max_length,omitempty"`
}

// Validate reports ErrInvalidTarget when either part is missing.
func (t Target) Validate() error {
	if t.Resource == "" || t.Field == "" {
		return ErrInvalidTarget
	}
	return nil
}

func (t Target) String() string {
	return t.Resource + "." + t.Field
}
