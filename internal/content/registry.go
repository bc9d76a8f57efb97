package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/promptdesk/pkg/slug"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

//go:embed resources.yaml
var defaultRegistry []byte

const (
	// IdentifierField is the column holding a record's slug.
	IdentifierField = "id"
	// SourceField is the column the identifier is derived from.
	SourceField = "name"
)

// lookupColumns are the record columns a lookup may target.
var lookupColumns = []string{IdentifierField, SourceField}

// routeNames are path segments taken by the API and cannot name a resource.
var routeNames = []string{"lookup", "slugs"}

var resourceName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Resource describes one content type.
type Resource struct {
	Name      string   `yaml:"name" json:"name"`
	Label     string   `yaml:"label" json:"label"`
	Singular  string   `yaml:"singular" json:"singular"`
	Markdown  bool     `yaml:"markdown" json:"markdown"`
	MaxLength int      `yaml:"max_length" json:"max_length,omitempty"`
	Lookup    []string `yaml:"lookup" json:"lookup"`
	Reserved  []string `yaml:"reserved" json:"reserved,omitempty"`
}

// Slug derives a candidate identifier from a record name. The result
// depends on name alone; reserved identifiers are settled during
// resolution, where they count as taken.
func (r Resource) Slug(name string) string {
	var opts []slug.Option
	if r.MaxLength > 0 {
		opts = append(opts, slug.MaxLength(r.MaxLength))
	}
	return slug.Make(name, opts...)
}

// Normalizer returns Slug as a slugfield.Normalizer.
func (r Resource) Normalizer() slugfield.Normalizer {
	return r.Slug
}

// IsReserved reports whether id collides with an admin route.
func (r Resource) IsReserved(id string) bool {
	return slices.Contains(r.Reserved, id)
}

// IdentifierTarget is the slug resolver target for new identifiers.
func (r Resource) IdentifierTarget() slugfield.Target {
	return r.target(IdentifierField)
}

// target caps generated suffixes at MaxLength for the identifier column.
func (r Resource) target(field string) slugfield.Target {
	t := slugfield.Target{Resource: r.Name, Field: field}
	if field == IdentifierField {
		t.MaxLength = r.MaxLength
	}
	return t
}

type registryFile struct {
	Reserved  []string   `yaml:"reserved"`
	Resources []Resource `yaml:"resources"`
}

// Registry is the validated set of resources. It is read-only after load.
type Registry struct {
	resources []Resource
	byName    map[string]Resource
}

// DefaultRegistry returns the embedded registry.
func DefaultRegistry() *Registry {
	r, err := ParseRegistry(defaultRegistry)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadRegistry reads the registry at path, or the embedded one when path
// is empty.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return ParseRegistry(defaultRegistry)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidRegistry, err)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes and validates a YAML registry.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Join(ErrInvalidRegistry, err)
	}
	if len(file.Resources) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrInvalidRegistry)
	}

	reg := &Registry{byName: make(map[string]Resource, len(file.Resources))}
	for _, res := range file.Resources {
		if !resourceName.MatchString(res.Name) || slices.Contains(routeNames, res.Name) {
			return nil, fmt.Errorf("%w: bad resource name %q", ErrInvalidRegistry, res.Name)
		}
		if _, dup := reg.byName[res.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate resource %q", ErrInvalidRegistry, res.Name)
		}
		if len(res.Lookup) == 0 {
			res.Lookup = []string{IdentifierField}
		}
		for _, f := range res.Lookup {
			if !slices.Contains(lookupColumns, f) {
				return nil, fmt.Errorf("%w: %s: unknown lookup field %q", ErrInvalidRegistry, res.Name, f)
			}
		}
		if !slices.Contains(res.Lookup, IdentifierField) {
			res.Lookup = append(res.Lookup, IdentifierField)
		}
		if res.Label == "" {
			res.Label = res.Name
		}
		if res.Singular == "" {
			res.Singular = res.Label
		}
		res.Reserved = append(slices.Clone(file.Reserved), res.Reserved...)

		reg.resources = append(reg.resources, res)
		reg.byName[res.Name] = res
	}

	return reg, nil
}

// Resources lists the resources in file order.
func (r *Registry) Resources() []Resource {
	return slices.Clone(r.resources)
}

// Lookup returns the resource called name.
func (r *Registry) Lookup(name string) (Resource, error) {
	res, ok := r.byName[name]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	return res, nil
}

// Target validates a lookup request. Only registered resources and their
// lookup fields pass, which makes the result safe to use as SQL identifiers.
func (r *Registry) Target(resource, field string) (slugfield.Target, error) {
	res, err := r.Lookup(resource)
	if err != nil {
		return slugfield.Target{}, err
	}
	if !slices.Contains(res.Lookup, field) {
		return slugfield.Target{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, resource, field)
	}
	return res.target(field), nil
}
