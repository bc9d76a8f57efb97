package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// SlugFieldProps configures a slug input bound to a source input.
type SlugFieldProps struct {
	// Name is the form field holding the slug.
	Name string
	// SourceValue is the current value of the source input.
	SourceValue string
	// Resource is checked for collisions.
	Resource    string
	Label       string
	Description string
	Placeholder string
	Disabled    bool
	// SourceName is the form field the slug is derived from. Default "name".
	SourceName string
}

// SlugFieldView is a SlugFieldProps with the resolved field state.
type SlugFieldView struct {
	SlugFieldProps
	Value     string
	Candidate string
	Mode      slugfield.Mode
	Status    slugfield.Status
	Endpoint  string
	// OOB marks the mode input for an out-of-band swap.
	OOB bool
}

// NewSlugFieldView combines props with state s. A disabled prop forces
// the state disabled.
func NewSlugFieldView(p SlugFieldProps, s slugfield.State) SlugFieldView {
	if p.Name == "" {
		p.Name = "id"
	}
	if p.SourceName == "" {
		p.SourceName = "name"
	}
	if p.Label == "" {
		p.Label = "Identifier"
	}
	if p.Disabled {
		s.Disabled = true
	}
	if s.Source == "" {
		s.Source = p.SourceValue
	}

	return SlugFieldView{
		SlugFieldProps: p,
		Value:          s.Value,
		Candidate:      s.Candidate,
		Mode:           s.Mode,
		Status:         slugfield.DeriveStatus(s),
		Endpoint:       "/admin/" + p.Resource + "/slug-field",
	}
}

// SlugField renders the whole field: input, regenerate button and status.
func SlugField(v SlugFieldView) templ.Component {
	return component("slug_field", v)
}

// SlugStatus renders the status line plus an out-of-band update of the
// mode input. It answers direct edits so the text input keeps focus.
func SlugStatus(v SlugFieldView) templ.Component {
	v.OOB = true
	return component("slug_status_update", v)
}
