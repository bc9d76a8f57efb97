// Package views renders the admin pages with html/template and exposes
// them as templ components.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/promptdesk/internal/content"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("views").Funcs(template.FuncMap{
	"formatTime": formatTime,
	"isoTime":    isoTime,
}).ParseFS(files, "templates/*.html"))

func formatTime(t time.Time) string {
	return t.Format("Jan 2, 2006 15:04")
}

func isoTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func component(name string, data any) templ.Component {
	return templ.FromGoHTML(templates.Lookup(name), data)
}

// Notice is a one-time message shown above the page content.
type Notice struct {
	Kind string
	Text string
}

// Page carries what every full page needs.
type Page struct {
	Title     string
	Resources []content.Resource
	Notice    Notice
}

// IndexProps feeds Index.
type IndexProps struct {
	Page
}

// Index is the admin landing page.
func Index(p IndexProps) templ.Component {
	if p.Title == "" {
		p.Title = "Content"
	}
	return component("index", p)
}

// ListProps feeds List and ListRows.
type ListProps struct {
	Page
	Resource content.Resource
	Records  []content.Record
	Query    string
}

// List is the record index of one resource.
func List(p ListProps) templ.Component {
	if p.Title == "" {
		p.Title = p.Resource.Label
	}
	return component("list", p)
}

// ListRows is the records table alone, swapped in by the search box.
func ListRows(p ListProps) templ.Component {
	return component("list_rows", p)
}

// FormProps feeds Form.
type FormProps struct {
	Page
	Resource content.Resource
	Input    content.Input
	Slug     SlugFieldView
	// Body is the rendered markdown preview of an existing record.
	Body   template.HTML
	Action string
	Error  string
	IsNew  bool
}

// Form is the create and edit page.
func Form(p FormProps) templ.Component {
	if p.Title == "" {
		p.Title = p.Resource.Singular
		if !p.IsNew {
			p.Title = p.Input.Name
		}
	}
	return component("form", p)
}
