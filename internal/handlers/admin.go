package handlers

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/internal/views"
	"github.com/dmitrymomot/promptdesk/pkg/cookie"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Slug field events posted by the htmx form.
const (
	eventSource     = "source"
	eventEdit       = "edit"
	eventRegenerate = "regenerate"
)

var formFieldName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Admin serves the HTML admin.
type Admin struct {
	svc     *content.Service
	timeout time.Duration
	notices *cookie.Manager
}

// AdminOption configures the admin handler.
type AdminOption func(*Admin)

// WithNotices shows a one-time notice after each successful change.
func WithNotices(m *cookie.Manager) AdminOption {
	return func(h *Admin) {
		h.notices = m
	}
}

// NewAdmin creates the admin routes. A positive timeout bounds the slug
// lookups made while rendering the slug field.
func NewAdmin(svc *content.Service, timeout time.Duration, opts ...AdminOption) *Admin {
	h := &Admin{svc: svc, timeout: timeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Admin) Routes(r internal.Router) {
	r.GET("/admin", h.index)
	r.Route("/admin/{resource}", func(r internal.Router) {
		r.GET("/", h.list)
		r.POST("/", h.create)
		r.GET("/new", h.newForm)
		r.POST("/slug-field", h.slugField)
		r.GET("/{id}", h.edit)
		r.POST("/{id}", h.update)
		r.POST("/{id}/delete", h.delete)
	})
}

func (h *Admin) page(c internal.Context) views.Page {
	p := views.Page{Resources: h.svc.Registry().Resources()}
	if h.notices == nil || c.IsHTMX() {
		return p
	}
	if n, ok := h.notices.Pop(c.Response(), c.Request()); ok {
		p.Notice = views.Notice{Kind: n.Kind, Text: n.Text}
	}
	return p
}

// notify queues a notice for the page the client is redirected to.
func (h *Admin) notify(c internal.Context, n cookie.Notice) {
	if h.notices == nil {
		return
	}
	if err := h.notices.Set(c.Response(), n); err != nil {
		c.LogWarn("admin notice not stored", "error", err)
	}
}

func (h *Admin) resource(c internal.Context) (content.Resource, error) {
	res, err := h.svc.Registry().Lookup(c.Param("resource"))
	if err != nil {
		return content.Resource{}, httpError(err)
	}
	return res, nil
}

func (h *Admin) index(c internal.Context) error {
	return c.Render(http.StatusOK, views.Index(views.IndexProps{Page: h.page(c)}))
}

func (h *Admin) list(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	q := c.Query("q")
	records, err := h.svc.List(c.Context(), res.Name, content.ListOptions{Query: q})
	if err != nil {
		return httpError(err)
	}

	props := views.ListProps{Page: h.page(c), Resource: res, Records: records, Query: q}
	return c.RenderPartial(http.StatusOK, views.List(props), views.ListRows(props))
}

func (h *Admin) newForm(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Form(h.newFormProps(c, res, content.Input{}, slugfield.State{}, "")))
}

func (h *Admin) create(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	in := formInput(c)
	mode := slugfield.ParseMode(c.Form("mode"))
	submitted := in.ID
	if mode == slugfield.ModeSync {
		// The server derives the identifier again; the field only previewed it.
		in.ID = ""
	}

	rec, err := h.svc.Create(c.Context(), res.Name, in)
	if err == nil {
		h.notify(c, cookie.Success(res.Singular+" created."))
		return c.Redirect(http.StatusSeeOther, "/admin/"+res.Name+"/"+rec.ID)
	}

	herr := internal.AsHTTPError(httpError(err))
	if herr == nil || herr.Code >= http.StatusInternalServerError {
		return httpError(err)
	}

	ctx, cancel := h.context(c)
	defer cancel()
	state := settle(ctx, h.svc.Backend(), res, "", in.Name, submitted, mode)

	in.ID = submitted
	return c.Render(herr.Code, views.Form(h.newFormProps(c, res, in, state, herr.Message)))
}

func (h *Admin) edit(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.Get(c.Context(), res.Name, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	props, err := h.editFormProps(c, res, rec, "")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Form(props))
}

func (h *Admin) update(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	in := formInput(c)
	in.ID = id

	rec, err := h.svc.Update(c.Context(), res.Name, id, in)
	if err == nil {
		h.notify(c, cookie.Success(res.Singular+" saved."))
		return c.Redirect(http.StatusSeeOther, "/admin/"+res.Name+"/"+rec.ID)
	}

	herr := internal.AsHTTPError(httpError(err))
	if herr == nil || herr.Code != http.StatusUnprocessableEntity {
		return httpError(err)
	}

	props, perr := h.editFormProps(c, res, content.Record{ID: id, Name: in.Name, Description: in.Description, Body: in.Body}, herr.Message)
	if perr != nil {
		return perr
	}
	return c.Render(herr.Code, views.Form(props))
}

func (h *Admin) delete(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := h.svc.Delete(c.Context(), res.Name, id); err != nil {
		return httpError(err)
	}
	h.notify(c, cookie.Success(res.Singular+" "+id+" deleted."))
	return c.Redirect(http.StatusSeeOther, "/admin/"+res.Name)
}

// slugField re-renders the slug field after a change in the form. Direct
// edits get only the status line back so the input keeps focus and caret.
func (h *Admin) slugField(c internal.Context) error {
	res, err := h.resource(c)
	if err != nil {
		return err
	}

	field := formDefault(c, "field", content.IdentifierField)
	sourceField := formDefault(c, "source_field", content.SourceField)
	if !formFieldName.MatchString(field) || !formFieldName.MatchString(sourceField) {
		return internal.ErrBadRequest("Invalid field name")
	}

	source := formDefault(c, "source", c.Form(sourceField))
	value := formDefault(c, "slug", c.Form(field))
	event := c.Form("event")

	ctx, cancel := h.context(c)
	defer cancel()
	state := settle(ctx, h.svc.Backend(), res, event, source, value, slugfield.ParseMode(c.Form("mode")))

	view := views.NewSlugFieldView(views.SlugFieldProps{
		Name:        field,
		SourceName:  sourceField,
		SourceValue: source,
		Resource:    res.Name,
	}, state)

	if event == eventEdit {
		return c.Render(http.StatusOK, views.SlugStatus(view))
	}
	return c.Render(http.StatusOK, views.SlugField(view))
}

func (h *Admin) newFormProps(c internal.Context, res content.Resource, in content.Input, state slugfield.State, msg string) views.FormProps {
	return views.FormProps{
		Page:     h.page(c),
		Resource: res,
		Input:    in,
		Slug: views.NewSlugFieldView(views.SlugFieldProps{
			Resource:    res.Name,
			SourceValue: in.Name,
			Description: "Derived from the name until you edit it.",
			Placeholder: res.Slug("My " + res.Singular),
		}, state),
		Action: "/admin/" + res.Name,
		Error:  msg,
		IsNew:  true,
	}
}

func (h *Admin) editFormProps(c internal.Context, res content.Resource, rec content.Record, msg string) (views.FormProps, error) {
	props := views.FormProps{
		Page:     h.page(c),
		Resource: res,
		Input:    content.Input{ID: rec.ID, Name: rec.Name, Description: rec.Description, Body: rec.Body},
		Slug: views.NewSlugFieldView(views.SlugFieldProps{
			Resource:    res.Name,
			SourceValue: rec.Name,
			Description: "Identifiers cannot change after creation.",
			Disabled:    true,
		}, slugfield.State{Source: rec.Name, Value: rec.ID, Mode: slugfield.ModeManual}),
		Action: "/admin/" + res.Name + "/" + rec.ID,
		Error:  msg,
	}

	if res.Markdown && rec.Body != "" {
		body, err := content.RenderBody(rec.Body)
		if err != nil {
			return views.FormProps{}, err
		}
		props.Body = body
	}
	return props, nil
}

func (h *Admin) context(c internal.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Context())
	}
	return context.WithTimeout(c.Context(), h.timeout)
}

// settle rebuilds the field state from the posted form and applies event
// with a synchronous check. The form carries no request tokens: htmx
// replaces any in-flight request, so the latest response always wins.
func settle(ctx context.Context, b slugfield.Backend, res content.Resource, event, source, value string, mode slugfield.Mode) slugfield.State {
	n := res.Normalizer()
	t := res.IdentifierTarget()
	s := slugfield.State{Source: source, Mode: mode}

	switch {
	case event == eventRegenerate:
		s.Value = value
		return n.Settle(ctx, b, t, s, slugfield.Regenerate{})
	case event == eventEdit || mode == slugfield.ModeManual:
		return n.Settle(ctx, b, t, s, slugfield.FieldEdited{Value: value})
	default:
		return n.Settle(ctx, b, t, s, slugfield.SourceChanged{Source: source})
	}
}

func formInput(c internal.Context) content.Input {
	return content.Input{
		ID:          c.Form(content.IdentifierField),
		Name:        c.Form(content.SourceField),
		Description: c.Form("description"),
		Body:        c.Form("body"),
	}
}

func formDefault(c internal.Context, name, def string) string {
	if v := c.Form(name); v != "" {
		return v
	}
	return def
}
