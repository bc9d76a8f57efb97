package handlers

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/content"
)

// Records is the JSON CRUD API.
type Records struct {
	svc *content.Service
}

// NewRecords creates the record API routes.
func NewRecords(svc *content.Service) *Records {
	return &Records{svc: svc}
}

func (h *Records) Routes(r internal.Router) {
	r.Route("/api/{resource}", func(r internal.Router) {
		r.GET("/", h.list)
		r.POST("/", h.create)
		r.GET("/{id}", h.get)
		r.PUT("/{id}", h.update)
		r.DELETE("/{id}", h.delete)
	})
}

type listResponse struct {
	Data   []content.Record `json:"data"`
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// recordResponse optionally carries the rendered markdown body.
type recordResponse struct {
	content.Record
	HTML template.HTML `json:"html,omitempty"`
}

func (h *Records) list(c internal.Context) error {
	opts := content.ListOptions{
		Query:  c.Query("q"),
		Limit:  internal.QueryDefault(c, "limit", content.DefaultListLimit),
		Offset: internal.QueryDefault(c, "offset", 0),
	}
	records, err := h.svc.List(c.Context(), c.Param("resource"), opts)
	if err != nil {
		return httpError(err)
	}
	if records == nil {
		records = []content.Record{}
	}
	return c.JSON(http.StatusOK, listResponse{Data: records, Limit: opts.Limit, Offset: opts.Offset})
}

func (h *Records) get(c internal.Context) error {
	resource := c.Param("resource")
	rec, err := h.svc.Get(c.Context(), resource, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	resp := recordResponse{Record: rec}
	if internal.QueryDefault(c, "render", false) {
		if res, _ := h.svc.Registry().Lookup(resource); res.Markdown {
			if resp.HTML, err = content.RenderBody(rec.Body); err != nil {
				return err
			}
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Records) create(c internal.Context) error {
	var in content.Input
	if err := c.BindJSON(&in); err != nil {
		return err
	}

	rec, err := h.svc.Create(c.Context(), c.Param("resource"), in)
	if err != nil {
		return httpError(err)
	}

	c.SetHeader("Location", "/api/"+c.Param("resource")+"/"+rec.ID)
	c.LogInfo("record created",
		slog.String("resource", c.Param("resource")),
		slog.String("id", rec.ID),
	)
	return c.JSON(http.StatusCreated, rec)
}

func (h *Records) update(c internal.Context) error {
	var in content.Input
	if err := c.BindJSON(&in); err != nil {
		return err
	}

	rec, err := h.svc.Update(c.Context(), c.Param("resource"), c.Param("id"), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Records) delete(c internal.Context) error {
	if err := h.svc.Delete(c.Context(), c.Param("resource"), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
