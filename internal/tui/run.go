package tui

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/promptdesk/internal/client"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// ErrAborted is returned by Run when the user quits without creating.
var ErrAborted = errors.New("tui: aborted")

// Relay forwards field changes to a running program. Sends never block the
// field: snapshots may arrive out of order and the form drops stale ones.
type Relay struct {
	p atomic.Pointer[tea.Program]
}

// Attach starts forwarding to p.
func (r *Relay) Attach(p *tea.Program) {
	r.p.Store(p)
}

// OnChange is a slugfield.WithOnChange callback.
func (r *Relay) OnChange(s slugfield.Snapshot) {
	if p := r.p.Load(); p != nil {
		go p.Send(SnapshotMsg(s))
	}
}

// Config configures Run.
type Config struct {
	Backend  slugfield.Backend
	Creator  Creator
	Resource content.Resource
	// FieldOptions are applied after the relay's OnChange.
	FieldOptions []slugfield.Option
	FormOptions  []FormOption
	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

// Run shows the form until the record is created or the user quits.
func Run(ctx context.Context, cfg Config) (content.Record, error) {
	relay := &Relay{}
	opts := append([]slugfield.Option{slugfield.WithOnChange(relay.OnChange)}, cfg.FieldOptions...)
	field := NewField(cfg.Backend, cfg.Resource, opts...)
	defer field.Close()

	form := NewForm(field, cfg.Creator, cfg.Resource, cfg.FormOptions...)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		progOpts = append(progOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(cfg.Output))
	}

	p := tea.NewProgram(form, progOpts...)
	relay.Attach(p)

	final, err := p.Run()
	if err != nil {
		return content.Record{}, err
	}
	if rec, ok := final.(Form).Created(); ok {
		return rec, nil
	}
	return content.Record{}, ErrAborted
}

// NewField creates the identifier field for res. Values are normalized and
// capped the same way the server derives identifiers.
func NewField(b slugfield.Backend, res content.Resource, opts ...slugfield.Option) *slugfield.Field {
	opts = append([]slugfield.Option{slugfield.WithNormalizer(res.Normalizer())}, opts...)
	return slugfield.New(b, res.IdentifierTarget(), opts...)
}

func errorText(err error) string {
	if apiErr := client.AsAPIError(err); apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
