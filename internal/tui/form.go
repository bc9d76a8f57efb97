package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Creator stores the submitted record.
type Creator interface {
	CreateRecord(ctx context.Context, resource string, in content.Input) (content.Record, error)
}

// SnapshotMsg carries a field change into the program.
type SnapshotMsg slugfield.Snapshot

type createdMsg struct{ rec content.Record }

type createFailedMsg struct{ err error }

const (
	focusName = iota
	focusSlug
)

// DefaultSubmitTimeout bounds the create request.
const DefaultSubmitTimeout = 10 * time.Second

// FormOption configures a Form.
type FormOption func(*Form)

// WithStyles replaces DefaultStyles.
func WithStyles(s Styles) FormOption {
	return func(f *Form) {
		f.styles = s
	}
}

// WithSubmitTimeout bounds the create request. Default: 10s.
func WithSubmitTimeout(d time.Duration) FormOption {
	return func(f *Form) {
		f.timeout = d
	}
}

// WithInitialName pre-fills the name input.
func WithInitialName(name string) FormOption {
	return func(f *Form) {
		f.name.SetValue(name)
	}
}

// Form is the bubbletea model of the create form.
type Form struct {
	field    *slugfield.Field
	creator  Creator
	resource content.Resource
	timeout  time.Duration

	keys    keyMap
	help    help.Model
	styles  Styles
	name    textinput.Model
	slug    textinput.Model
	spinner spinner.Model
	focus   int

	snap       slugfield.Snapshot
	submitting bool
	created    *content.Record
	err        error
}

// NewForm creates a form for res. The field must target res's identifier.
func NewForm(field *slugfield.Field, creator Creator, res content.Resource, opts ...FormOption) Form {
	f := Form{
		field:    field,
		creator:  creator,
		resource: res,
		timeout:  DefaultSubmitTimeout,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   DefaultStyles(),
		name:     textinput.New(),
		slug:     textinput.New(),
		spinner:  spinner.New(),
	}

	f.name.Placeholder = "My " + strings.ToLower(res.Singular)
	f.name.Prompt = "│ "
	f.name.CharLimit = 256
	f.name.Focus()

	f.slug.Placeholder = res.Slug(f.name.Placeholder)
	f.slug.Prompt = "│ "
	if res.MaxLength > 0 {
		f.slug.CharLimit = res.MaxLength
	}

	f.spinner.Spinner = spinner.Dot

	for _, opt := range opts {
		opt(&f)
	}

	f.spinner.Style = f.styles.Checking
	f.name.PromptStyle = f.styles.Focused
	f.slug.PromptStyle = f.styles.Blurred

	if v := f.name.Value(); v != "" {
		f.field.SetSource(v)
	}
	f.apply(f.field.Snapshot())
	return f
}

// Created is the stored record once the form has been submitted.
func (f Form) Created() (content.Record, bool) {
	if f.created == nil {
		return content.Record{}, false
	}
	return *f.created, true
}

// Snapshot is the field state the form currently shows.
func (f Form) Snapshot() slugfield.Snapshot { return f.snap }

// Err is the last submit failure.
func (f Form) Err() error { return f.err }

func (f Form) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, f.spinner.Tick)
}

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		f.apply(slugfield.Snapshot(msg))
		return f, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		f.spinner, cmd = f.spinner.Update(msg)
		return f, cmd

	case createdMsg:
		f.submitting = false
		f.created = &msg.rec
		return f, tea.Quit

	case createFailedMsg:
		f.submitting = false
		f.err = msg.err
		return f, nil

	case tea.KeyMsg:
		return f.handleKey(msg)
	}

	return f.updateInputs(msg)
}

func (f Form) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Quit):
		return f, tea.Quit

	case key.Matches(msg, f.keys.Next), key.Matches(msg, f.keys.Prev):
		f.setFocus(1 - f.focus)
		return f, textinput.Blink

	case key.Matches(msg, f.keys.Regenerate):
		f.field.Regenerate()
		f.apply(f.field.Snapshot())
		return f, nil

	case key.Matches(msg, f.keys.Submit):
		if !f.canSubmit() {
			return f, nil
		}
		f.submitting = true
		f.err = nil
		return f, f.submit()
	}

	return f.updateInputs(msg)
}

// updateInputs forwards msg to the focused input and reports changes to
// the field.
func (f Form) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == focusName {
		before := f.name.Value()
		f.name, cmd = f.name.Update(msg)
		if v := f.name.Value(); v != before {
			f.field.SetSource(v)
		}
	} else {
		before := f.slug.Value()
		f.slug, cmd = f.slug.Update(msg)
		if v := f.slug.Value(); v != before {
			f.field.Edit(v)
		}
	}
	f.apply(f.field.Snapshot())
	return f, cmd
}

// apply shows s unless a newer snapshot is already on screen.
func (f *Form) apply(s slugfield.Snapshot) {
	if s.Seq < f.snap.Seq {
		return
	}
	f.snap = s
	if f.slug.Value() != s.Value {
		f.slug.SetValue(s.Value)
		f.slug.CursorEnd()
	}
}

func (f *Form) setFocus(i int) {
	f.focus = i
	if i == focusName {
		f.name.Focus()
		f.slug.Blur()
		f.name.PromptStyle = f.styles.Focused
		f.slug.PromptStyle = f.styles.Blurred
		return
	}
	f.slug.Focus()
	f.name.Blur()
	f.slug.PromptStyle = f.styles.Focused
	f.name.PromptStyle = f.styles.Blurred
}

func (f Form) canSubmit() bool {
	if f.submitting || f.created != nil {
		return false
	}
	if strings.TrimSpace(f.name.Value()) == "" || f.snap.Value == "" {
		return false
	}
	return f.snap.Status != slugfield.StatusChecking && f.snap.Status != slugfield.StatusTaken
}

// submit sends the record. In sync mode the server derives the identifier
// itself, so a concurrent insert yields the next free one instead of a
// conflict.
func (f Form) submit() tea.Cmd {
	in := content.Input{Name: f.name.Value()}
	if f.snap.Mode == slugfield.ModeManual {
		in.ID = f.snap.Value
	}
	creator, resource, timeout := f.creator, f.resource.Name, f.timeout

	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		rec, err := creator.CreateRecord(ctx, resource, in)
		if err != nil {
			return createFailedMsg{err: err}
		}
		return createdMsg{rec: rec}
	}
}

func (f Form) View() string {
	st := f.styles
	if f.created != nil {
		return st.Available.Render(fmt.Sprintf("✓ Created %s/%s", f.resource.Name, f.created.ID)) + "\n"
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("New " + f.resource.Singular))
	b.WriteString("\n")
	b.WriteString(st.Label.Render("Name"))
	b.WriteString("\n")
	b.WriteString(f.name.View())
	b.WriteString("\n\n")
	b.WriteString(st.Label.Render("Identifier"))
	b.WriteString(" ")
	b.WriteString(st.Mode.Render("(" + f.snap.Mode.String() + ")"))
	b.WriteString("\n")
	b.WriteString(f.slug.View())
	b.WriteString("\n")
	b.WriteString(f.statusLine())
	b.WriteString("\n")

	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(st.Error.Render(errorText(f.err)))
		b.WriteString("\n")
	}
	if f.submitting {
		b.WriteString("\n")
		b.WriteString(f.spinner.View() + " Creating…")
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))
	return st.Box.Render(b.String()) + "\n"
}

func (f Form) statusLine() string {
	st := f.styles
	switch f.snap.Status {
	case slugfield.StatusChecking:
		return f.spinner.View() + st.Checking.Render(" Checking…")
	case slugfield.StatusAvailable:
		return st.Available.Render("✓ Available")
	case slugfield.StatusTaken:
		msg := fmt.Sprintf("✗ %q is already taken", f.snap.Value)
		if f.snap.Candidate != "" {
			msg += ". Next free: " + f.snap.Candidate
		}
		return st.Taken.Render(msg)
	}
	return st.Hint.Render(" ")
}
