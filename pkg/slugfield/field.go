package slugfield

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/promptdesk/pkg/logger"
)

// DefaultDebounce is the quiet period before a check is issued.
const DefaultDebounce = 500 * time.Millisecond

// Snapshot is the externally visible field state.
// Seq increases with every change; consumers may drop snapshots older than
// the last one they rendered.
type Snapshot struct {
	Seq       uint64 `json:"seq"`
	Source    string `json:"source"`
	Value     string `json:"value"`
	Candidate string `json:"candidate,omitempty"`
	Mode      Mode   `json:"mode"`
	Status    Status `json:"status"`
	Disabled  bool   `json:"disabled"`
}

// Option configures a Field.
type Option func(*Field)

// WithDebounce sets the quiet period. Default: 500ms.
func WithDebounce(d time.Duration) Option {
	return func(f *Field) {
		f.delay = d
	}
}

// WithLogger sets the logger used to report failed lookups.
func WithLogger(l *slog.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithNormalizer replaces slug.Make as the source-to-slug transform.
func WithNormalizer(n Normalizer) Option {
	return func(f *Field) {
		f.normalizer = n
	}
}

// WithOnChange registers a callback invoked after every state change.
// It is called outside internal locks and may be called concurrently.
func WithOnChange(fn func(Snapshot)) Option {
	return func(f *Field) {
		f.onChange = fn
	}
}

// WithLookupTimeout bounds a single Resolve call. Zero means no timeout.
func WithLookupTimeout(d time.Duration) Option {
	return func(f *Field) {
		f.timeout = d
	}
}

// WithInitial seeds the field, e.g. when editing an existing record.
// A non-empty value puts the field in manual mode.
func WithInitial(source, value string, disabled bool) Option {
	return func(f *Field) {
		f.state.Source = source
		f.state.Value = value
		f.state.Disabled = disabled
		if value != "" {
			f.state.Mode = ModeManual
		}
	}
}

// Field binds the state machine to a backend and a real clock.
// All methods are safe for concurrent use.
type Field struct {
	backend    Backend
	target     Target
	normalizer Normalizer
	logger     *slog.Logger
	onChange   func(Snapshot)
	delay      time.Duration
	timeout    time.Duration
	debouncer  *Debouncer

	ctx  context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu       sync.Mutex
	state    State
	seq      uint64
	inflight context.CancelFunc
	closed   bool
}

// New creates a field checking values against t in b.
func New(b Backend, t Target, opts ...Option) *Field {
	f := &Field{
		backend: b,
		target:  t,
		logger:  logger.NewNope(),
		delay:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.debouncer = NewDebouncer(f.delay)
	f.ctx, f.stop = context.WithCancel(context.Background())
	return f
}

// SetSource reports a new source value.
func (f *Field) SetSource(source string) { f.dispatch(SourceChanged{Source: source}) }

// Edit reports a direct edit of the slug field and switches to manual mode.
func (f *Field) Edit(value string) { f.dispatch(FieldEdited{Value: value}) }

// Regenerate re-derives the value from the source and checks it immediately.
func (f *Field) Regenerate() { f.dispatch(Regenerate{}) }

// SetDisabled enables or disables checking.
func (f *Field) SetDisabled(disabled bool) { f.dispatch(DisabledChanged{Disabled: disabled}) }

// Snapshot returns the current state.
func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Close cancels pending work and waits for running lookups to return.
// The field ignores all input afterwards.
func (f *Field) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
	f.stop()
	f.mu.Unlock()

	f.debouncer.Stop()
	f.wg.Wait()
}

func (f *Field) dispatch(e Event) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	prev := f.state
	next, eff := f.normalizer.Transition(prev, e)
	f.state = next

	if eff.Cancel {
		f.debouncer.Cancel()
		if f.inflight != nil {
			f.inflight()
			f.inflight = nil
		}
	}
	if eff.Schedule != nil {
		f.scheduleLocked(*eff.Schedule)
	}

	changed := next != prev
	var snap Snapshot
	if changed {
		f.seq++
		snap = f.snapshotLocked()
	}
	f.mu.Unlock()

	if changed && f.onChange != nil {
		f.onChange(snap)
	}
}

func (f *Field) scheduleLocked(c Check) {
	if c.Immediate {
		f.wg.Add(1)
		go func() {
			defer f.wg.Done()
			f.run(c)
		}()
		return
	}
	f.debouncer.Call(func() { f.run(c) })
}

// run performs the lookup for c unless it has been superseded.
func (f *Field) run(c Check) {
	f.mu.Lock()
	if f.closed || c.RequestID != f.state.RequestID {
		f.mu.Unlock()
		return
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(f.ctx, f.timeout)
	} else {
		ctx, cancel = context.WithCancel(f.ctx)
	}
	f.inflight = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	defer f.wg.Done()
	defer cancel()

	candidate, err := Resolve(ctx, f.backend, f.target, c.Value)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			f.logger.WarnContext(ctx, "slug lookup failed",
				slog.String("target", f.target.String()),
				slog.String("value", c.Value),
				slog.Any("error", err),
			)
		}
		f.dispatch(CheckFailed{RequestID: c.RequestID, Err: err})
		return
	}

	f.dispatch(CheckResolved{RequestID: c.RequestID, Base: c.Value, Candidate: candidate})
}

func (f *Field) snapshotLocked() Snapshot {
	return Snapshot{
		Seq:       f.seq,
		Source:    f.state.Source,
		Value:     f.state.Value,
		Candidate: f.state.Candidate,
		Mode:      f.state.Mode,
		Status:    DeriveStatus(f.state),
		Disabled:  f.state.Disabled,
	}
}
