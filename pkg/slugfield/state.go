package slugfield

import "github.com/dmitrymomot/promptdesk/pkg/slug"

// Mode tells whether the source drives the field value.
type Mode uint8

const (
	// ModeSync derives the value from the source and adopts resolved candidates.
	ModeSync Mode = iota
	// ModeManual keeps whatever the user typed.
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "sync"
}

// ParseMode parses "sync" or "manual". Anything else is sync.
func ParseMode(s string) Mode {
	if s == "manual" {
		return ModeManual
	}
	return ModeSync
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	*m = ParseMode(string(b))
	return nil
}

// Phase is the lifecycle of the current check.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// State is the complete field state. The zero value is an empty field in
// sync mode.
type State struct {
	Source   string
	Value    string
	Mode     Mode
	Disabled bool

	Phase Phase
	// RequestID identifies the latest issued check. Results carrying any other
	// id are discarded.
	RequestID uint64
	// Pending is the value under check while Phase is PhasePending.
	Pending string
	// Checked is the base of the last applied result and Candidate its answer.
	Checked   string
	Candidate string
	// Failed is set when the latest check errored.
	Failed bool
}

// Event is an input to Transition.
type Event interface {
	event()
}

// SourceChanged reports a new source value.
type SourceChanged struct{ Source string }

// FieldEdited reports a direct edit of the slug field by the user.
type FieldEdited struct{ Value string }

// Regenerate re-derives the value from the source and re-enables sync mode.
type Regenerate struct{}

// DisabledChanged toggles the disabled flag.
type DisabledChanged struct{ Disabled bool }

// CheckResolved delivers the answer for a check.
type CheckResolved struct {
	RequestID uint64
	Base      string
	Candidate string
}

// CheckFailed delivers a failed check.
type CheckFailed struct {
	RequestID uint64
	Err       error
}

func (SourceChanged) event()   {}
func (FieldEdited) event()     {}
func (Regenerate) event()      {}
func (DisabledChanged) event() {}
func (CheckResolved) event()   {}
func (CheckFailed) event()     {}

// Check is a uniqueness check the driver must run.
type Check struct {
	RequestID uint64
	Value     string
	// Immediate skips the quiet period.
	Immediate bool
}

// Effects lists what the driver must do after a transition.
type Effects struct {
	// Cancel stops any scheduled or in-flight check.
	Cancel bool
	// Schedule, when set, is the check to run next.
	Schedule *Check
	// ValueChanged is set when the machine rewrote Value on its own
	// and the bound field must be updated.
	ValueChanged bool
}

// Normalizer turns a source string into a candidate slug.
// A nil Normalizer uses slug.Make with default options.
type Normalizer func(string) string

func (n Normalizer) normalize(s string) string {
	if n == nil {
		return slug.Make(s)
	}
	return n(s)
}

// Transition applies e to s using slug.Make as the normalizer.
func Transition(s State, e Event) (State, Effects) {
	return Normalizer(nil).Transition(s, e)
}

// Transition applies e to s. It is pure: the returned effects describe
// every side effect the caller must perform.
func (n Normalizer) Transition(s State, e Event) (State, Effects) {
	switch e := e.(type) {
	case SourceChanged:
		s.Source = e.Source
		if s.Mode != ModeSync || s.Disabled {
			return s, Effects{}
		}
		v := n.normalize(e.Source)
		if v == s.Value {
			return s, Effects{}
		}
		s.Value = v
		next, eff := reschedule(s, false)
		eff.ValueChanged = true
		return next, eff

	case FieldEdited:
		if s.Disabled {
			return s, Effects{}
		}
		s.Mode = ModeManual
		if e.Value == s.Value {
			return s, Effects{}
		}
		s.Value = e.Value
		return reschedule(s, false)

	case Regenerate:
		if s.Disabled {
			return s, Effects{}
		}
		v := n.normalize(s.Source)
		changed := v != s.Value
		s.Mode = ModeSync
		s.Value = v
		next, eff := reschedule(s, true)
		eff.ValueChanged = changed
		return next, eff

	case DisabledChanged:
		if e.Disabled == s.Disabled {
			return s, Effects{}
		}
		s.Disabled = e.Disabled
		changed := false
		if !s.Disabled && s.Mode == ModeSync {
			// The source may have moved while edits were ignored.
			v := n.normalize(s.Source)
			changed = v != s.Value
			s.Value = v
		}
		next, eff := reschedule(s, false)
		eff.ValueChanged = changed
		return next, eff

	case CheckResolved:
		if e.RequestID != s.RequestID || s.Phase != PhasePending {
			return s, Effects{}
		}
		s.Phase = PhaseResolved
		s.Pending = ""
		s.Failed = false
		s.Checked = e.Base
		s.Candidate = e.Candidate
		if s.Mode == ModeSync && e.Base == s.Value && e.Candidate != s.Value {
			// The candidate is a fresh answer, so it needs no second check.
			s.Value = e.Candidate
			s.Checked = e.Candidate
			return s, Effects{ValueChanged: true}
		}
		return s, Effects{}

	case CheckFailed:
		if e.RequestID != s.RequestID || s.Phase != PhasePending {
			return s, Effects{}
		}
		s.Phase = PhaseIdle
		s.Pending = ""
		s.Failed = true
		return s, Effects{}
	}

	return s, Effects{}
}

// reschedule supersedes any outstanding check and, when the field can be
// checked, issues a new one.
func reschedule(s State, immediate bool) (State, Effects) {
	s.RequestID++
	s.Failed = false

	if s.Value == "" || s.Disabled {
		s.Phase = PhaseIdle
		s.Pending = ""
		return s, Effects{Cancel: true}
	}

	s.Phase = PhasePending
	s.Pending = s.Value
	return s, Effects{
		Cancel: true,
		Schedule: &Check{
			RequestID: s.RequestID,
			Value:     s.Value,
			Immediate: immediate,
		},
	}
}
